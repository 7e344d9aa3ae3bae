package config

// LocalConfig represents the local repms configuration
type LocalConfig struct {
	Network  string `json:"network"`
	Account  string `json:"account,omitempty"`
	Signer   string `json:"signer,omitempty"`
	Contract string `json:"contract,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyNetwork  ConfigKey = "network"
	ConfigKeyAccount  ConfigKey = "account"
	ConfigKeySigner   ConfigKey = "signer"
	ConfigKeyContract ConfigKey = "contract"
)

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{
		Network: "mainnet",
	}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyNetwork,
		ConfigKeyAccount,
		ConfigKeySigner,
		ConfigKeyContract,
	}
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	for _, validKey := range ValidConfigKeys() {
		if string(validKey) == key || (key == "net" && validKey == ConfigKeyNetwork) {
			return true
		}
	}
	return false
}

// NormalizeConfigKey normalizes a config key (e.g., "net" -> "network")
func NormalizeConfigKey(key string) ConfigKey {
	if key == "net" {
		return ConfigKeyNetwork
	}
	return ConfigKey(key)
}

// Get returns the value stored under key
func (c *LocalConfig) Get(key ConfigKey) string {
	switch key {
	case ConfigKeyNetwork:
		return c.Network
	case ConfigKeyAccount:
		return c.Account
	case ConfigKeySigner:
		return c.Signer
	case ConfigKeyContract:
		return c.Contract
	}
	return ""
}

// Set stores value under key
func (c *LocalConfig) Set(key ConfigKey, value string) {
	switch key {
	case ConfigKeyNetwork:
		c.Network = value
	case ConfigKeyAccount:
		c.Account = value
	case ConfigKeySigner:
		c.Signer = value
	case ConfigKeyContract:
		c.Contract = value
	}
}
