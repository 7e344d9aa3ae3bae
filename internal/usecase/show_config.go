package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/representatives-dao/repms/internal/codec"
	"github.com/representatives-dao/repms/internal/domain/config"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	Config     *config.LocalConfig
	ConfigPath string
	Exists     bool
	// Runtime is the configuration resolved from flags, env, repms.toml and defaults
	Runtime *config.RuntimeConfig
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	config *config.RuntimeConfig
	store  LocalConfigStore
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig, store LocalConfigStore) *ShowConfig {
	return &ShowConfig{
		config: cfg,
		store:  store,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	exists := uc.store.Exists()

	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &ShowConfigResult{
		Config:     local,
		ConfigPath: uc.store.GetPath(),
		Exists:     exists,
		Runtime:    uc.config,
	}, nil
}

// resolveConfigKey validates and normalizes a user supplied config key
func resolveConfigKey(raw string) (config.ConfigKey, error) {
	key := strings.ToLower(raw)
	if !config.IsValidConfigKey(key) {
		validKeys := []string{}
		for _, k := range config.ValidConfigKeys() {
			if k == config.ConfigKeyNetwork {
				validKeys = append(validKeys, string(k)+" (net)")
			} else {
				validKeys = append(validKeys, string(k))
			}
		}
		return "", fmt.Errorf("unknown config key: %s\nAvailable keys: %s", raw, strings.Join(validKeys, ", "))
	}
	return config.NormalizeConfigKey(key), nil
}

// validateConfigValue rejects values that can never work for a key
func validateConfigValue(key config.ConfigKey, value string) error {
	switch key {
	case config.ConfigKeyAccount, config.ConfigKeyContract:
		return codec.ValidateAddress(value)
	case config.ConfigKeyNetwork:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("network name must not be empty")
		}
	}
	return nil
}
