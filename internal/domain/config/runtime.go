package config

import (
	"time"

	"github.com/representatives-dao/repms/internal/domain/models"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	Network  *Network
	Contract string // representatives contract address
	Account  string // address of the user, empty for read only sessions
	Signer   string // octez-client alias used to sign, defaults to Account

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration
	PollInterval   time.Duration

	// Command-specific settings (only populated for relevant commands)
	DryRun bool

	// Config source tracking
	ConfigSource string // "repms.toml" or "defaults"

	// Resolved configurations
	Octez   OctezConfig
	IPFS    IPFSConfig
	Aliases AliasesConfig
	Tokens  models.TokenRegistry
}

// Network represents network configuration
type Network struct {
	Name        string `json:"name"`
	RPCURL      string `json:"rpcUrl"`
	IndexerURL  string `json:"indexerUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

// OctezConfig configures the octez-client binary used to sign and inject operations
type OctezConfig struct {
	Binary  string `toml:"binary"`
	BaseDir string `toml:"base_dir"`
	BurnCap string `toml:"burn_cap"`
}

// IPFSConfig configures the pinning service used to upload text proposals
type IPFSConfig struct {
	PinataURL string `toml:"pinata_url"`
	APIKey    string `toml:"api_key"`
	SecretKey string `toml:"secret_key"`
	Gateway   string `toml:"gateway"`
}

// AliasesConfig points at the registry bigmap holding address aliases.
// A zero Bigmap disables alias resolution.
type AliasesConfig struct {
	IndexerURL string `toml:"indexer_url"`
	Bigmap     int64  `toml:"bigmap"`
}

// Signing returns the identity passed to octez-client
func (c *RuntimeConfig) Signing() string {
	if c.Signer != "" {
		return c.Signer
	}
	return c.Account
}
