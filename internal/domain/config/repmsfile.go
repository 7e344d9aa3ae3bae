package config

import "github.com/representatives-dao/repms/internal/domain/models"

// RepmsFileConfig represents the full repms.toml configuration file
type RepmsFileConfig struct {
	// Network selected when neither a flag, env var nor local config names one
	Network  string                       `toml:"network,omitempty"`
	Contract string                       `toml:"contract,omitempty"`
	Networks map[string]NetworkFileConfig `toml:"networks"`
	Octez    OctezConfig                  `toml:"octez"`
	IPFS     IPFSConfig                   `toml:"ipfs"`
	Aliases  *AliasesConfig               `toml:"aliases,omitempty"`
	Tokens   []models.Token               `toml:"tokens"`
}

// NetworkFileConfig represents a [networks.<name>] section in repms.toml
type NetworkFileConfig struct {
	RPCURL      string `toml:"rpc_url"`
	IndexerURL  string `toml:"indexer_url"`
	ExplorerURL string `toml:"explorer_url,omitempty"`
	// Contract overrides the top level contract on this network
	Contract string `toml:"contract,omitempty"`
}
