package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/representatives-dao/repms/internal/domain/config"
)

const (
	// DefaultAliasesIndexerURL serves the alias registry, which only exists on mainnet
	DefaultAliasesIndexerURL = "https://api.mainnet.tzkt.io"
	// DefaultAliasesBigmap is the registry bigmap holding user aliases
	DefaultAliasesBigmap int64 = 3919
	// DefaultIPFSGateway resolves ipfs:// links for display
	DefaultIPFSGateway = "https://ipfs.io/ipfs/"
)

// builtinNetworks are available without any repms.toml
var builtinNetworks = map[string]config.Network{
	"mainnet": {
		Name:        "mainnet",
		RPCURL:      "https://mainnet.ecadinfra.com",
		IndexerURL:  "https://api.mainnet.tzkt.io",
		ExplorerURL: "https://mainnet.tzkt.io",
	},
	"ghostnet": {
		Name:        "ghostnet",
		RPCURL:      "https://ghostnet.ecadinfra.com",
		IndexerURL:  "https://api.ghostnet.tzkt.io",
		ExplorerURL: "https://ghostnet.tzkt.io",
	},
}

// ResolveNetwork returns the network with the given name and the contract
// configured for it. repms.toml sections override built-in fields one by one.
func ResolveNetwork(name string, networks map[string]config.NetworkFileConfig) (*config.Network, string, error) {
	name = strings.TrimSpace(name)
	builtin, isBuiltin := builtinNetworks[name]
	section, inFile := networks[name]
	if !isBuiltin && !inFile {
		return nil, "", fmt.Errorf("unknown network %q (available: %s)", name, strings.Join(NetworkNames(networks), ", "))
	}

	network := builtin
	network.Name = name
	if section.RPCURL != "" {
		network.RPCURL = section.RPCURL
	}
	if section.IndexerURL != "" {
		network.IndexerURL = section.IndexerURL
	}
	if section.ExplorerURL != "" {
		network.ExplorerURL = section.ExplorerURL
	}

	if network.IndexerURL == "" {
		return nil, "", fmt.Errorf("network %q has no indexer_url", name)
	}
	if network.RPCURL == "" {
		return nil, "", fmt.Errorf("network %q has no rpc_url", name)
	}

	return &network, section.Contract, nil
}

// NetworkNames lists the built-in and configured networks, sorted
func NetworkNames(networks map[string]config.NetworkFileConfig) []string {
	names := lo.Uniq(append(lo.Keys(builtinNetworks), lo.Keys(networks)...))
	sort.Strings(names)
	return names
}
