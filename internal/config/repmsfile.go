package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/representatives-dao/repms/internal/domain/config"
)

// repmsFile is a parsed repms.toml, loaded is false when the file does not exist
type repmsFile struct {
	config.RepmsFileConfig
	loaded bool
}

// loadEnvFiles loads .env and .env.local so secrets can be referenced from
// repms.toml. Variables already set in the environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadRepmsFile loads and parses repms.toml if it exists
func loadRepmsFile(projectRoot string) (*repmsFile, error) {
	path := filepath.Join(projectRoot, ProjectFile)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &repmsFile{}, nil
	}

	var file repmsFile
	if _, err := toml.DecodeFile(path, &file.RepmsFileConfig); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
	}
	file.loaded = true

	file.Network = os.ExpandEnv(file.Network)
	file.Contract = os.ExpandEnv(file.Contract)
	for name, network := range file.Networks {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.IndexerURL = os.ExpandEnv(network.IndexerURL)
		network.ExplorerURL = os.ExpandEnv(network.ExplorerURL)
		network.Contract = os.ExpandEnv(network.Contract)
		file.Networks[name] = network
	}
	file.Octez.Binary = os.ExpandEnv(file.Octez.Binary)
	file.Octez.BaseDir = os.ExpandEnv(file.Octez.BaseDir)
	file.IPFS.PinataURL = os.ExpandEnv(file.IPFS.PinataURL)
	file.IPFS.APIKey = os.ExpandEnv(file.IPFS.APIKey)
	file.IPFS.SecretKey = os.ExpandEnv(file.IPFS.SecretKey)
	file.IPFS.Gateway = os.ExpandEnv(file.IPFS.Gateway)
	if file.Aliases != nil {
		file.Aliases.IndexerURL = os.ExpandEnv(file.Aliases.IndexerURL)
	}

	return &file, nil
}
