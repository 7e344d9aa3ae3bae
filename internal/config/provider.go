package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/representatives-dao/repms/internal/codec"
	"github.com/representatives-dao/repms/internal/domain/config"
	"github.com/representatives-dao/repms/internal/domain/models"
)

const (
	// ProjectFile is the optional project configuration file
	ProjectFile = "repms.toml"
	// DataDirName holds the local user defaults
	DataDirName = ".repms"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	loadEnvFiles(projectRoot)

	file, err := loadRepmsFile(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		Account:        strings.TrimSpace(v.GetString("account")),
		Signer:         strings.TrimSpace(v.GetString("signer")),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		PollInterval:   v.GetDuration("poll_interval"),
		DryRun:         v.GetBool("dry_run"),
		ConfigSource:   "defaults",
		Octez:          file.Octez,
		IPFS:           resolveIPFS(file.IPFS),
		Aliases:        resolveAliases(file.Aliases),
		Tokens:         models.NewTokenRegistry(append(models.DefaultTokens(), file.Tokens...)...),
	}
	if file.loaded {
		cfg.ConfigSource = ProjectFile
	}

	networkName := v.GetString("network")
	if networkName == "" {
		networkName = file.Network
	}
	if networkName == "" {
		networkName = config.DefaultLocalConfig().Network
	}
	network, networkContract, err := ResolveNetwork(networkName, file.Networks)
	if err != nil {
		return nil, err
	}
	cfg.Network = network

	cfg.Contract = firstNonEmpty(strings.TrimSpace(v.GetString("contract")), networkContract, file.Contract)

	if cfg.Account != "" {
		if err := codec.ValidateAddress(cfg.Account); err != nil {
			return nil, fmt.Errorf("invalid account: %w", err)
		}
	}
	if cfg.Contract != "" {
		if err := codec.ValidateAddress(cfg.Contract); err != nil {
			return nil, fmt.Errorf("invalid contract: %w", err)
		}
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory to find repms.toml or
// the .repms data dir. Outside a project the current directory is used.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		for _, marker := range []string{ProjectFile, DataDirName} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string) *viper.Viper {
	v := viper.New()

	// User defaults written by `repms config set`
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	v.SetEnvPrefix("REPMS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("timeout", "5m")
	v.SetDefault("poll_interval", "2s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	return v
}

func resolveIPFS(file config.IPFSConfig) config.IPFSConfig {
	ipfs := file
	if ipfs.APIKey == "" {
		ipfs.APIKey = os.Getenv("PINATA_API_KEY")
	}
	if ipfs.SecretKey == "" {
		ipfs.SecretKey = os.Getenv("PINATA_SECRET_API_KEY")
	}
	if ipfs.Gateway == "" {
		ipfs.Gateway = DefaultIPFSGateway
	}
	return ipfs
}

func resolveAliases(file *config.AliasesConfig) config.AliasesConfig {
	if file == nil {
		return config.AliasesConfig{IndexerURL: DefaultAliasesIndexerURL, Bigmap: DefaultAliasesBigmap}
	}
	aliases := *file
	if aliases.IndexerURL == "" {
		aliases.IndexerURL = DefaultAliasesIndexerURL
	}
	return aliases
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
