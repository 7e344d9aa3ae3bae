package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/representatives-dao/repms/internal/domain/config"
	"github.com/representatives-dao/repms/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}

func orNotSet(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

// RenderConfig renders the configuration display
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if result.Exists {
		fmt.Fprintln(r.out, "📋 Current config:")
		fmt.Fprintf(r.out, "Network:   %s\n", result.Config.Network)
		fmt.Fprintf(r.out, "Account:   %s\n", orNotSet(result.Config.Account))
		fmt.Fprintf(r.out, "Signer:    %s\n", orNotSet(result.Config.Signer))
		fmt.Fprintf(r.out, "Contract:  %s\n", orNotSet(result.Config.Contract))
		fmt.Fprintf(r.out, "📁 config file: %s\n", getRelativePath(result.ConfigPath))
	} else {
		fmt.Fprintf(r.out, "❌ No %s file found\n", getRelativePath(result.ConfigPath))
	}

	if rt := result.Runtime; rt != nil {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "⚙️  Resolved settings:")
		if rt.Network != nil {
			fmt.Fprintf(r.out, "Network:   %s (%s)\n", rt.Network.Name, rt.Network.IndexerURL)
		}
		fmt.Fprintf(r.out, "Account:   %s\n", orNotSet(rt.Account))
		fmt.Fprintf(r.out, "Signer:    %s\n", orNotSet(rt.Signing()))
		fmt.Fprintf(r.out, "Contract:  %s\n", orNotSet(rt.Contract))
		if rt.ConfigSource == "repms.toml" {
			fmt.Fprintf(r.out, "\n📦 Config source: repms.toml\n")
		}
	}

	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintf(r.out, "✅ Set %s to: %s\n", result.Key, result.Value)
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch result.Key {
	case config.ConfigKeyNetwork:
		fmt.Fprintf(r.out, "✅ Reset network to: %s\n", result.UpdatedConfig.Network)
	default:
		fmt.Fprintf(r.out, "✅ Removed %s from config\n", result.Key)
	}

	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}
