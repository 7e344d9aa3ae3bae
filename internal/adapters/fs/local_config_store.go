package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/representatives-dao/repms/internal/domain/config"
	"github.com/representatives-dao/repms/internal/usecase"
)

// LocalConfigFile is the name of the user defaults file inside the data dir
const LocalConfigFile = "config.local.json"

// LocalConfigStoreAdapter keeps the user defaults set with `repms config`
// in <data dir>/config.local.json.
type LocalConfigStoreAdapter struct {
	fs   afero.Fs
	path string
}

// NewLocalConfigStoreAdapter creates a store backed by the OS file system
func NewLocalConfigStoreAdapter(cfg *config.RuntimeConfig) *LocalConfigStoreAdapter {
	return newLocalConfigStore(afero.NewOsFs(), cfg.DataDir)
}

func newLocalConfigStore(fsys afero.Fs, dataDir string) *LocalConfigStoreAdapter {
	return &LocalConfigStoreAdapter{fs: fsys, path: filepath.Join(dataDir, LocalConfigFile)}
}

// Exists reports whether defaults were saved before
func (s *LocalConfigStoreAdapter) Exists() bool {
	ok, _ := afero.Exists(s.fs, s.path)
	return ok
}

// Load returns the saved defaults, or the built-in ones when nothing was saved.
func (s *LocalConfigStoreAdapter) Load(ctx context.Context) (*config.LocalConfig, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return config.DefaultLocalConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	local := config.DefaultLocalConfig()
	if err := json.Unmarshal(data, local); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", s.path, err)
	}
	// an explicit empty network falls back to the default too
	if local.Network == "" {
		local.Network = config.DefaultLocalConfig().Network
	}
	return local, nil
}

// Save replaces the defaults file. The new content is written to a temporary
// file in the same directory and renamed over the old one, so readers never
// see a partial file.
func (s *LocalConfigStoreAdapter) Save(ctx context.Context, local *config.LocalConfig) error {
	data, err := json.MarshalIndent(local, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	_, err = tmp.Write(append(data, '\n'))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = s.fs.Chmod(tmp.Name(), 0o644)
	}
	if err == nil {
		err = s.fs.Rename(tmp.Name(), s.path)
	}
	if err != nil {
		_ = s.fs.Remove(tmp.Name())
		return fmt.Errorf("failed to save config to %s: %w", s.path, err)
	}
	return nil
}

// GetPath returns the path of the defaults file
func (s *LocalConfigStoreAdapter) GetPath() string {
	return s.path
}

var _ usecase.LocalConfigStore = (*LocalConfigStoreAdapter)(nil)
