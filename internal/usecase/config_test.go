package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/representatives-dao/repms/internal/domain/config"
	"github.com/representatives-dao/repms/internal/usecase"
)

func TestSetConfig(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
		check   func(t *testing.T, cfg *config.LocalConfig)
	}{
		{
			name:  "network alias",
			key:   "net",
			value: "ghostnet",
			check: func(t *testing.T, cfg *config.LocalConfig) {
				assert.Equal(t, "ghostnet", cfg.Network)
			},
		},
		{
			name:  "account",
			key:   "account",
			value: alice,
			check: func(t *testing.T, cfg *config.LocalConfig) {
				assert.Equal(t, alice, cfg.Account)
			},
		},
		{
			name:  "signer accepts octez aliases",
			key:   "Signer",
			value: "my-key",
			check: func(t *testing.T, cfg *config.LocalConfig) {
				assert.Equal(t, "my-key", cfg.Signer)
			},
		},
		{
			name:    "invalid contract",
			key:     "contract",
			value:   "KT1nope",
			wantErr: "invalid",
		},
		{
			name:    "unknown key",
			key:     "namespace",
			value:   "x",
			wantErr: "Available keys: network (net), account, signer, contract",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockLocalConfigStore{}
			uc := usecase.NewSetConfig(store)

			result, err := uc.Run(ctx, usecase.SetConfigParams{Key: tt.key, Value: tt.value})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Zero(t, store.saved)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, store.saved)
			assert.Equal(t, store.GetPath(), result.ConfigPath)
			tt.check(t, store.config)
		})
	}
}

func TestRemoveConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("network resets to the default", func(t *testing.T) {
		store := &MockLocalConfigStore{config: &config.LocalConfig{Network: "ghostnet", Account: alice}}
		uc := usecase.NewRemoveConfig(store)

		result, err := uc.Run(ctx, usecase.RemoveConfigParams{Key: "network"})
		require.NoError(t, err)
		assert.Equal(t, "ghostnet", result.RemovedValue)
		assert.Equal(t, config.DefaultLocalConfig().Network, store.config.Network)
		assert.Equal(t, alice, store.config.Account)
	})

	t.Run("account is cleared", func(t *testing.T) {
		store := &MockLocalConfigStore{config: &config.LocalConfig{Network: "mainnet", Account: alice}}
		uc := usecase.NewRemoveConfig(store)

		result, err := uc.Run(ctx, usecase.RemoveConfigParams{Key: "account"})
		require.NoError(t, err)
		assert.Equal(t, alice, result.RemovedValue)
		assert.Empty(t, store.config.Account)
	})

	t.Run("no config file", func(t *testing.T) {
		uc := usecase.NewRemoveConfig(&MockLocalConfigStore{})
		_, err := uc.Run(ctx, usecase.RemoveConfigParams{Key: "account"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no config file found")
	})
}

func TestShowConfig(t *testing.T) {
	cfg := testConfig(alice)
	store := &MockLocalConfigStore{}

	result, err := usecase.NewShowConfig(cfg, store).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Exists)
	assert.Equal(t, "mainnet", result.Config.Network)
	assert.Same(t, cfg, result.Runtime)
}

func TestUploadFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "proposal.md")
	require.NoError(t, os.WriteFile(path, []byte("# Fund the festival\n"), 0o644))

	t.Run("uploads the file", func(t *testing.T) {
		uploader := new(MockUploader)
		uploader.On("Upload", ctx, path).Return("QmFestival", nil)
		sink := &MockProgressSink{}

		result, err := usecase.NewUploadFile(uploader, sink).Run(ctx, usecase.UploadFileParams{Path: path})
		require.NoError(t, err)
		assert.Equal(t, "QmFestival", result.IPFSPath)
		assert.Equal(t, int64(20), result.Size)
		assert.Equal(t, []string{"uploading", "complete"}, sink.stages())
		uploader.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		uploader := new(MockUploader)
		_, err := usecase.NewUploadFile(uploader, &MockProgressSink{}).
			Run(ctx, usecase.UploadFileParams{Path: filepath.Join(t.TempDir(), "nope.md")})
		require.Error(t, err)
		uploader.AssertNotCalled(t, "Upload")
	})

	t.Run("upload failure", func(t *testing.T) {
		uploader := new(MockUploader)
		uploader.On("Upload", ctx, path).Return("", errors.New("401 unauthorized"))

		_, err := usecase.NewUploadFile(uploader, &MockProgressSink{}).Run(ctx, usecase.UploadFileParams{Path: path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})
}
