package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/representatives-dao/repms/internal/domain/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		"INFO":   slog.LevelInfo,
		" warn ": slog.LevelWarn,
		"error":  slog.LevelError,
		"":       slog.LevelWarn,
		"loud":   slog.LevelWarn,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewLogger_Debug(t *testing.T) {
	t.Setenv("REPMS_LOG_LEVEL", "error")

	logger := NewLogger(&config.RuntimeConfig{Debug: true})
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger = NewLogger(&config.RuntimeConfig{})
	assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/codec/encode.go", shortPath("/home/dev/repms/internal/codec/encode.go"))
	assert.Equal(t, "main.go", shortPath("/somewhere/else/main.go"))
}
