package progress

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/representatives-dao/repms/internal/usecase"
)

func TestSpinnerSink(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var out bytes.Buffer
	sink := newSpinnerSink(&out)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sink.now = func() time.Time { return clock }

	ctx := context.Background()
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "storage", Message: "Downloading the storage", Spinner: true})
	clock = clock.Add(1500 * time.Millisecond)
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "balance", Message: "Downloading the balance", Spinner: true})
	clock = clock.Add(200 * time.Millisecond)
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "complete", Message: "Loaded"})
	sink.Error("aliases are not available")

	got := out.String()
	assert.Contains(t, got, "✓ Downloading the storage (1.5s)\n")
	assert.Contains(t, got, "✓ Downloading the balance (200ms)\n")
	assert.Contains(t, got, "aliases are not available\n")
	assert.NotContains(t, got, "Loaded")
	assert.False(t, sink.spinner.Active())
}

func TestNopSink(t *testing.T) {
	sink := NewNopSink()
	sink.OnProgress(context.Background(), usecase.ProgressEvent{Stage: "x", Spinner: true})
	sink.Info("ignored")
	sink.Error("ignored")
}
