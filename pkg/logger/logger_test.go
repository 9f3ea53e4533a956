package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Logger Tests
// ============================================================================

func TestNewWithWriter_EmitsJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("dashboard-shell", "info", &buf)

	log.Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dashboard-shell", entry["component"])
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("test", "warn", &buf)

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestNewWithWriter_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("test", "chatty", &buf)

	log.Debug("dropped")
	assert.Zero(t, buf.Len())

	log.Info("kept")
	assert.NotZero(t, buf.Len())
}

// ============================================================================
// Context Enrichment Tests
// ============================================================================

func TestWithContext_AddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter("test", "info", &buf)

	ctx := WithCorrelationID(context.Background(), "req-123")
	ctx = WithAccount(ctx, "u1", "traveler")

	WithContext(ctx, base).Info("enriched")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["correlation_id"])
	assert.Equal(t, "u1", entry["account_id"])
	assert.Equal(t, "traveler", entry["role"])
}

func TestFromContext_RoundTrip(t *testing.T) {
	log := NewWithWriter("test", "info", &bytes.Buffer{})
	ctx := NewContext(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
}

func TestCorrelationIDFromContext_Missing(t *testing.T) {
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
}
