package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedactsCredentials(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewWithCore(core)

	log.Info("provider ready", "provider", "openai", "api_key", "sk-live-123", "tokens_used", 42)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "[REDACTED]", fields["api_key"])
	assert.Equal(t, "openai", fields["provider"])
	assert.EqualValues(t, 42, fields["tokens_used"])
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewWithCore(core).With("request_id", "abc", "Authorization", "Bearer x")

	log.Warn("slow call")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "abc", fields["request_id"])
	assert.Equal(t, "[REDACTED]", fields["Authorization"])
}

func TestOddKeyValues(t *testing.T) {
	out := sanitizeKVs([]interface{}{"a", 1, "dangling"})
	assert.Equal(t, []interface{}{"a", 1, "dangling"}, out)
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"development", "production"} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		l.Debug("hello")
	}
	Nop().Error("discarded")
}
