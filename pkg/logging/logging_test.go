package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	logger.Info().Str("event_id", "ev-1").Msg("registered")

	out := buf.String()
	assert.Contains(t, out, `"event_id":"ev-1"`)
	assert.Contains(t, out, `"message":"registered"`)
}

func TestNewLoggerFromConfigLevel(t *testing.T) {
	old := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(old)

	logger := NewLoggerFromConfig(&Config{Level: "warn", Format: "json", Output: "discard"})
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestNewLoggerFromConfigNil(t *testing.T) {
	old := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(old)

	logger := NewLoggerFromConfig(nil)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestParseLevelFallback(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel("nonsense"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("ERROR"))
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	ctx := WithLogger(context.Background(), &logger)
	Ctx(ctx).Info().Msg("from context")

	assert.True(t, strings.Contains(buf.String(), "from context"))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))
	assert.Equal(t, Default(), FromContext(nil)) //nolint:staticcheck // nil context fallback is the point
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	ctx := WithLogger(context.Background(), &logger)
	ctx = WithRequestID(ctx, "req-123")

	assert.Equal(t, "req-123", RequestID(ctx))

	Ctx(ctx).Info().Msg("tagged")
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
}
