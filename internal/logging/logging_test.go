package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info").With("service", "coffee_shop")

	ctx := IntoContext(context.Background(), l)
	FromContext(ctx).Info("cart_updated", "status", 200)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "cart_updated", rec["msg"])
	assert.Equal(t, "coffee_shop", rec["service"])
	assert.EqualValues(t, 200, rec["status"])

	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}
