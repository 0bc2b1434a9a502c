package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("Bill added", "bill_id", "b1")
	assert.Empty(t, buf.String())

	logger.Warn("Transaction conflict, retrying", "op", "add payment")
	assert.Contains(t, buf.String(), "Transaction conflict, retrying")
	assert.Contains(t, buf.String(), "op=")
	assert.NotContains(t, buf.String(), "\x1b[", "no color outside a terminal")
}
