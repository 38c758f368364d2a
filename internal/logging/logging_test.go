package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	loc := time.FixedZone("WIB", 7*60*60)

	log := New(&buf, loc)
	log.Info().Str("component", "test").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "test", entry["component"])

	ts, ok := entry["ts"].(string)
	require.True(t, ok)
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	require.NoError(t, err)
	_, offset := parsed.Zone()
	assert.Equal(t, 7*60*60, offset)
}

func TestNewNilLocation(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, nil)
	log.Error().Msg("boom")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Contains(t, entry["ts"], "Z")
}

func TestDefaultWritesToStderr(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stderr
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = orig })

	logger := Default()
	logger.Error().Str("command", "serve").Msg("command_failed")
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(out, &entry))
	assert.Equal(t, "command_failed", entry["msg"])
	assert.Equal(t, "serve", entry["command"])
	assert.Contains(t, entry["ts"], "Z")
}
