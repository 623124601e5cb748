package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func readRecords(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "marquee.log")
	logger, err := New(path, false)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("started", zap.Int("slides", 3))
	require.NoError(t, logger.Sync())

	records := readRecords(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, "started", records[0]["msg"])
	assert.Equal(t, "info", records[0]["level"])
	assert.EqualValues(t, 3, records[0]["slides"])
}

func TestNew_DebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.log")
	logger, err := New(path, true)
	require.NoError(t, err)

	logger.Debug("teleport", zap.Int("from", 16), zap.Int("to", 4))
	require.NoError(t, logger.Sync())

	records := readRecords(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, "debug", records[0]["level"])
}

func TestNew_EmptyPathIsNop(t *testing.T) {
	logger, err := New("  ", true)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	logger.Info("dropped")
}
