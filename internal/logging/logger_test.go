package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tabula.log")

	res, err := New(Config{Level: "debug", File: path})
	require.NoError(t, err)
	logger := Component(res.Logger, "test")
	logger.Debug().Int("n", 3).Msg("hello")
	require.NoError(t, res.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &line))
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "test", line["component"])
	assert.Equal(t, "debug", line["level"])
	assert.EqualValues(t, 3, line["n"])
}

func TestNew_ConsoleLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	res, err := New(Config{Level: "warn", Console: true, Out: &buf})
	require.NoError(t, err)

	res.Logger.Info().Msg("quiet")
	res.Logger.Warn().Msg("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
	assert.NoError(t, res.Close())
}

func TestNew_BadLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	res, err := New(Config{Level: "chatty", Console: true, Out: &buf})
	require.NoError(t, err)

	res.Logger.Debug().Msg("hidden")
	res.Logger.Info().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Nop(t *testing.T) {
	res, err := New(Config{})
	require.NoError(t, err)
	res.Logger.Error().Msg("nowhere")
	assert.NoError(t, res.Close())
}
