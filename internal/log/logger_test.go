package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithComponentAnnotatesEntries(t *testing.T) {
	var buf bytes.Buffer
	Reconfigure(Config{Level: "debug", Output: &buf, Service: "tomato-test"})

	logger := WithComponent("timekeeper")
	logger.Info().Str("session", "work").Msg("started")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tomato-test", entry["service"])
	assert.Equal(t, "timekeeper", entry["component"])
	assert.Equal(t, "work", entry["session"])
	assert.Equal(t, "started", entry["message"])
}

func TestConfigureKeepsFirstConfiguration(t *testing.T) {
	var first, second bytes.Buffer
	Reconfigure(Config{Output: &first})
	Configure(Config{Output: &second})

	logger := Base()
	logger.Info().Msg("hello")
	assert.NotZero(t, first.Len())
	assert.Zero(t, second.Len())
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Reconfigure(Config{Level: "chatty", Output: &buf})

	logger := Base()
	logger.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
	logger.Info().Msg("shown")
	assert.NotZero(t, buf.Len())
}
