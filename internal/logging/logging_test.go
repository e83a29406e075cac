package logging

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentTagsEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(zerolog.New(&buf), "sheet")

	logger.Info().Msg("exported")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sheet", entry["component"])
	assert.Equal(t, "exported", entry["message"])
}

func TestNewLevelFallback(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, New("", false).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New("chatty", false).GetLevel())
	assert.Equal(t, zerolog.DebugLevel, New("debug", true).GetLevel())
}
