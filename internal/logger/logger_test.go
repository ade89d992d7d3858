package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow-dev/taskflow/internal/config"
)

func TestNewWithWriter_ProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer

	log, err := NewWithWriter(config.EnvProd, &buf)
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())

	log.Debug().Msg("hidden")
	log.Info().Str("project_id", "7").Msg("created project")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "created project", entry["message"])
	assert.Equal(t, "7", entry["project_id"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewWithWriter_Levels(t *testing.T) {
	dev, err := NewWithWriter(config.EnvDev, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, dev.GetLevel())

	local, err := NewWithWriter(config.EnvLocal, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, zerolog.TraceLevel, local.GetLevel())
}

func TestNewWithWriter_UnknownEnv(t *testing.T) {
	_, err := NewWithWriter("staging", &bytes.Buffer{})
	assert.Error(t, err)
}
