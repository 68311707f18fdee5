package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(&buf, "debug", "json")
	require.Equal(t, log.DebugLevel, logger.GetLevel())

	logger.WithField("codigo", "ABC123456").Info("Producto creado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "Producto creado", entry["msg"])
	require.Equal(t, "ABC123456", entry["codigo"])
}

func TestNewWithOutput_TextAndBadLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(&buf, "chatty", "TEXT")
	require.Equal(t, log.InfoLevel, logger.GetLevel())

	logger.Debug("hidden")
	logger.Info("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "msg=shown")
}
