package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(&buf, "warn", "gemrun")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("pickup skipped", "object", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "pickup skipped")
	assert.Contains(t, out, "object=4")
	assert.Contains(t, out, "gemrun")
}

func TestNew_DefaultLevel(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(&buf, "", "")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard().Error("nothing", "k", "v")
	})
}
