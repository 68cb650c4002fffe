package logging

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func resetLogging(t *testing.T) {
	t.Cleanup(func() {
		SetOutput(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
		SetLevel("info")
	})
}

func TestNewLogger_Component(t *testing.T) {
	resetLogging(t)
	var buf bytes.Buffer
	SetOutput(&buf)

	log := NewLogger("bridge")
	log.Info().Str("url", "https://example.com").Msg("fetching")

	assert.Contains(t, buf.String(), `"component":"bridge"`)
	assert.Contains(t, buf.String(), `"url":"https://example.com"`)
	assert.Contains(t, buf.String(), `"message":"fetching"`)
}

func TestSetLevel(t *testing.T) {
	resetLogging(t)
	var buf bytes.Buffer
	SetOutput(&buf)

	SetLevel("warn")
	log := NewLogger("test")
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetLevel_Unknown(t *testing.T) {
	resetLogging(t)
	var buf bytes.Buffer
	SetOutput(&buf)

	SetLevel("loud")
	log := NewLogger("test")
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
