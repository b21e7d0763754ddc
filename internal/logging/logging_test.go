package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestNewJSONRespectsLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	log := New(Config{Level: "warn", Format: "json", Output: buf})

	log.Info().Msg("hidden")
	require.Zero(t, buf.Len())

	log.Warn().Str("op", "readMovie").Msg("failed")
	assert.Contains(t, buf.String(), `"op":"readMovie"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestNewConsole(t *testing.T) {
	buf := new(bytes.Buffer)
	log := New(Config{Output: buf})
	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}
