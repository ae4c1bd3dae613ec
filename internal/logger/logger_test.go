package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInit_LevelFollowsVerbose(t *testing.T) {
	t.Cleanup(func() { Init(&bytes.Buffer{}, false) })

	var buf bytes.Buffer
	Init(&buf, false)
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	SetVerbose(true)
	log.Debug().Str("path", "data/source.xlsx").Msg("visible")

	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "data/source.xlsx")
}

func TestInit_NoColorForBuffers(t *testing.T) {
	t.Cleanup(func() { Init(&bytes.Buffer{}, false) })

	var buf bytes.Buffer
	Init(&buf, false)
	log.Warn().Msg("plain")

	assert.NotContains(t, buf.String(), "\x1b[")
}
