package main

import (
	"bytes"
	"flag"
	"testing"
	"time"

	"pomodoro/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := parseFlags(nil, &bytes.Buffer{})

	require.NoError(t, err)
	assert.False(t, opts.tui)
	assert.Empty(t, opts.configPath)
	assert.Equal(t, preferences.DefaultSettings(), opts.apply(preferences.DefaultSettings()))
}

func TestParseFlagsOverrides(t *testing.T) {
	opts, err := parseFlags([]string{"-tui", "-config", "/tmp/p.yaml", "-work", "50m", "-break", "10m"}, &bytes.Buffer{})
	require.NoError(t, err)

	settings := opts.apply(preferences.DefaultSettings())

	assert.True(t, opts.tui)
	assert.Equal(t, "/tmp/p.yaml", opts.configPath)
	assert.Equal(t, 50*time.Minute, settings.WorkDuration)
	assert.Equal(t, 10*time.Minute, settings.BreakDuration)
}

func TestParseFlagsErrors(t *testing.T) {
	var output bytes.Buffer

	_, err := parseFlags([]string{"-work", "-5m"}, &output)
	assert.ErrorContains(t, err, "negative")

	_, err = parseFlags([]string{"extra"}, &output)
	assert.ErrorContains(t, err, "unexpected argument")

	_, err = parseFlags([]string{"-h"}, &output)
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, output.String(), "-tui")
}

func TestChimeOptions(t *testing.T) {
	settings := preferences.DefaultSettings()
	settings.ChimeFile = "/tmp/bell.mp3"
	settings.ChimeVolume = 0.3

	chime := chimeOptions(settings)

	assert.NotEmpty(t, chime.Asset)
	assert.Equal(t, "/tmp/bell.mp3", chime.File)
	assert.InDelta(t, 0.3, chime.Volume, 1e-9)
	assert.True(t, chime.Enabled)
}
