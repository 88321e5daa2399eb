package audio

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"pomodoro/resources"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutput struct {
	mu      sync.Mutex
	initErr error
	inits   []beep.SampleRate
	samples int
	plays   int
}

func (output *fakeOutput) Init(rate beep.SampleRate, bufferSize int) error {
	output.mu.Lock()
	defer output.mu.Unlock()
	output.inits = append(output.inits, rate)
	return output.initErr
}

func (output *fakeOutput) Play(streamer beep.Streamer) {
	buffer := make([][2]float64, 512)
	total := 0
	for {
		n, ok := streamer.Stream(buffer)
		total += n
		if !ok {
			break
		}
	}
	output.mu.Lock()
	output.plays++
	output.samples += total
	output.mu.Unlock()
}

func enabledOptions() Options {
	return Options{Asset: resources.Chime(), Volume: 1, Enabled: true}
}

func TestPlayEmbeddedChime(t *testing.T) {
	output := &fakeOutput{}
	player := NewPlayerWithOutput(enabledOptions(), output)

	require.NoError(t, player.Play())
	require.NoError(t, player.Play())

	assert.Equal(t, []beep.SampleRate{44100}, output.inits)
	assert.Equal(t, 2, output.plays)
	assert.Greater(t, output.samples, 0)
}

func TestPlayDisabled(t *testing.T) {
	output := &fakeOutput{}
	options := enabledOptions()
	options.Enabled = false
	player := NewPlayerWithOutput(options, output)

	require.NoError(t, player.Play())
	assert.Zero(t, output.plays)
}

func TestPlayQuietVolume(t *testing.T) {
	for _, volume := range []float64{0, 0.25} {
		output := &fakeOutput{}
		options := enabledOptions()
		options.Volume = volume
		player := NewPlayerWithOutput(options, output)

		require.NoError(t, player.Play())
		assert.Equal(t, 1, output.plays)
	}
}

func TestPlayMissingFile(t *testing.T) {
	options := enabledOptions()
	options.File = filepath.Join(t.TempDir(), "missing.wav")
	player := NewPlayerWithOutput(options, &fakeOutput{})

	err := player.Play()

	var notificationErr *NotificationError
	require.ErrorAs(t, err, &notificationErr)
	assert.Equal(t, "open", notificationErr.Op)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPlayCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wave file"), 0o644))
	options := enabledOptions()
	options.File = path
	player := NewPlayerWithOutput(options, &fakeOutput{})

	err := player.Play()

	var notificationErr *NotificationError
	require.ErrorAs(t, err, &notificationErr)
	assert.Equal(t, "decode", notificationErr.Op)
	assert.Equal(t, path, notificationErr.Path)
}

func TestPlayUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chime.ogg")
	require.NoError(t, os.WriteFile(path, []byte("OggS"), 0o644))
	options := enabledOptions()
	options.File = path
	player := NewPlayerWithOutput(options, &fakeOutput{})

	err := player.Play()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestPlayCustomWaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.WAV")
	require.NoError(t, os.WriteFile(path, resources.Chime(), 0o644))
	options := enabledOptions()
	options.File = path
	output := &fakeOutput{}
	player := NewPlayerWithOutput(options, output)

	require.NoError(t, player.Play())
	assert.Equal(t, 1, output.plays)
}

func TestPlayNoOutput(t *testing.T) {
	output := &fakeOutput{initErr: errors.New("no device")}
	player := NewPlayerWithOutput(enabledOptions(), output)

	err := player.Play()

	assert.ErrorIs(t, err, ErrNoOutput)
	assert.Zero(t, output.plays)

	output.initErr = nil
	require.NoError(t, player.Play())
	assert.Len(t, output.inits, 2)
}

func TestPlayChimeSwallowsErrors(t *testing.T) {
	options := enabledOptions()
	options.Asset = nil
	output := &fakeOutput{}
	player := NewPlayerWithOutput(options, output)

	assert.NotPanics(t, func() {
		player.PlayChime()
		player.Wait()
	})
	assert.Zero(t, output.plays)

	player.UpdateOptions(enabledOptions())
	player.PlayChime()
	player.Wait()
	assert.Equal(t, 1, output.plays)
}
