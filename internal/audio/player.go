package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// ErrNoOutput indicates the audio device could not be opened.
var ErrNoOutput = errors.New("audio output unavailable")

// NotificationError reports a chime that could not be played.
type NotificationError struct {
	Op   string
	Path string
	Err  error
}

func (err *NotificationError) Error() string {
	return fmt.Sprintf("chime %s %s: %v", err.Op, err.Path, err.Err)
}

func (err *NotificationError) Unwrap() error {
	return err.Err
}

// Output is the device chimes are played on.
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(streamer beep.Streamer)
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerOutput) Play(streamer beep.Streamer) {
	speaker.Play(streamer)
}

// Options controls what is played and how loud.
type Options struct {
	// Asset is played when File is empty.
	Asset []byte
	// File is an optional .wav or .mp3 on disk.
	File    string
	Volume  float64
	Enabled bool
}

// Player plays the interval chime.
type Player struct {
	mu       sync.Mutex
	options  Options
	output   Output
	rate     beep.SampleRate
	ready    bool
	inflight sync.WaitGroup
}

const embeddedName = "embedded.wav"

// NewPlayer creates a player on the default speaker.
func NewPlayer(options Options) *Player {
	return NewPlayerWithOutput(options, speakerOutput{})
}

// NewPlayerWithOutput creates a player on the given output.
func NewPlayerWithOutput(options Options, output Output) *Player {
	return &Player{
		options: options,
		output:  output,
	}
}

// UpdateOptions replaces the player options.
func (player *Player) UpdateOptions(options Options) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.options = options
}

// PlayChime plays the chime in the background. Failures are logged and dropped.
func (player *Player) PlayChime() {
	player.inflight.Add(1)
	go func() {
		defer player.inflight.Done()
		if err := player.Play(); err != nil {
			log.Printf("chime: %v", err)
		}
	}()
}

// Wait blocks until background chimes have been queued.
func (player *Player) Wait() {
	player.inflight.Wait()
}

// Play decodes the chime and queues it on the output.
func (player *Player) Play() error {
	player.mu.Lock()
	defer player.mu.Unlock()

	if !player.options.Enabled {
		return nil
	}

	name, reader, err := player.open()
	if err != nil {
		return &NotificationError{Op: "open", Path: name, Err: err}
	}

	streamer, format, err := decode(name, reader)
	if err != nil {
		_ = reader.Close()
		return &NotificationError{Op: "decode", Path: name, Err: err}
	}

	if !player.ready {
		if err := player.output.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			_ = streamer.Close()
			return &NotificationError{Op: "play", Path: name, Err: fmt.Errorf("%w: %v", ErrNoOutput, err)}
		}
		player.rate = format.SampleRate
		player.ready = true
	}

	var source beep.Streamer = streamer
	if format.SampleRate != player.rate {
		source = beep.Resample(4, format.SampleRate, player.rate, streamer)
	}

	player.output.Play(beep.Seq(withVolume(source, player.options.Volume), beep.Callback(func() {
		_ = streamer.Close()
	})))
	return nil
}

func (player *Player) open() (string, io.ReadCloser, error) {
	if player.options.File != "" {
		file, err := os.Open(player.options.File)
		if err != nil {
			return player.options.File, nil, err
		}
		return player.options.File, file, nil
	}
	if len(player.options.Asset) == 0 {
		return embeddedName, nil, errors.New("no chime asset")
	}
	return embeddedName, io.NopCloser(bytes.NewReader(player.options.Asset)), nil
}

func decode(name string, reader io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3":
		return mp3.Decode(reader)
	case ".wav":
		return wav.Decode(reader)
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported format %q", filepath.Ext(name))
	}
}

// withVolume maps a linear 0..1 volume onto beep's base-2 gain.
func withVolume(streamer beep.Streamer, volume float64) beep.Streamer {
	if volume >= 1 {
		return streamer
	}
	if volume <= 0 {
		return &effects.Volume{Streamer: streamer, Base: 2, Silent: true}
	}
	return &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   math.Log2(volume),
	}
}
