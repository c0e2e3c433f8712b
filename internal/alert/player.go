// Package alert turns crossing events into audible alerts.
package alert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	apperrors "crypto-alarm/internal/errors"
)

// Player plays a named audio asset to completion.
type Player interface {
	Play(path string) error
}

var _ Player = (*BeepPlayer)(nil)

// BeepPlayer plays WAV and MP3 files through the system speaker. The
// speaker is initialized once at the sample rate of the first file played;
// later files at other rates are resampled.
type BeepPlayer struct {
	initOnce   sync.Once
	initErr    error
	sampleRate beep.SampleRate
}

// NewBeepPlayer creates a speaker-backed player.
func NewBeepPlayer() *BeepPlayer {
	return &BeepPlayer{}
}

// Play decodes the file by extension and blocks until playback finishes.
func (p *BeepPlayer) Play(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return apperrors.NewPlaybackError(path, err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return apperrors.NewPlaybackError(path, fmt.Errorf("unsupported audio format %q", filepath.Ext(path)))
	}
	if err != nil {
		f.Close()
		return apperrors.NewPlaybackError(path, err)
	}
	defer streamer.Close()

	p.initOnce.Do(func() {
		p.sampleRate = format.SampleRate
		p.initErr = speaker.Init(format.SampleRate, format.SampleRate.N(100*time.Millisecond))
	})
	if p.initErr != nil {
		return apperrors.NewPlaybackError(path, p.initErr)
	}

	var stream beep.Streamer = streamer
	if format.SampleRate != p.sampleRate {
		stream = beep.Resample(4, format.SampleRate, p.sampleRate, streamer)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))
	<-done

	return nil
}

// DefaultUpAlert returns the bundled path of the price-increase sound.
func DefaultUpAlert() string {
	return bundledAudio("cha-ching.wav")
}

// DefaultDownAlert returns the bundled path of the price-decrease sound.
func DefaultDownAlert() string {
	return bundledAudio("wilhelm-scream.wav")
}

func bundledAudio(name string) string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Join("audio", name)
	}
	return filepath.Join(filepath.Dir(exe), "audio", name)
}
