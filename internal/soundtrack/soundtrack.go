// Package soundtrack plays an optional looping background track.
package soundtrack

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"
	"github.com/pkg/errors"

	"github.com/iburimskiy/spider-web/internal/log"
)

const ringSize = 4096

var ErrUnsupported = errors.New("soundtrack: unsupported file type")

type Player struct {
	log *log.Logger

	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *tap

	paused   bool
	initDone bool
}

func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Discard()
	}
	return &Player{log: logger}
}

// Loaded reports whether a track is attached to the speaker.
func (p *Player) Loaded() bool { return p.ctrl != nil }

func (p *Player) Paused() bool { return p.paused }

// Level is the loudness of the most recently played audio, in [0,1].
func (p *Player) Level() float64 {
	if p.tap == nil || p.paused {
		return 0
	}
	return p.tap.level()
}

// Pick asks the user for a track. Cancelling the dialog is not an error.
func (p *Player) Pick() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return errors.Wrap(err, "select soundtrack")
	}
	p.log.Infof("selected soundtrack %s", filename)
	return p.Load(filename)
}

// Load decodes path and starts looping it, replacing any current track.
func (p *Player) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open soundtrack")
	}

	streamer, format, err := decode(f, path)
	if err != nil {
		_ = f.Close()
		return err
	}

	t := newTap(beep.Loop(-1, streamer), ringSize)
	ctrl := &beep.Ctrl{Streamer: t, Paused: false}

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return errors.Wrap(err, "init speaker")
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			// the old track was cleared from the speaker above
			p.detach()
			return errors.Wrap(err, "reinit speaker")
		}
	default:
		speaker.Clear()
	}
	p.release()

	p.file = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = t
	p.paused = false

	speaker.Play(ctrl)
	p.log.Infof("playing %s at %d Hz", filepath.Base(path), format.SampleRate)
	return nil
}

// Toggle pauses or resumes the current track; it is a no-op without one.
func (p *Player) Toggle() {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
	p.log.Debugf("soundtrack paused=%v", p.paused)
}

func (p *Player) Close() error {
	if p.ctrl == nil {
		return nil
	}
	speaker.Clear()
	p.detach()
	return nil
}

// detach forgets the current track once the speaker no longer plays it.
func (p *Player) detach() {
	p.release()
	p.ctrl = nil
	p.tap = nil
	p.paused = false
}

func (p *Player) release() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		_ = p.file.Close()
		p.file = nil
	}
}

func decode(f *os.File, path string) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		return nil, beep.Format{}, errors.Wrapf(ErrUnsupported, "%q", ext)
	}
	if err != nil {
		return nil, beep.Format{}, errors.Wrapf(err, "decode %s", filepath.Base(path))
	}
	return streamer, format, nil
}
