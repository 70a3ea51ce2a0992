package soundtrack

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/pkg/errors"
)

func constant(v float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{v, v}
		}
		return len(samples), true
	})
}

func TestTapRecordsAndPassesThrough(t *testing.T) {
	tp := newTap(constant(0.5), 8)
	if tp.level() != 0 {
		t.Fatalf("empty tap should be silent")
	}
	buf := make([][2]float64, 5)
	n, ok := tp.Stream(buf)
	if n != 5 || !ok || buf[4][0] != 0.5 {
		t.Fatalf("stream n=%d ok=%v buf=%v", n, ok, buf)
	}
	want := math.Pow(0.5, 0.3)
	if got := tp.level(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("level=%v want %v", got, want)
	}
	// wrap the ring more than once
	tp.Stream(make([][2]float64, 20))
	if tp.filled != 8 {
		t.Fatalf("filled=%d want 8", tp.filled)
	}
	if err := tp.Err(); err != nil {
		t.Fatalf("err=%v", err)
	}
}

func TestTapSilence(t *testing.T) {
	tp := newTap(constant(0), 16)
	tp.Stream(make([][2]float64, 16))
	if got := tp.level(); got != 0 {
		t.Fatalf("silence level=%v", got)
	}
}

func TestLoadRejectsUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(nil)
	err := p.Load(path)
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err=%v want ErrUnsupported", err)
	}
	if p.Loaded() {
		t.Fatalf("player loaded a rejected track")
	}
}

func TestLoadReportsDecodeErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.WAV")
	if err := os.WriteFile(path, []byte("definitely not riff"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(nil)
	err := p.Load(path)
	if err == nil || errors.Is(err, ErrUnsupported) {
		t.Fatalf("err=%v want a decode error", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	p := NewPlayer(nil)
	if err := p.Load(filepath.Join(t.TempDir(), "nope.mp3")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}

func TestIdlePlayer(t *testing.T) {
	p := NewPlayer(nil)
	p.Toggle()
	if p.Paused() || p.Loaded() || p.Level() != 0 {
		t.Fatalf("idle player changed state")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestDetachForgetsTrack(t *testing.T) {
	p := NewPlayer(nil)
	tp := newTap(constant(0.5), 8)
	tp.Stream(make([][2]float64, 8))
	p.tap = tp
	p.ctrl = &beep.Ctrl{Streamer: tp}
	p.paused = true
	if !p.Loaded() {
		t.Fatalf("player should report the attached track")
	}

	p.detach()
	if p.Loaded() || p.Paused() || p.Level() != 0 {
		t.Fatalf("detached player still reports a track: loaded=%v paused=%v level=%v", p.Loaded(), p.Paused(), p.Level())
	}
	// toggling without a track stays a no-op
	p.Toggle()
	if p.Paused() {
		t.Fatalf("toggle without a track changed state")
	}
}
