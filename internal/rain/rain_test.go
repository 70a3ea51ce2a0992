package rain

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func run(r *Rain, step time.Duration, n int) {
	for i := 0; i < n; i++ {
		r.Update(step)
	}
}

func TestFirstDigitSpawnsImmediately(t *testing.T) {
	r := New(rand.New(rand.NewSource(1)), DefaultOptions())
	r.Update(0)
	if got := len(r.Digits()); got != 1 {
		t.Fatalf("digits=%d want 1", got)
	}
	if got := len(r.Lines()); got != 0 {
		t.Fatalf("lines=%d want 0", got)
	}
}

func TestSpawnSchedule(t *testing.T) {
	r := New(rand.New(rand.NewSource(1)), DefaultOptions())
	run(r, 100*time.Millisecond, 100) // 10s

	// 50 staggered initial digits plus one every 300ms.
	if got := len(r.Digits()); got != 50+33 {
		t.Fatalf("digits=%d want 83", got)
	}
	// Lines spawn every 800ms and live 4s: 6.4, 7.2, 8.0, 8.8, 9.6.
	if got := len(r.Lines()); got != 5 {
		t.Fatalf("lines=%d want 5", got)
	}
	if r.clock != 10*time.Second {
		t.Fatalf("clock=%v", r.clock)
	}
}

func TestDigitsExpire(t *testing.T) {
	r := New(rand.New(rand.NewSource(1)), DefaultOptions())
	run(r, 100*time.Millisecond, 300) // 30s

	// Only the interval digits from the last 15s survive.
	if got := len(r.Digits()); got != 50 {
		t.Fatalf("digits=%d want 50", got)
	}
	for _, d := range r.Digits() {
		if d.Age >= 15*time.Second {
			t.Fatalf("expired digit kept: %+v", d)
		}
	}
}

func TestDigitRanges(t *testing.T) {
	r := New(rand.New(rand.NewSource(7)), DefaultOptions())
	run(r, 50*time.Millisecond, 200)
	for _, d := range r.Digits() {
		if d.Glyph != '0' && d.Glyph != '1' {
			t.Fatalf("glyph %q", d.Glyph)
		}
		if d.XFrac < 0 || d.XFrac >= 1 {
			t.Fatalf("xfrac %v", d.XFrac)
		}
		if d.Duration < 8*time.Second || d.Duration >= 18*time.Second {
			t.Fatalf("duration %v", d.Duration)
		}
		if d.Delay < 0 || d.Delay >= 5*time.Second {
			t.Fatalf("delay %v", d.Delay)
		}
		if d.Size < 12 || d.Size >= 22 || d.Opacity < 0.3 || d.Opacity >= 1 {
			t.Fatalf("size/opacity %v/%v", d.Size, d.Opacity)
		}
	}
}

func TestDeterministic(t *testing.T) {
	a := New(rand.New(rand.NewSource(99)), DefaultOptions())
	b := New(rand.New(rand.NewSource(99)), DefaultOptions())
	run(a, 16*time.Millisecond, 500)
	run(b, 16*time.Millisecond, 500)
	da, db := a.Digits(), b.Digits()
	if len(da) != len(db) {
		t.Fatalf("len %d vs %d", len(da), len(db))
	}
	for i := range da {
		if da[i] != db[i] {
			t.Fatalf("digit %d differs", i)
		}
	}
}

func TestDigitMotion(t *testing.T) {
	d := Digit{Duration: 10 * time.Second, Delay: time.Second, Size: 10, Opacity: 0.6}
	if d.Falling() || d.Alpha() != 0 {
		t.Fatalf("digit visible during its delay")
	}
	if y := d.Y(500); y != -10 {
		t.Fatalf("start y=%v want -10", y)
	}
	d.Age = 6 * time.Second
	if !d.Falling() || d.Alpha() != 0.6 {
		t.Fatalf("digit should be falling at full opacity")
	}
	if y := d.Y(500); math.Abs(y-250) > 1e-9 {
		t.Fatalf("midway y=%v want 250", y)
	}
	d.Age = 11 * time.Second
	if d.Falling() {
		t.Fatalf("digit still falling after its duration")
	}
	if y := d.Y(500); y != 510 {
		t.Fatalf("end y=%v want 510", y)
	}
}

func TestLineKeyframes(t *testing.T) {
	l := Line{Lifetime: 4 * time.Second, Length: 100}
	cases := []struct {
		age                   time.Duration
		wantY, wantS, wantOpc float64
	}{
		{0, -100, 0, 0},
		{200 * time.Millisecond, -100, 0.5, 0.35},
		{2 * time.Second, -100, 1, 0.7},
		{3600 * time.Millisecond, -100, 1, 0.7},
		{3800 * time.Millisecond, -100 + 0.5*600, 0.5, 0.35},
		{4 * time.Second, 500, 0, 0},
	}
	for _, tc := range cases {
		l.Age = tc.age
		y, s, o := l.Sample(600)
		if math.Abs(y-tc.wantY) > 1e-9 || math.Abs(s-tc.wantS) > 1e-9 || math.Abs(o-tc.wantOpc) > 1e-9 {
			t.Fatalf("age %v: got (%v,%v,%v) want (%v,%v,%v)", tc.age, y, s, o, tc.wantY, tc.wantS, tc.wantOpc)
		}
	}
}

func TestLargeJumpDropsStaleSpawns(t *testing.T) {
	r := New(rand.New(rand.NewSource(3)), DefaultOptions())
	r.Update(60 * time.Second)
	for _, d := range r.Digits() {
		if d.Age >= 15*time.Second {
			t.Fatalf("stale digit %+v", d)
		}
	}
	for _, l := range r.Lines() {
		if l.Age >= l.Lifetime {
			t.Fatalf("stale line %+v", l)
		}
	}
}
