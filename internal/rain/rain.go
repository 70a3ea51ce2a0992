// Package rain drives the falling binary digits and data-flow lines behind the web.
// Time only moves through Update, so a seeded rng gives a repeatable background.
package rain

import (
	"math/rand"
	"time"
)

type Options struct {
	InitialDigits  int
	InitialStagger time.Duration
	SpawnEvery     time.Duration
	DigitLifetime  time.Duration

	FlowEvery    time.Duration
	FlowLifetime time.Duration
	FlowLength   float64
}

func DefaultOptions() Options {
	return Options{
		InitialDigits:  50,
		InitialStagger: 200 * time.Millisecond,
		SpawnEvery:     300 * time.Millisecond,
		DigitLifetime:  15 * time.Second,

		FlowEvery:    800 * time.Millisecond,
		FlowLifetime: 4 * time.Second,
		FlowLength:   100,
	}
}

// Digit is a single falling '0' or '1'.
type Digit struct {
	Glyph    rune
	XFrac    float64 // horizontal position as a fraction of the surface width
	Duration time.Duration
	Delay    time.Duration
	Size     float64 // font size in pixels
	Opacity  float64
	Age      time.Duration
}

// Falling reports whether the digit's delay has passed and its fall is not over.
func (d Digit) Falling() bool {
	return d.Age >= d.Delay && d.Age < d.Delay+d.Duration
}

// Y is the top of the glyph on a surface of height h: from just above the top
// edge to just below the bottom edge over Duration.
func (d Digit) Y(h float64) float64 {
	if d.Duration <= 0 {
		return -d.Size
	}
	p := float64(d.Age-d.Delay) / float64(d.Duration)
	p = clamp01(p)
	return -d.Size + p*(h+2*d.Size)
}

// Alpha is the opacity to draw with, zero when not falling.
func (d Digit) Alpha() float64 {
	if !d.Falling() {
		return 0
	}
	return d.Opacity
}

// Line is one data-flow streak.
type Line struct {
	XFrac    float64
	Age      time.Duration
	Lifetime time.Duration
	Length   float64
}

// Sample returns the line's top y, vertical scale and opacity on a surface of height h.
// The streak grows in place over the first 10% of its life, holds until 90%, then
// drops by h while shrinking and fading out.
func (l Line) Sample(h float64) (y, scaleY, opacity float64) {
	y = -l.Length
	if l.Lifetime <= 0 {
		return y, 0, 0
	}
	p := clamp01(float64(l.Age) / float64(l.Lifetime))

	switch {
	case p < 0.1:
		k := p / 0.1
		return y, k, 0.7 * k
	case p <= 0.9:
		return y, 1, 0.7
	default:
		k := (p - 0.9) / 0.1
		return y + k*h, 1 - k, 0.7 * (1 - k)
	}
}

type Rain struct {
	opts Options
	rng  *rand.Rand

	clock       time.Duration
	initialDone int
	nextDigit   time.Duration
	nextFlow    time.Duration

	digits []Digit
	lines  []Line
}

func New(rng *rand.Rand, opts Options) *Rain {
	return &Rain{
		opts:      opts,
		rng:       rng,
		nextDigit: opts.SpawnEvery,
		nextFlow:  opts.FlowEvery,
	}
}

// Update ages everything by dt, drops expired items and spawns whatever is due.
func (r *Rain) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	r.clock += dt

	kept := r.digits[:0]
	for _, d := range r.digits {
		d.Age += dt
		if d.Age < r.opts.DigitLifetime {
			kept = append(kept, d)
		}
	}
	r.digits = kept

	keptLines := r.lines[:0]
	for _, l := range r.lines {
		l.Age += dt
		if l.Age < l.Lifetime {
			keptLines = append(keptLines, l)
		}
	}
	r.lines = keptLines

	for r.initialDone < r.opts.InitialDigits {
		at := time.Duration(r.initialDone) * r.opts.InitialStagger
		if at > r.clock {
			break
		}
		r.spawnDigit(r.clock - at)
		r.initialDone++
	}
	if r.opts.SpawnEvery > 0 {
		for r.nextDigit <= r.clock {
			r.spawnDigit(r.clock - r.nextDigit)
			r.nextDigit += r.opts.SpawnEvery
		}
	}
	if r.opts.FlowEvery > 0 {
		for r.nextFlow <= r.clock {
			r.spawnLine(r.clock - r.nextFlow)
			r.nextFlow += r.opts.FlowEvery
		}
	}
}

func (r *Rain) spawnDigit(age time.Duration) {
	glyph := '0'
	if r.rng.Intn(2) == 1 {
		glyph = '1'
	}
	d := Digit{
		Glyph:    glyph,
		XFrac:    r.rng.Float64(),
		Duration: time.Duration((r.rng.Float64()*10 + 8) * float64(time.Second)),
		Delay:    time.Duration(r.rng.Float64() * 5 * float64(time.Second)),
		Size:     r.rng.Float64()*10 + 12,
		Opacity:  r.rng.Float64()*0.7 + 0.3,
		Age:      age,
	}
	if d.Age < r.opts.DigitLifetime {
		r.digits = append(r.digits, d)
	}
}

func (r *Rain) spawnLine(age time.Duration) {
	l := Line{
		XFrac:    r.rng.Float64(),
		Age:      age,
		Lifetime: r.opts.FlowLifetime,
		Length:   r.opts.FlowLength,
	}
	if l.Age < l.Lifetime {
		r.lines = append(r.lines, l)
	}
}

// Digits is a read-only view valid until the next Update.
func (r *Rain) Digits() []Digit { return r.digits }

// Lines is a read-only view valid until the next Update.
func (r *Rain) Lines() []Line { return r.lines }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
