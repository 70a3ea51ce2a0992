// Package web animates the particle "spider web": a fixed set of drifting points
// joined by fading lines whenever two of them come within a threshold distance.
package web

import (
	"image/color"
	"math"
	"math/rand"
)

// Particle is one point of the web. Phase only drives the opacity pulse.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Phase  float64
}

// Options configures a Network. Zero fields are replaced by DefaultOptions values.
type Options struct {
	Count       int
	MaxDistance float64
	Speed       float64 // max absolute velocity per axis, in units per frame
	PhaseStep   float64 // radians added to every phase each frame
	PointRadius float64
	LineWidth   float64
	Color       color.Color
}

func DefaultOptions() Options {
	return Options{
		Count:       80,
		MaxDistance: 150,
		Speed:       0.25,
		PhaseStep:   0.02,
		PointRadius: 2,
		LineWidth:   1,
		Color:       color.NRGBA{R: 0, G: 255, B: 255, A: 255},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Count <= 0 {
		o.Count = d.Count
	}
	if o.MaxDistance <= 0 {
		o.MaxDistance = d.MaxDistance
	}
	if o.Speed <= 0 {
		o.Speed = d.Speed
	}
	if o.PhaseStep <= 0 {
		o.PhaseStep = d.PhaseStep
	}
	if o.PointRadius <= 0 {
		o.PointRadius = d.PointRadius
	}
	if o.LineWidth <= 0 {
		o.LineWidth = d.LineWidth
	}
	if o.Color == nil {
		o.Color = d.Color
	}
	return o
}

// Target is the minimal drawing surface the web needs. Alpha is in [0,1] and
// multiplies the colour's own alpha.
type Target interface {
	Clear()
	DrawLine(x0, y0, x1, y1, width float64, clr color.Color, alpha float64)
	DrawFilledCircle(cx, cy, r float64, clr color.Color, alpha float64)
	Size() (w, h int)
}

// Network owns every particle for its whole lifetime; particles are never added or removed.
type Network struct {
	opts      Options
	width     float64
	height    float64
	particles []Particle
}

// New seeds Count particles uniformly over [0,w]x[0,h]. The draw order from rng
// is x, y, vx, vy, phase per particle, so a fixed seed reproduces the same web.
func New(w, h float64, opts Options, rng *rand.Rand) *Network {
	opts = opts.withDefaults()
	n := &Network{opts: opts}
	n.Resize(w, h)

	n.particles = make([]Particle, opts.Count)
	for i := range n.particles {
		n.particles[i] = Particle{
			X:     rng.Float64() * n.width,
			Y:     rng.Float64() * n.height,
			VX:    (rng.Float64()*2 - 1) * opts.Speed,
			VY:    (rng.Float64()*2 - 1) * opts.Speed,
			Phase: rng.Float64() * 2 * math.Pi,
		}
	}
	return n
}

// FromParticles builds a network around an explicit particle set.
func FromParticles(w, h float64, opts Options, particles []Particle) *Network {
	n := &Network{opts: opts.withDefaults()}
	n.Resize(w, h)
	n.particles = append([]Particle(nil), particles...)
	return n
}

// Resize updates the bounds only. Particles outside a shrunken surface are pulled
// back in by the next Step.
func (n *Network) Resize(w, h float64) {
	n.width = math.Max(0, w)
	n.height = math.Max(0, h)
}

// Fit resizes the network to the target's current surface.
func (n *Network) Fit(t Target) {
	w, h := t.Size()
	n.Resize(float64(w), float64(h))
}

func (n *Network) Bounds() (w, h float64) { return n.width, n.height }

func (n *Network) Len() int { return len(n.particles) }

func (n *Network) Options() Options { return n.opts }

// Particles returns a copy of the current state.
func (n *Network) Particles() []Particle {
	return append([]Particle(nil), n.particles...)
}

// Step advances every particle by one frame. Bounce is checked per axis before
// the clamp, so a particle pinned to an edge keeps its flipped velocity.
func (n *Network) Step() {
	for i := range n.particles {
		p := &n.particles[i]
		p.X += p.VX
		p.Y += p.VY
		p.Phase += n.opts.PhaseStep

		if p.X <= 0 || p.X >= n.width {
			p.VX = -p.VX
		}
		if p.Y <= 0 || p.Y >= n.height {
			p.VY = -p.VY
		}

		p.X = clamp(p.X, 0, n.width)
		p.Y = clamp(p.Y, 0, n.height)
	}
}

// Render clears t and draws the edges, then the points on top.
func (n *Network) Render(t Target) {
	t.Clear()

	maxDist := n.opts.MaxDistance
	for i := 0; i < len(n.particles); i++ {
		a := n.particles[i]
		for j := i + 1; j < len(n.particles); j++ {
			b := n.particles[j]
			dist := math.Hypot(a.X-b.X, a.Y-b.Y)
			if dist >= maxDist {
				continue
			}
			// Only the lower-indexed particle's phase drives the edge flicker.
			t.DrawLine(a.X, a.Y, b.X, b.Y, n.opts.LineWidth, n.opts.Color, EdgeAlpha(dist, maxDist, a.Phase))
		}
	}

	for _, p := range n.particles {
		t.DrawFilledCircle(p.X, p.Y, n.opts.PointRadius, n.opts.Color, PointAlpha(p.Phase))
	}
}

// Frame runs one full update and render pass.
func (n *Network) Frame(t Target) {
	n.Step()
	n.Render(t)
}

// Pulse maps a phase to [0,1].
func Pulse(phase float64) float64 {
	return (math.Sin(phase) + 1) * 0.5
}

// EdgeAlpha is zero at or beyond maxDist and peaks at 0.4*Pulse(phase) when dist is 0.
func EdgeAlpha(dist, maxDist, phase float64) float64 {
	if dist >= maxDist {
		return 0
	}
	return (1 - dist/maxDist) * 0.5 * Pulse(phase) * 0.8
}

func PointAlpha(phase float64) float64 {
	return 0.8 * Pulse(phase)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
