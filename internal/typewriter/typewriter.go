// Package typewriter reveals a line of text one rune at a time and then blinks a cursor.
package typewriter

import "time"

const (
	DefaultStartDelay = time.Second
	DefaultCharEvery  = 100 * time.Millisecond
	DefaultBlinkEvery = 750 * time.Millisecond
)

type Typewriter struct {
	text       []rune
	startDelay time.Duration
	charEvery  time.Duration
	blinkEvery time.Duration

	clock time.Duration
}

func New(text string) *Typewriter {
	return &Typewriter{
		text:       []rune(text),
		startDelay: DefaultStartDelay,
		charEvery:  DefaultCharEvery,
		blinkEvery: DefaultBlinkEvery,
	}
}

func (t *Typewriter) Update(dt time.Duration) {
	if dt > 0 {
		t.clock += dt
	}
}

// typed is the number of runes shown so far.
func (t *Typewriter) typed() int {
	if t.clock < t.startDelay {
		return 0
	}
	n := int((t.clock-t.startDelay)/t.charEvery) + 1
	if n > len(t.text) {
		n = len(t.text)
	}
	return n
}

func (t *Typewriter) Visible() string { return string(t.text[:t.typed()]) }

// Done reports whether the whole text is shown.
func (t *Typewriter) Done() bool { return t.clock >= t.doneAt() }

func (t *Typewriter) doneAt() time.Duration {
	if len(t.text) == 0 {
		return t.startDelay
	}
	return t.startDelay + time.Duration(len(t.text)-1)*t.charEvery
}

// CursorOn is steady while typing and toggles every blink interval afterwards.
func (t *Typewriter) CursorOn() bool {
	if !t.Done() {
		return true
	}
	// one more char tick passes before the blinking starts
	since := t.clock - t.doneAt() - t.charEvery
	if since < 0 {
		return true
	}
	return (since/t.blinkEvery)%2 == 0
}
