package automation

import (
	"math/rand"

	"github.com/san-kum/pettoy/internal/loop"
)

// FixedClock reports the same frame time on every tick without sleeping.
type FixedClock struct {
	Dt float64
}

func (c FixedClock) Tick() float64 { return c.Dt }

// RandomKeyboard mashes keys at an average rate, like a paw on the keyboard.
type RandomKeyboard struct {
	rng  *rand.Rand
	rate float64
	dt   float64
}

// NewRandomKeyboard presses about rate keys per second when polled once per
// frame of length dt.
func NewRandomKeyboard(seed int64, rate, dt float64) *RandomKeyboard {
	return &RandomKeyboard{
		rng:  rand.New(rand.NewSource(seed)),
		rate: rate,
		dt:   dt,
	}
}

func (k *RandomKeyboard) Poll() []loop.Event {
	expected := k.rate * k.dt
	var out []loop.Event
	for expected > 0 {
		if k.rng.Float64() < expected {
			out = append(out, k.press())
		}
		expected--
	}
	return out
}

// press never produces the exit combo.
func (k *RandomKeyboard) press() loop.Event {
	ev := loop.Event{Kind: loop.KeyDown, Key: loop.KeyOther}
	switch k.rng.Intn(10) {
	case 0:
		ev.Key = loop.KeyW
		ev.Shift = true
	case 1:
		ev.Key = loop.KeyFullscreen
	case 2:
		ev.Ctrl = true
	}
	return ev
}
