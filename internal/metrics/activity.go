package metrics

import "github.com/san-kum/pettoy/internal/loop"

// KeyRate counts accepted key presses per second of loop time.
type KeyRate struct {
	name     string
	accepted int
	elapsed  float64
}

func NewKeyRate() *KeyRate {
	return &KeyRate{name: "key_rate"}
}

func (k *KeyRate) Name() string {
	return k.name
}

func (k *KeyRate) Observe(f loop.FrameStats) {
	k.accepted += f.Accepted
	k.elapsed += f.Dt
}

func (k *KeyRate) Value() float64 {
	if k.elapsed == 0 {
		return 0
	}
	return float64(k.accepted) / k.elapsed
}

func (k *KeyRate) Reset() {
	k.accepted = 0
	k.elapsed = 0
}

// DebounceRatio is the share of key presses rejected by the debounce window.
type DebounceRatio struct {
	name      string
	accepted  int
	debounced int
}

func NewDebounceRatio() *DebounceRatio {
	return &DebounceRatio{name: "debounce_ratio"}
}

func (d *DebounceRatio) Name() string {
	return d.name
}

func (d *DebounceRatio) Observe(f loop.FrameStats) {
	d.accepted += f.Accepted
	d.debounced += f.Debounced
}

func (d *DebounceRatio) Value() float64 {
	total := d.accepted + d.debounced
	if total == 0 {
		return 0
	}
	return float64(d.debounced) / float64(total)
}

func (d *DebounceRatio) Reset() {
	d.accepted = 0
	d.debounced = 0
}
