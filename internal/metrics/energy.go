package metrics

import (
	"math"

	"github.com/san-kum/pettoy/internal/loop"
)

// MeanEnergy averages the energy multiplier over every observed frame.
type MeanEnergy struct {
	name    string
	total   float64
	samples int
}

func NewMeanEnergy() *MeanEnergy {
	return &MeanEnergy{name: "mean_energy"}
}

func (e *MeanEnergy) Name() string { return e.name }

func (e *MeanEnergy) Observe(f loop.FrameStats) {
	e.total += f.Snapshot.Energy
	e.samples++
}

func (e *MeanEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *MeanEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

type PeakEnergy struct {
	name string
	peak float64
}

func NewPeakEnergy() *PeakEnergy {
	return &PeakEnergy{name: "peak_energy"}
}

func (e *PeakEnergy) Name() string { return e.name }

func (e *PeakEnergy) Observe(f loop.FrameStats) {
	e.peak = math.Max(e.peak, f.Snapshot.Energy)
}

func (e *PeakEnergy) Value() float64 { return e.peak }

func (e *PeakEnergy) Reset() { e.peak = 0 }
