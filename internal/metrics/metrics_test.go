package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/pettoy/internal/loop"
	"github.com/san-kum/pettoy/internal/sim"
)

func frame(dt, energy float64, accepted, debounced int) loop.FrameStats {
	return loop.FrameStats{
		Dt:        dt,
		Accepted:  accepted,
		Debounced: debounced,
		Snapshot:  sim.Snapshot{Energy: energy, Shapes: 5},
	}
}

func TestEnergyMetrics(t *testing.T) {
	mean := NewMeanEnergy()
	peak := NewPeakEnergy()

	for _, e := range []float64{1, 1, 4, 2} {
		mean.Observe(frame(0.1, e, 0, 0))
		peak.Observe(frame(0.1, e, 0, 0))
	}

	if math.Abs(mean.Value()-2.0) > 1e-12 {
		t.Errorf("expected mean energy 2, got %f", mean.Value())
	}
	if peak.Value() != 4 {
		t.Errorf("expected peak energy 4, got %f", peak.Value())
	}

	mean.Reset()
	peak.Reset()
	if mean.Value() != 0 || peak.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestKeyRate(t *testing.T) {
	m := NewKeyRate()
	if m.Value() != 0 {
		t.Error("expected zero rate before observations")
	}

	m.Observe(frame(0.5, 1, 1, 0))
	m.Observe(frame(0.5, 1, 1, 3))
	m.Observe(frame(1.0, 1, 0, 0))

	if math.Abs(m.Value()-1.0) > 1e-12 {
		t.Errorf("expected 1 key/s, got %f", m.Value())
	}
}

func TestDebounceRatio(t *testing.T) {
	m := NewDebounceRatio()
	m.Observe(frame(0.1, 1, 1, 3))

	if m.Value() != 0.75 {
		t.Errorf("expected ratio 0.75, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestFrameRate(t *testing.T) {
	m := NewFrameRate()
	for i := 0; i < 120; i++ {
		m.Observe(frame(1.0/60, 1, 0, 0))
	}
	if math.Abs(m.Value()-60) > 1e-6 {
		t.Errorf("expected 60 fps, got %f", m.Value())
	}
}

func TestSeries(t *testing.T) {
	s := NewSeries(1.0)
	for i := 1; i <= 10; i++ {
		f := frame(0.25, float64(i), 0, 0)
		f.Time = float64(i) * 0.25
		s.OnFrame(f)
	}

	if s.Len() != 2 {
		t.Fatalf("expected 2 samples over 2.5s, got %d", s.Len())
	}
	if s.Energy[0] != 4 || s.Energy[1] != 8 {
		t.Errorf("unexpected energy samples %v", s.Energy)
	}
	if s.Shapes[0] != 5 {
		t.Errorf("expected shape count 5, got %f", s.Shapes[0])
	}
}

func TestSeries_CatchesUpOnLongFrames(t *testing.T) {
	s := NewSeries(1.0)
	f := frame(3.2, 2, 0, 0)
	f.Time = 3.2
	s.OnFrame(f)

	if s.Len() != 3 {
		t.Errorf("expected 3 samples after a 3.2s frame, got %d", s.Len())
	}
}

func TestStandard(t *testing.T) {
	names := make(map[string]bool)
	for _, m := range Standard() {
		if names[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		names[m.Name()] = true
	}
}
