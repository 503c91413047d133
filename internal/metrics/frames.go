package metrics

import "github.com/san-kum/pettoy/internal/loop"

type FrameRate struct {
	name    string
	frames  int
	elapsed float64
}

func NewFrameRate() *FrameRate {
	return &FrameRate{name: "fps"}
}

func (r *FrameRate) Name() string { return r.name }

func (r *FrameRate) Observe(f loop.FrameStats) {
	r.frames++
	r.elapsed += f.Dt
}

func (r *FrameRate) Value() float64 {
	if r.elapsed == 0 {
		return 0
	}
	return float64(r.frames) / r.elapsed
}

func (r *FrameRate) Reset() {
	r.frames = 0
	r.elapsed = 0
}

// Series samples energy and shape count once per period of loop time.
type Series struct {
	Period float64
	Times  []float64
	Energy []float64
	Shapes []float64

	next float64
}

func NewSeries(period float64) *Series {
	return &Series{Period: period, next: period}
}

func (s *Series) OnFrame(f loop.FrameStats) {
	for f.Time >= s.next {
		s.Times = append(s.Times, s.next)
		s.Energy = append(s.Energy, f.Snapshot.Energy)
		s.Shapes = append(s.Shapes, float64(f.Snapshot.Shapes))
		s.next += s.Period
	}
}

func (s *Series) Len() int { return len(s.Times) }

// Standard returns the metrics every front-end reports on exit.
func Standard() []loop.Metric {
	return []loop.Metric{
		NewFrameRate(),
		NewKeyRate(),
		NewDebounceRatio(),
		NewMeanEnergy(),
		NewPeakEnergy(),
	}
}
