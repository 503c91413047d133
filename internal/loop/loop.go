package loop

import (
	"context"
	"math"

	"github.com/san-kum/pettoy/internal/sim"
)

type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "running"
}

// epsilon absorbs rounding in loop time, which is a running sum of frame
// times.
const epsilon = 1e-9

type Options struct {
	// Debounce is the minimum number of seconds between accepted key presses.
	Debounce float64
	// EnergyInterval is how often, in seconds, energy is recomputed from activity.
	EnergyInterval float64
}

func DefaultOptions() Options {
	return Options{Debounce: 0.3, EnergyInterval: 1.0}
}

// FrameStats describes what happened during one frame.
type FrameStats struct {
	Frame      int
	Time       float64
	Dt         float64
	Accepted   int
	Debounced  int
	Ignored    int
	Actions    []sim.Action
	Recomputed bool
	Snapshot   sim.Snapshot
	State      State
}

type Observer interface {
	OnFrame(f FrameStats)
}

type Metric interface {
	Name() string
	Observe(f FrameStats)
	Value() float64
	Reset()
}

// Stats accumulates totals over the life of a loop.
type Stats struct {
	Frames     int
	Accepted   int
	Debounced  int
	Ignored    int
	Actions    map[sim.Action]int
	PeakEnergy float64
	Elapsed    float64
}

type Loop struct {
	sim    *sim.Simulation
	input  Input
	canvas Canvas
	opts   Options

	state      State
	now        float64
	lastKey    float64
	lastEnergy float64

	metrics   []Metric
	observers []Observer
	stats     Stats
}

func New(s *sim.Simulation, input Input, canvas Canvas, opts Options) *Loop {
	return &Loop{
		sim:     s,
		input:   input,
		canvas:  canvas,
		opts:    opts,
		lastKey: math.Inf(-1),
		stats: Stats{
			Actions:    make(map[sim.Action]int),
			PeakEnergy: s.Energy,
		},
	}
}

func (l *Loop) AddMetric(m Metric)     { l.metrics = append(l.metrics, m) }
func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

func (l *Loop) State() State { return l.state }

// Now returns the loop time in seconds, the sum of every frame's dt.
func (l *Loop) Now() float64 { return l.now }

func (l *Loop) Sim() *sim.Simulation { return l.sim }

func (l *Loop) Metrics() []Metric { return l.metrics }

func (l *Loop) Stats() Stats {
	st := l.stats
	st.Actions = make(map[sim.Action]int, len(l.stats.Actions))
	for a, n := range l.stats.Actions {
		st.Actions[a] = n
	}
	return st
}

// Frame runs one iteration: input, energy, motion, drawing. A frame that
// sees the exit combo stops right there and draws nothing.
func (l *Loop) Frame(dt float64) State {
	if l.state == Terminated {
		return l.state
	}

	l.now += dt
	f := FrameStats{Frame: l.stats.Frames, Time: l.now, Dt: dt}

	for _, ev := range l.input.Poll() {
		if ev.IsExit() {
			l.state = Terminated
			break
		}
		l.handle(ev, &f)
	}

	if l.state == Running {
		if l.now-l.lastEnergy >= l.opts.EnergyInterval-epsilon {
			l.sim.RecomputeEnergy()
			l.lastEnergy = l.now
			f.Recomputed = true
		}
		l.sim.Step(dt)
		Render(l.canvas, l.sim)
	}

	l.finish(&f)
	return l.state
}

func (l *Loop) handle(ev Event, f *FrameStats) {
	if ev.Kind != KeyDown || ev.Key == KeyFullscreen {
		f.Ignored++
		return
	}
	if l.now-l.lastKey < l.opts.Debounce-epsilon {
		f.Debounced++
		return
	}
	l.lastKey = l.now
	f.Actions = append(f.Actions, l.sim.Stimulate())
	l.sim.RecordActivity()
	f.Accepted++
}

func (l *Loop) finish(f *FrameStats) {
	f.Snapshot = l.sim.Snapshot()
	f.State = l.state

	l.stats.Frames++
	l.stats.Elapsed = l.now
	l.stats.Accepted += f.Accepted
	l.stats.Debounced += f.Debounced
	l.stats.Ignored += f.Ignored
	for _, a := range f.Actions {
		l.stats.Actions[a]++
	}
	l.stats.PeakEnergy = math.Max(l.stats.PeakEnergy, f.Snapshot.Energy)

	for _, m := range l.metrics {
		m.Observe(*f)
	}
	for _, o := range l.observers {
		o.OnFrame(*f)
	}
}

// Run drives frames from clock until the exit combo or ctx is canceled.
func (l *Loop) Run(ctx context.Context, clock Clock) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if l.Frame(clock.Tick()) == Terminated {
			return nil
		}
	}
}
