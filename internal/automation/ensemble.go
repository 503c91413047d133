package automation

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/san-kum/pettoy/internal/config"
	"github.com/san-kum/pettoy/internal/loop"
	"github.com/san-kum/pettoy/internal/metrics"
	"github.com/san-kum/pettoy/internal/sim"
)

// RunConfig describes one headless session.
type RunConfig struct {
	Config   *config.Config
	Width    float64
	Height   float64
	Duration float64
	Dt       float64
	// Rate is the random keyboard's presses per second; ignored when
	// Scenario is set.
	Rate     float64
	Scenario *Scenario
	// Canvas receives every frame; nil discards them. Ensemble runs always
	// discard.
	Canvas   loop.Canvas
}

// Report is what a headless session leaves behind.
type Report struct {
	Seed    int64
	Stats   loop.Stats
	Metrics map[string]float64
	Series  *metrics.Series
	Final   sim.Snapshot
	Exited  bool
}

// Run plays a session with a discard canvas until the duration elapses,
// the input sends the exit combo or ctx is canceled.
func Run(ctx context.Context, rc RunConfig) (*Report, error) {
	cfg := rc.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		clock loop.Clock
		input loop.Input
	)
	dt, duration := rc.Dt, rc.Duration
	if rc.Scenario != nil {
		script := rc.Scenario.Script()
		clock, input = script, script
		dt, duration = rc.Scenario.Dt, rc.Scenario.Duration
	} else {
		clock = FixedClock{Dt: dt}
		input = NewRandomKeyboard(cfg.Seed, rc.Rate, dt)
	}
	if dt <= 0 || duration <= 0 {
		return nil, fmt.Errorf("dt and duration must be positive, got dt=%f duration=%f", dt, duration)
	}

	s := sim.New(rc.Width, rc.Height, rand.New(rand.NewSource(cfg.Seed)), cfg.Params())
	var canvas loop.Canvas = loop.Discard{}
	if rc.Canvas != nil {
		canvas = rc.Canvas
	}
	l := loop.New(s, input, canvas, cfg.LoopOptions())
	for _, m := range metrics.Standard() {
		l.AddMetric(m)
	}
	series := metrics.NewSeries(1.0)
	l.AddObserver(series)

	report := &Report{Seed: cfg.Seed, Series: series}
	for l.Now() < duration {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if l.Frame(clock.Tick()) == loop.Terminated {
			report.Exited = true
			break
		}
	}

	report.Stats = l.Stats()
	report.Final = s.Snapshot()
	report.Metrics = make(map[string]float64)
	for _, m := range l.Metrics() {
		report.Metrics[m.Name()] = m.Value()
	}
	return report, nil
}

// RunEnsemble runs n independent sessions in parallel, seeding run i with
// the configured seed plus i. Every session owns its own simulation.
func RunEnsemble(ctx context.Context, rc RunConfig, n int) ([]*Report, error) {
	reports := make([]*Report, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := *rc.Config
			cfgCopy.Seed = rc.Config.Seed + int64(idx)
			rcCopy := rc
			rcCopy.Config = &cfgCopy
			rcCopy.Canvas = nil

			reports[idx], errs[idx] = Run(ctx, rcCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return reports, nil
}
