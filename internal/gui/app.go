package gui

import (
	"context"
	"fmt"

	"github.com/san-kum/pettoy/internal/config"
	"github.com/san-kum/pettoy/internal/loop"
	"github.com/san-kum/pettoy/internal/sim"
)

type App struct {
	Window *Window
	Loop   *loop.Loop
}

// NewApp opens the window and builds a simulation sized to it. Metrics are
// attached to the loop before the first frame.
func NewApp(cfg *config.Config, rng sim.Source, metrics ...loop.Metric) (*App, error) {
	w, err := Open(cfg.Display)
	if err != nil {
		return nil, fmt.Errorf("open window: %w", err)
	}

	width, height := w.Size()
	s := sim.New(float64(width), float64(height), rng, cfg.Params())
	l := loop.New(s, w, w, cfg.LoopOptions())
	for _, m := range metrics {
		l.AddMetric(m)
	}

	return &App{Window: w, Loop: l}, nil
}

// Run blocks until the exit combo or ctx is canceled, then closes the window.
func (a *App) Run(ctx context.Context) error {
	defer a.Window.Close()
	return a.Loop.Run(ctx, a.Window)
}
