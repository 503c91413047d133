package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"github.com/san-kum/pettoy/internal/config"
	"github.com/san-kum/pettoy/internal/loop"
	"github.com/san-kum/pettoy/internal/sim"
)

type TickMsg time.Time

// statusRows is the space reserved under the playfield for the status line.
const (
	statusRows   = 1
	historyWidth = 20
	gaugeWidth   = 10
	// gaugeMax is the energy that fills the gauge.
	gaugeMax = 5.0
)

// Model is the Bubble Tea model. It feeds key messages to the loop as
// input and steps one frame per tick.
type Model struct {
	Loop   *loop.Loop
	Canvas *Canvas

	interval time.Duration
	last     time.Time
	pending  []loop.Event
	history  []float64

	spring             harmonica.Spring
	gaugePos, gaugeVel float64
}

// NewModel builds a simulation on a cols x rows terminal.
func NewModel(cfg *config.Config, rng sim.Source, cols, rows int) *Model {
	canvas := NewCanvas(cols, rows, float64(cfg.Terminal.CellWidth), float64(cfg.Terminal.CellHeight))
	w, h := canvas.PixelSize()

	m := &Model{
		Canvas:   canvas,
		interval: time.Second / time.Duration(cfg.Display.FPS),
		spring:   harmonica.NewSpring(harmonica.FPS(cfg.Display.FPS), 4.0, 0.5),
		gaugePos: 1,
	}
	m.Loop = loop.New(sim.New(w, h, rng, cfg.Params()), m, canvas, cfg.LoopOptions())
	m.Loop.AddObserver(m)
	return m
}

// OnFrame keeps the last historyWidth energy values for the sparkline.
func (m *Model) OnFrame(f loop.FrameStats) {
	if !f.Recomputed {
		return
	}
	m.history = append(m.history, f.Snapshot.Energy)
	if len(m.history) > historyWidth {
		m.history = m.history[len(m.history)-historyWidth:]
	}
}

func (m *Model) Poll() []loop.Event {
	evs := m.pending
	m.pending = nil
	return evs
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.pending = append(m.pending, translateKey(msg))
		return m, nil

	case tea.WindowSizeMsg:
		rows := msg.Height - statusRows
		if rows < 1 {
			rows = 1
		}
		m.Canvas.Resize(msg.Width, rows)
		m.Loop.Sim().Resize(m.Canvas.PixelSize())
		return m, nil

	case TickMsg:
		now := time.Time(msg)
		dt := m.interval.Seconds()
		if !m.last.IsZero() {
			dt = now.Sub(m.last).Seconds()
		}
		m.last = now

		if m.Loop.Frame(dt) == loop.Terminated {
			return m, tea.Quit
		}
		m.gaugePos, m.gaugeVel = m.spring.Update(m.gaugePos, m.gaugeVel, m.Loop.Sim().Energy)
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) View() string {
	if m.Loop.State() == loop.Terminated {
		return ""
	}
	snap := m.Loop.Sim().Snapshot()
	st := m.Loop.Stats()
	status := strings.Join([]string{
		metric("shapes", fmt.Sprintf("%d", snap.Shapes)),
		metric("energy", fmt.Sprintf("%.1f %s %s", snap.Energy, gauge(m.gaugePos, gaugeMax, gaugeWidth), sparkline(m.history, historyWidth))),
		metric("keys", fmt.Sprintf("%d", st.Accepted)),
	}, "  ")
	return m.Canvas.String() + "\n" + StatusStyle.Width(m.Canvas.Cols).Render(status)
}

// translateKey maps terminal keys onto loop events. Ctrl+W stands in for
// Ctrl+Shift+W because terminals never report Shift with Ctrl+letter.
func translateKey(msg tea.KeyMsg) loop.Event {
	switch msg.Type {
	case tea.KeyCtrlW:
		return loop.ExitCombo
	case tea.KeyF11:
		return loop.Press(loop.KeyFullscreen)
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && (msg.Runes[0] == 'w' || msg.Runes[0] == 'W') {
			return loop.Event{Kind: loop.KeyDown, Key: loop.KeyW, Shift: msg.Runes[0] == 'W'}
		}
	}
	return loop.Press(loop.KeyOther)
}

// Run starts the terminal front-end on the alternate screen and returns the
// loop once the exit combo ends it.
func Run(cfg *config.Config, rng sim.Source, metrics ...loop.Metric) (*loop.Loop, error) {
	m := NewModel(cfg, rng, 80, 24-statusRows)
	for _, mt := range metrics {
		m.Loop.AddMetric(mt)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return nil, err
	}
	return m.Loop, nil
}
