package automation

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pettoy/internal/loop"
)

var ErrBadScenario = errors.New("automation: bad scenario")

// Scenario is a scripted keyboard session for headless runs.
type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Duration    float64         `yaml:"duration"`
	Dt          float64         `yaml:"dt"`
	Events      []ScenarioEvent `yaml:"events"`
}

// ScenarioEvent is one input event at loop time At.
type ScenarioEvent struct {
	At    float64 `yaml:"at"`
	Key   string  `yaml:"key"`
	Ctrl  bool    `yaml:"ctrl"`
	Shift bool    `yaml:"shift"`
	Close bool    `yaml:"close"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadScenario, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if s.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrBadScenario, s.Dt)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrBadScenario, s.Duration)
	}
	for i, ev := range s.Events {
		if ev.At < 0 {
			return fmt.Errorf("%w: event %d at negative time %f", ErrBadScenario, i+1, ev.At)
		}
		if !ev.Close && ev.Key == "" {
			return fmt.Errorf("%w: event %d has no key", ErrBadScenario, i+1)
		}
	}
	return nil
}

// Script returns a clock and input pair that replays the scenario.
func (s *Scenario) Script() *Script {
	evs := make([]Timed, 0, len(s.Events))
	for _, ev := range s.Events {
		evs = append(evs, Timed{At: ev.At, Event: ev.Event()})
	}
	return NewScript(s.Dt, evs...)
}

func (e ScenarioEvent) Event() loop.Event {
	if e.Close {
		return loop.Event{Kind: loop.CloseRequest}
	}
	return loop.Event{Kind: loop.KeyDown, Key: ParseKey(e.Key), Ctrl: e.Ctrl, Shift: e.Shift}
}

// ParseKey maps a key name onto the keys the loop distinguishes.
func ParseKey(name string) loop.Key {
	switch strings.ToLower(name) {
	case "w":
		return loop.KeyW
	case "f11", "fullscreen":
		return loop.KeyFullscreen
	default:
		return loop.KeyOther
	}
}

// Timed is an event scheduled at loop time At.
type Timed struct {
	At    float64
	Event loop.Event
}

// Script is a fixed-step clock that releases scheduled events once its
// time reaches them. It serves as both the Clock and the Input of a loop.
type Script struct {
	dt     float64
	now    float64
	events []Timed
}

func NewScript(dt float64, events ...Timed) *Script {
	evs := append([]Timed(nil), events...)
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].At < evs[j].At })
	return &Script{dt: dt, events: evs}
}

func (s *Script) Tick() float64 {
	s.now += s.dt
	return s.dt
}

func (s *Script) Poll() []loop.Event {
	var out []loop.Event
	for len(s.events) > 0 && s.events[0].At <= s.now {
		out = append(out, s.events[0].Event)
		s.events = s.events[1:]
	}
	return out
}

// Remaining reports how many scheduled events have not been released yet.
func (s *Script) Remaining() int { return len(s.events) }
