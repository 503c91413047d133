package sim

import (
	"fmt"
	"slices"
)

// Action is a stimulus applied to the simulation in response to an accepted
// key press.
type Action int

const (
	AddShape Action = iota
	RemoveShape
	Recolor
	Respeed
	ChangeBackground
	TwitchAll

	numActions
)

// Actions lists every stimulus in dispatch order.
var Actions = []Action{AddShape, RemoveShape, Recolor, Respeed, ChangeBackground, TwitchAll}

func (a Action) String() string {
	switch a {
	case AddShape:
		return "add"
	case RemoveShape:
		return "remove"
	case Recolor:
		return "recolor"
	case Respeed:
		return "respeed"
	case ChangeBackground:
		return "background"
	case TwitchAll:
		return "twitch"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

func (s *Simulation) RandomAction() Action {
	return Action(s.rng.Intn(int(numActions)))
}

// Stimulate picks one action uniformly at random, applies it and returns it.
func (s *Simulation) Stimulate() Action {
	a := s.RandomAction()
	s.Apply(a)
	return a
}

func (s *Simulation) Apply(a Action) {
	switch a {
	case AddShape:
		s.Shapes = append(s.Shapes, s.NewShape(s.randomKind()))
	case RemoveShape:
		if len(s.Shapes) == 0 {
			return
		}
		i := s.rng.Intn(len(s.Shapes))
		s.Shapes = slices.Delete(s.Shapes, i, i+1)
	case Recolor:
		for _, sh := range s.Shapes {
			s.ChangeColor(sh)
		}
	case Respeed:
		for _, sh := range s.Shapes {
			s.ChangeSpeed(sh)
		}
	case ChangeBackground:
		s.Background = s.randomColor()
	case TwitchAll:
		for _, sh := range s.Shapes {
			s.ForceTwitch(sh)
		}
	}
}
