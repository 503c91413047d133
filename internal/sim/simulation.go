package sim

import "math"

type Simulation struct {
	Shapes     []*Shape
	Energy     float64
	Activity   int
	Background Color

	width, height float64
	params        Params
	rng           Source
}

// New creates a simulation over a width x height surface populated with
// params.InitialShapes shapes of random kind.
func New(width, height float64, rng Source, params Params) *Simulation {
	s := &Simulation{
		Energy: 1.0,
		width:  width,
		height: height,
		params: params,
		rng:    rng,
	}
	s.Background = s.randomColor()
	s.Shapes = make([]*Shape, 0, params.InitialShapes)
	for i := 0; i < params.InitialShapes; i++ {
		s.Shapes = append(s.Shapes, s.NewShape(s.randomKind()))
	}
	return s
}

func (s *Simulation) Params() Params { return s.params }

func (s *Simulation) Bounds() (width, height float64) { return s.width, s.height }

// Resize changes the reflection bounds. Shapes left outside the new bounds
// are pulled back onto the edge so reflection can bring them home.
func (s *Simulation) Resize(width, height float64) {
	s.width, s.height = width, height
	for _, sh := range s.Shapes {
		sh.X = clamp(sh.X, 0, width)
		sh.Y = clamp(sh.Y, 0, height)
	}
}

func (s *Simulation) NewShape(kind Kind) *Shape {
	p := s.params
	base := p.MinBaseSize + s.rng.Intn(p.MaxBaseSize-p.MinBaseSize+1)
	sh := &Shape{
		Kind:             kind,
		X:                s.uniform(0, s.width),
		Y:                s.uniform(0, s.height),
		Color:            s.randomColor(),
		BaseSize:         base,
		Size:             float64(base),
		OscSpeed:         s.uniform(p.MinOscSpeed, p.MaxOscSpeed),
		CooldownDuration: s.uniform(p.MinCooldown, p.MaxCooldown),
	}
	s.ChangeSpeed(sh)
	return sh
}

// Step advances every shape by one frame.
func (s *Simulation) Step(dt float64) {
	for _, sh := range s.Shapes {
		s.Advance(sh, dt)
	}
}

func (s *Simulation) Advance(sh *Shape, dt float64) {
	p := s.params

	if sh.Cooldown > 0 {
		sh.Cooldown -= dt
		if sh.Cooldown <= 0 {
			sh.Twitched = false
		}
	}

	if !sh.Twitched && sh.Cooldown <= 0 {
		sh.TwitchTimer += dt
		if sh.TwitchTimer >= p.TwitchInterval {
			sh.TwitchTimer = 0
			if s.rng.Float64() < p.TwitchChance {
				s.Twitch(sh)
			}
		}
	}

	// velocity is per frame, dt deliberately not applied
	sh.X += sh.VX
	sh.Y += sh.VY

	sh.Phase += sh.OscSpeed * dt
	movement := (math.Abs(sh.VX) + math.Abs(sh.VY)) / 4

	var variation float64
	if s.rng.Float64() < p.SpikeChance {
		variation = s.uniform(p.SpikeMin, p.SpikeMax)
	} else {
		variation = math.Sin(sh.Phase) * movement * p.PulseGain
	}
	sh.Size = math.Max(p.MinSize, float64(sh.BaseSize)+variation)

	if sh.X < 0 || sh.X > s.width {
		sh.VX = -sh.VX
	}
	if sh.Y < 0 || sh.Y > s.height {
		sh.VY = -sh.VY
	}
}

// Twitch applies a random velocity impulse scaled by energy and starts the
// shape's cooldown.
func (s *Simulation) Twitch(sh *Shape) {
	p := s.params
	impulse := p.TwitchImpulse * s.Energy
	limit := p.MaxSpeed * s.Energy

	sh.VX = clamp(sh.VX+s.uniform(-impulse, impulse), -limit, limit)
	sh.VY = clamp(sh.VY+s.uniform(-impulse, impulse), -limit, limit)
	sh.Twitched = true
	sh.Cooldown = sh.CooldownDuration
}

// ForceTwitch twitches sh unless it is cooling down. It reports whether the
// twitch happened.
func (s *Simulation) ForceTwitch(sh *Shape) bool {
	if sh.Cooldown > 0 {
		return false
	}
	s.Twitch(sh)
	return true
}

func (s *Simulation) ChangeColor(sh *Shape) {
	sh.Color = s.randomColor()
}

func (s *Simulation) ChangeSpeed(sh *Shape) {
	v := s.params.CruiseSpeed * s.Energy
	sh.VX = s.uniform(-v, v)
	sh.VY = s.uniform(-v, v)
}

func (s *Simulation) RecordActivity() { s.Activity++ }

// RecomputeEnergy derives energy from the activity counted since the last
// call, resets the counter and respeeds every shape under the new energy.
func (s *Simulation) RecomputeEnergy() {
	s.Energy = math.Max(1.0, float64(s.Activity)/s.params.ActivityPerEnergy)
	s.Activity = 0
	for _, sh := range s.Shapes {
		s.ChangeSpeed(sh)
	}
}

// Outline returns the polygon of sh in screen space, scaled by its current
// size, or nil for kinds without a template.
func Outline(sh *Shape) []Point {
	tmpl := sh.Kind.Template()
	if tmpl == nil {
		return nil
	}
	scale := sh.Size / float64(sh.BaseSize)
	pts := make([]Point, len(tmpl))
	for i, p := range tmpl {
		pts[i] = Point{X: sh.X + p.X*scale, Y: sh.Y + p.Y*scale}
	}
	return pts
}

func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Shapes:     len(s.Shapes),
		Energy:     s.Energy,
		Activity:   s.Activity,
		Background: s.Background,
	}
}

func (s *Simulation) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *Simulation) randomColor() Color {
	return Palette[s.rng.Intn(len(Palette))]
}

func (s *Simulation) randomKind() Kind {
	return Kinds[s.rng.Intn(len(Kinds))]
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
