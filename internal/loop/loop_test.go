package loop_test

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pettoy/internal/loop"
	"github.com/san-kum/pettoy/internal/sim"
)

type queue struct{ pending []loop.Event }

func (q *queue) Push(evs ...loop.Event) { q.pending = append(q.pending, evs...) }

func (q *queue) Poll() []loop.Event {
	evs := q.pending
	q.pending = nil
	return evs
}

type rectCall struct {
	x, y, w, h float64
	color      sim.Color
	alpha      uint8
}

type textCall struct {
	s    string
	x, y float64
	size int
	c    sim.Color
}

type recorder struct {
	clears   []sim.Color
	circles  int
	rects    []rectCall
	polygons int
	texts    []textCall
	presents int
}

func (r *recorder) Clear(c sim.Color)                          { r.clears = append(r.clears, c) }
func (r *recorder) Circle(cx, cy, radius float64, c sim.Color) { r.circles++ }
func (r *recorder) Rect(x, y, w, h float64, c sim.Color, alpha uint8) {
	r.rects = append(r.rects, rectCall{x, y, w, h, c, alpha})
}
func (r *recorder) Polygon(pts []sim.Point, c sim.Color) { r.polygons++ }
func (r *recorder) Text(s string, x, y float64, size int, c sim.Color) {
	r.texts = append(r.texts, textCall{s, x, y, size, c})
}
func (r *recorder) MeasureText(s string, size int) (float64, float64) { return 300, 24 }
func (r *recorder) Present()                                          { r.presents++ }

// pickSource always picks index 1 when it can: RemoveShape among actions.
type pickSource struct{}

func (pickSource) Float64() float64 { return 0.5 }
func (pickSource) Intn(n int) int {
	if n > 1 {
		return 1
	}
	return 0
}

type stepClock struct{ dt float64 }

func (c stepClock) Tick() float64 { return c.dt }

type exitAfter struct {
	frames int
	seen   int
}

func (e *exitAfter) Poll() []loop.Event {
	e.seen++
	if e.seen >= e.frames {
		return []loop.Event{loop.ExitCombo}
	}
	return nil
}

type frameLog struct{ frames []loop.FrameStats }

func (f *frameLog) OnFrame(fs loop.FrameStats) { f.frames = append(f.frames, fs) }

var _ = Describe("Loop", func() {
	var (
		s      *sim.Simulation
		input  *queue
		canvas *recorder
		l      *loop.Loop
	)

	BeforeEach(func() {
		s = sim.New(1920, 1080, rand.New(rand.NewSource(1)), sim.DefaultParams())
		input = &queue{}
		canvas = &recorder{}
		l = loop.New(s, input, canvas, loop.DefaultOptions())
	})

	It("starts running", func() {
		Expect(l.State()).To(Equal(loop.Running))
		Expect(l.Frame(1.0 / 60)).To(Equal(loop.Running))
	})

	Describe("the exit combo", func() {
		It("terminates on Ctrl+Shift+W", func() {
			input.Push(loop.ExitCombo)
			Expect(l.Frame(1.0 / 60)).To(Equal(loop.Terminated))
			Expect(l.State()).To(Equal(loop.Terminated))
		})

		It("drops events queued behind the combo and draws nothing", func() {
			input.Push(loop.ExitCombo, loop.Press(loop.KeyOther))
			l.Frame(1.0 / 60)

			Expect(l.Stats().Accepted).To(Equal(0))
			Expect(s.Activity).To(Equal(0))
			Expect(canvas.presents).To(Equal(0))
		})

		It("stays terminated", func() {
			input.Push(loop.ExitCombo)
			l.Frame(1.0 / 60)
			input.Push(loop.Press(loop.KeyOther))
			Expect(l.Frame(1.0 / 60)).To(Equal(loop.Terminated))
			Expect(l.Stats().Frames).To(Equal(1))
		})

		DescribeTable("keeps running when a modifier is missing",
			func(ev loop.Event) {
				input.Push(ev)
				Expect(l.Frame(1.0 / 60)).To(Equal(loop.Running))
				Expect(l.Stats().Accepted).To(Equal(1))
			},
			Entry("plain W", loop.Event{Kind: loop.KeyDown, Key: loop.KeyW}),
			Entry("Ctrl+W", loop.Event{Kind: loop.KeyDown, Key: loop.KeyW, Ctrl: true}),
			Entry("Shift+W", loop.Event{Kind: loop.KeyDown, Key: loop.KeyW, Shift: true}),
			Entry("Ctrl+Shift+other", loop.Event{Kind: loop.KeyDown, Key: loop.KeyOther, Ctrl: true, Shift: true}),
		)
	})

	Describe("ignored events", func() {
		It("swallows window close requests", func() {
			input.Push(loop.Event{Kind: loop.CloseRequest})
			Expect(l.Frame(1.0 / 60)).To(Equal(loop.Running))
			Expect(l.Stats().Ignored).To(Equal(1))
			Expect(s.Activity).To(Equal(0))
		})

		It("ignores the full-screen toggle key", func() {
			input.Push(loop.Press(loop.KeyFullscreen))
			l.Frame(1.0 / 60)
			Expect(l.Stats().Accepted).To(Equal(0))
			Expect(s.Activity).To(Equal(0))
		})
	})

	Describe("debounce", func() {
		It("accepts only the first of two presses 0.1s apart", func() {
			input.Push(loop.Press(loop.KeyOther))
			l.Frame(0.1)
			input.Push(loop.Press(loop.KeyOther))
			l.Frame(0.1)

			st := l.Stats()
			Expect(st.Accepted).To(Equal(1))
			Expect(st.Debounced).To(Equal(1))
			Expect(s.Activity).To(Equal(1))
		})

		It("accepts presses spaced beyond the window", func() {
			input.Push(loop.Press(loop.KeyOther))
			l.Frame(0.1)
			input.Push(loop.Press(loop.KeyOther))
			l.Frame(0.35)

			Expect(l.Stats().Accepted).To(Equal(2))
			Expect(s.Activity).To(Equal(2))
		})

		It("accepts presses exactly one window apart at 60 fps", func() {
			for i := 0; i < 40*18; i++ {
				if i%18 == 0 {
					input.Push(loop.Press(loop.KeyOther))
				}
				l.Frame(1.0 / 60)
			}

			st := l.Stats()
			Expect(st.Accepted).To(Equal(40))
			Expect(st.Debounced).To(BeZero())
		})

		It("collapses a burst inside one frame to a single action", func() {
			input.Push(loop.Press(loop.KeyOther), loop.Press(loop.KeyOther), loop.Press(loop.KeyOther))
			fs := &frameLog{}
			l.AddObserver(fs)
			l.Frame(1.0 / 60)

			Expect(fs.frames).To(HaveLen(1))
			Expect(fs.frames[0].Accepted).To(Equal(1))
			Expect(fs.frames[0].Debounced).To(Equal(2))
			Expect(fs.frames[0].Actions).To(HaveLen(1))
		})
	})

	Describe("energy", func() {
		It("reaches 4.0 after twenty accepted presses in one window", func() {
			l = loop.New(s, input, canvas, loop.Options{Debounce: 0.3, EnergyInterval: 10})
			for i := 0; i < 20; i++ {
				input.Push(loop.Press(loop.KeyOther))
				l.Frame(0.35)
			}
			Expect(s.Activity).To(Equal(20))
			Expect(s.Energy).To(Equal(1.0))

			for l.Now() < 10 {
				l.Frame(0.35)
			}

			Expect(s.Activity).To(Equal(0))
			Expect(s.Energy).To(Equal(4.0))
		})

		It("recomputes once per second of 60 fps frames", func() {
			fs := &frameLog{}
			l.AddObserver(fs)
			for i := 0; i < 600; i++ {
				l.Frame(1.0 / 60)
			}

			recomputed := 0
			for _, f := range fs.frames {
				if f.Recomputed {
					recomputed++
				}
			}
			Expect(recomputed).To(Equal(10))
		})

		It("never drops below 1 when idle", func() {
			for i := 0; i < 180; i++ {
				l.Frame(1.0 / 60)
			}
			Expect(s.Energy).To(Equal(1.0))
			Expect(s.Activity).To(Equal(0))
		})

		It("tracks the peak energy", func() {
			l = loop.New(s, input, canvas, loop.Options{Debounce: 0, EnergyInterval: 1})
			for i := 0; i < 10; i++ {
				input.Push(loop.Press(loop.KeyOther))
				l.Frame(0.05)
			}
			for l.Now() < 1 {
				l.Frame(0.05)
			}
			Expect(l.Stats().PeakEnergy).To(BeNumerically("~", 2.0, 1e-9))
		})
	})

	It("treats removal from an empty collection as a no-op", func() {
		params := sim.DefaultParams()
		params.InitialShapes = 0
		s = sim.New(800, 600, pickSource{}, params)
		l = loop.New(s, input, canvas, loop.DefaultOptions())

		input.Push(loop.Press(loop.KeyOther))
		Expect(l.Frame(1.0 / 60)).To(Equal(loop.Running))

		Expect(s.Shapes).To(BeEmpty())
		Expect(l.Stats().Actions).To(HaveKeyWithValue(sim.RemoveShape, 1))
	})

	Describe("rendering", func() {
		BeforeEach(func() {
			l.Frame(1.0 / 60)
		})

		It("clears to the background and presents once", func() {
			Expect(canvas.clears).To(Equal([]sim.Color{s.Background}))
			Expect(canvas.presents).To(Equal(1))
		})

		It("draws every shape with its primitive", func() {
			var circles, squares, polygons int
			for _, sh := range s.Shapes {
				switch sh.Kind {
				case sim.Circle:
					circles++
				case sim.Square:
					squares++
				default:
					polygons++
				}
			}
			Expect(canvas.circles).To(Equal(circles))
			Expect(canvas.polygons).To(Equal(polygons))
			Expect(canvas.rects).To(HaveLen(squares + 1))
		})

		It("overlays the exit hint", func() {
			hint := canvas.rects[len(canvas.rects)-1]
			Expect(hint.x).To(Equal(5.0))
			Expect(hint.y).To(Equal(5.0))
			Expect(hint.w).To(Equal(310.0))
			Expect(hint.h).To(Equal(34.0))
			Expect(hint.color).To(Equal(sim.Color{R: 255, G: 255, B: 255}))
			Expect(hint.alpha).To(Equal(uint8(178)))

			Expect(canvas.texts).To(HaveLen(1))
			Expect(canvas.texts[0].s).To(Equal("Press Ctrl+Shift+W to exit"))
			Expect(canvas.texts[0].x).To(Equal(10.0))
			Expect(canvas.texts[0].y).To(Equal(10.0))
			Expect(canvas.texts[0].size).To(Equal(24))
			Expect(canvas.texts[0].c).To(Equal(sim.Color{}))
		})
	})

	Describe("Run", func() {
		It("returns nil after the exit combo", func() {
			in := &exitAfter{frames: 30}
			l = loop.New(s, in, canvas, loop.DefaultOptions())

			Expect(l.Run(context.Background(), stepClock{1.0 / 60})).To(Succeed())
			Expect(l.Stats().Frames).To(Equal(30))
			Expect(canvas.presents).To(Equal(29))
		})

		It("stops when the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			Expect(l.Run(ctx, stepClock{1.0 / 60})).To(MatchError(context.Canceled))
		})
	})

	It("feeds metrics every frame", func() {
		m := &countMetric{}
		l.AddMetric(m)
		for i := 0; i < 12; i++ {
			l.Frame(1.0 / 60)
		}
		Expect(m.Value()).To(Equal(12.0))
		Expect(l.Metrics()).To(HaveLen(1))
	})
})

type countMetric struct{ n int }

func (c *countMetric) Name() string              { return "count" }
func (c *countMetric) Observe(f loop.FrameStats) { c.n++ }
func (c *countMetric) Value() float64            { return float64(c.n) }
func (c *countMetric) Reset()                    { c.n = 0 }
