package loop

type EventKind int

const (
	KeyDown EventKind = iota
	CloseRequest
)

// Key identifies the keys the loop treats specially. Every other key maps
// to KeyOther.
type Key int

const (
	KeyOther Key = iota
	KeyW
	KeyFullscreen
)

type Event struct {
	Kind  EventKind
	Key   Key
	Ctrl  bool
	Shift bool
}

func Press(k Key) Event { return Event{Kind: KeyDown, Key: k} }

// ExitCombo is the key-down event that terminates the loop.
var ExitCombo = Event{Kind: KeyDown, Key: KeyW, Ctrl: true, Shift: true}

func (e Event) IsExit() bool {
	return e.Kind == KeyDown && e.Key == KeyW && e.Ctrl && e.Shift
}

type Input interface {
	Poll() []Event
}

type Clock interface {
	// Tick returns the seconds elapsed since the previous call, blocking as
	// needed to hold the target frame rate.
	Tick() float64
}
