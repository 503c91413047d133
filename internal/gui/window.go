package gui

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/pettoy/internal/config"
	"github.com/san-kum/pettoy/internal/loop"
)

var ErrDisplayUnavailable = errors.New("gui: display unavailable")

// Window is the raylib surface. It serves the loop as Input, Clock and Canvas.
type Window struct {
	closeSeen bool
}

// Open creates a borderless window. In fullscreen mode it takes the native
// resolution of the current monitor.
func Open(cfg config.DisplayConfig) (*Window, error) {
	rl.SetTraceLogLevel(rl.LogWarning)

	flags := uint32(rl.FlagWindowUndecorated)
	width, height := int32(cfg.Width), int32(cfg.Height)
	if cfg.Fullscreen {
		flags |= rl.FlagFullscreenMode
		width, height = 0, 0
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(width, height, cfg.Title)
	if !rl.IsWindowReady() {
		return nil, ErrDisplayUnavailable
	}

	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
	return &Window{}, nil
}

func (w *Window) Close() { rl.CloseWindow() }

func (w *Window) Size() (width, height int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// Tick returns the duration of the last frame. The 60 Hz cap itself is
// applied by raylib inside EndDrawing.
func (w *Window) Tick() float64 {
	return float64(rl.GetFrameTime())
}

func (w *Window) Poll() []loop.Event {
	var evs []loop.Event

	// raylib latches the close flag; report it once
	if rl.WindowShouldClose() && !w.closeSeen {
		w.closeSeen = true
		evs = append(evs, loop.Event{Kind: loop.CloseRequest})
	}

	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	for k := rl.GetKeyPressed(); k != 0; k = rl.GetKeyPressed() {
		evs = append(evs, loop.Event{Kind: loop.KeyDown, Key: mapKey(k), Ctrl: ctrl, Shift: shift})
	}
	return evs
}

func mapKey(k int32) loop.Key {
	switch k {
	case rl.KeyW:
		return loop.KeyW
	case rl.KeyF11:
		return loop.KeyFullscreen
	default:
		return loop.KeyOther
	}
}
