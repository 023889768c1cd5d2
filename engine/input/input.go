package input

import (
	"sync"

	"github.com/spaghettifunk/wood/engine/core"
	"github.com/spaghettifunk/wood/engine/math"
)

const (
	AxisHorizontal = "horizontal"
	AxisVertical   = "vertical"
)

type axisKeys struct {
	negative []core.KeyCode
	positive []core.KeyCode
}

var axes = map[string]axisKeys{
	AxisHorizontal: {
		negative: []core.KeyCode{core.KEY_LEFT, core.KEY_A},
		positive: []core.KeyCode{core.KEY_RIGHT, core.KEY_D},
	},
	AxisVertical: {
		negative: []core.KeyCode{core.KEY_DOWN, core.KEY_S},
		positive: []core.KeyCode{core.KEY_UP, core.KEY_W},
	},
}

type keyboardState struct {
	keys [core.KEYS_MAX_KEYS]bool
}

type mouseState struct {
	position math.Vec2
	buttons  [core.BUTTON_MAX_BUTTONS]bool
}

// State holds current and previous states for keyboard and mouse. The host
// writes to it through the Process* methods, game code only reads.
type State struct {
	mu sync.RWMutex

	keyboardCurrent  keyboardState
	keyboardPrevious keyboardState
	mouseCurrent     mouseState
	mousePrevious    mouseState
	scroll           math.Vec2

	events *core.EventBus
}

// NewState creates an input state that fires key and mouse events on events, which may be nil.
func NewState(events *core.EventBus) *State {
	return &State{events: events}
}

// Update rolls the current state into the previous one. Call it once at the end of a frame.
func (s *State) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keyboardPrevious = s.keyboardCurrent
	s.mousePrevious = s.mouseCurrent
	s.scroll = math.NewVec2Zero()
}

func (s *State) fire(ctx core.EventContext) {
	if s.events != nil {
		s.events.Fire(ctx)
	}
}

// keyboard input

func (s *State) IsKeyDown(key core.KeyCode) bool {
	if key >= core.KEYS_MAX_KEYS {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keyboardCurrent.keys[key]
}

func (s *State) WasKeyDown(key core.KeyCode) bool {
	if key >= core.KEYS_MAX_KEYS {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keyboardPrevious.keys[key]
}

// Axis returns -1, 0 or 1 for a named axis. Holding both directions, or none, yields 0.
func (s *State) Axis(name string) float32 {
	a, ok := axes[name]
	if !ok {
		return 0
	}
	negative := s.anyDown(a.negative)
	positive := s.anyDown(a.positive)
	switch {
	case negative == positive:
		return 0
	case negative:
		return -1
	default:
		return 1
	}
}

func (s *State) anyDown(keys []core.KeyCode) bool {
	for _, k := range keys {
		if s.IsKeyDown(k) {
			return true
		}
	}
	return false
}

func (s *State) ProcessKey(key core.KeyCode, pressed bool) {
	if key >= core.KEYS_MAX_KEYS {
		return
	}
	s.mu.Lock()
	// Only handle this if the state actually changed.
	changed := s.keyboardCurrent.keys[key] != pressed
	s.keyboardCurrent.keys[key] = pressed
	s.mu.Unlock()

	if !changed {
		return
	}
	code := core.EVENT_CODE_KEY_RELEASED
	if pressed {
		code = core.EVENT_CODE_KEY_PRESSED
	}
	s.fire(core.EventContext{Type: code, Data: &core.KeyEvent{KeyCode: key}})
}

// mouse input

func (s *State) IsButtonDown(button core.Button) bool {
	if button >= core.BUTTON_MAX_BUTTONS {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mouseCurrent.buttons[button]
}

func (s *State) MousePosition() math.Vec2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mouseCurrent.position
}

// MouseDelta is the movement since the previous frame.
func (s *State) MouseDelta() math.Vec2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mouseCurrent.position.Sub(s.mousePrevious.position)
}

// Scroll is the wheel movement accumulated during the current frame.
func (s *State) Scroll() math.Vec2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scroll
}

func (s *State) ProcessButton(button core.Button, pressed bool) {
	if button >= core.BUTTON_MAX_BUTTONS {
		return
	}
	s.mu.Lock()
	changed := s.mouseCurrent.buttons[button] != pressed
	s.mouseCurrent.buttons[button] = pressed
	s.mu.Unlock()

	if !changed {
		return
	}
	code := core.EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = core.EVENT_CODE_BUTTON_PRESSED
	}
	s.fire(core.EventContext{Type: code, Data: &core.MouseEvent{Button: button}})
}

func (s *State) ProcessMouseMove(x, y float32) {
	s.mu.Lock()
	changed := s.mouseCurrent.position.X != x || s.mouseCurrent.position.Y != y
	s.mouseCurrent.position = math.NewVec2(x, y)
	s.mu.Unlock()

	if changed {
		s.fire(core.EventContext{Type: core.EVENT_CODE_MOUSE_MOVED, Data: &core.MouseEvent{PosX: x, PosY: y}})
	}
}

func (s *State) ProcessMouseWheel(dx, dy float32) {
	s.mu.Lock()
	s.scroll = s.scroll.Add(math.NewVec2(dx, dy))
	s.mu.Unlock()

	s.fire(core.EventContext{Type: core.EVENT_CODE_MOUSE_WHEEL, Data: &core.MouseEvent{Scroll: dy}})
}
