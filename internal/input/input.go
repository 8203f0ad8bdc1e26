package input

import (
	"slices"
	"sync"

	"fracture/internal/events"
)

// Action represents a logical engine action, not a physical key
type Action int

const (
	ActionCameraUp Action = iota
	ActionCameraDown
	ActionCameraLeft
	ActionCameraRight
	ActionCameraRotateCCW
	ActionCameraRotateCW
	ActionCameraPan
	ActionToggleDebug
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

// InputManager tracks key, mouse button and cursor state from engine events
// and maps physical keys/buttons to logical actions.
type InputManager struct {
	mu sync.RWMutex

	keyToActions         map[events.Key][]Action
	mouseButtonToActions map[events.MouseButton][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	cursorX, cursorY float64
}

// NewInputManager creates an InputManager with the default camera bindings.
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[events.Key][]Action),
		mouseButtonToActions: make(map[events.MouseButton][]Action),
	}

	im.BindKey(events.KeyUp, ActionCameraUp)
	im.BindKey(events.KeyDown, ActionCameraDown)
	im.BindKey(events.KeyLeft, ActionCameraLeft)
	im.BindKey(events.KeyRight, ActionCameraRight)
	im.BindKey(events.KeyQ, ActionCameraRotateCCW)
	im.BindKey(events.KeyE, ActionCameraRotateCW)
	im.BindKey(events.KeyF1, ActionToggleDebug)
	im.BindKey(events.KeyEscape, ActionQuit)

	im.BindMouseButton(events.MouseButtonMiddle, ActionCameraPan)

	return im
}

// BindKey binds a physical key to a logical action.
// Multiple keys can be bound to the same action.
func (im *InputManager) BindKey(key events.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}

	im.mu.Lock()
	defer im.mu.Unlock()
	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key events.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()
	delete(im.keyToActions, key)
}

// BindMouseButton binds a mouse button to a logical action
func (im *InputManager) BindMouseButton(button events.MouseButton, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}

	im.mu.Lock()
	defer im.mu.Unlock()
	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

// HandleEvent folds an engine event into the input state. It never marks the
// event handled; layers still see it.
func (im *InputManager) HandleEvent(e *events.Event) {
	switch p := e.Payload.(type) {
	case events.KeyPressed:
		im.setKey(p.Key, true)
	case events.KeyReleased:
		im.setKey(p.Key, false)
	case events.MouseButtonPressed:
		im.setButton(p.Button, true)
	case events.MouseButtonReleased:
		im.setButton(p.Button, false)
	case events.MouseMoved:
		im.mu.Lock()
		im.cursorX, im.cursorY = p.X, p.Y
		im.mu.Unlock()
	}
}

// Triggers reports whether e is a fresh press of a key or button bound to
// action. Key repeats do not count.
func (im *InputManager) Triggers(e *events.Event, action Action) bool {
	var bound []Action
	im.mu.RLock()
	switch p := e.Payload.(type) {
	case events.KeyPressed:
		if !p.Repeat {
			bound = im.keyToActions[p.Key]
		}
	case events.MouseButtonPressed:
		bound = im.mouseButtonToActions[p.Button]
	}
	im.mu.RUnlock()
	return slices.Contains(bound, action)
}

func (im *InputManager) setKey(key events.Key, pressed bool) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.apply(im.keyToActions[key], pressed)
}

func (im *InputManager) setButton(button events.MouseButton, pressed bool) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.apply(im.mouseButtonToActions[button], pressed)
}

// apply must be called with mu held.
func (im *InputManager) apply(actions []Action, pressed bool) {
	for _, act := range actions {
		if pressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !pressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = pressed
	}
}

// PostUpdate must be called at the end of each frame to reset edge detection.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	for i := range ActionCount {
		im.justPressed[i] = false
		im.justReleased[i] = false
	}
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justReleased[action]
}

// CursorPos returns the last cursor position seen, in window coordinates.
func (im *InputManager) CursorPos() (float64, float64) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.cursorX, im.cursorY
}
