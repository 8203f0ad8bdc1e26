// Package events defines the engine's input and window events.
//
// An Event carries one Payload from a closed set of variants. Handlers switch
// on the payload type, or use Dispatch for a single variant.
package events

import "fmt"

// Type identifies an event variant.
type Type int

const (
	TypeNone Type = iota
	TypeWindowClose
	TypeWindowResize
	TypeWindowFocus
	TypeWindowLostFocus
	TypeWindowMoved
	TypeAppTick
	TypeAppUpdate
	TypeAppRender
	TypeKeyPressed
	TypeKeyReleased
	TypeKeyTyped
	TypeMouseButtonPressed
	TypeMouseButtonReleased
	TypeMouseMoved
	TypeMouseScrolled
)

var typeNames = [...]string{
	TypeNone:                "None",
	TypeWindowClose:         "WindowClose",
	TypeWindowResize:        "WindowResize",
	TypeWindowFocus:         "WindowFocus",
	TypeWindowLostFocus:     "WindowLostFocus",
	TypeWindowMoved:         "WindowMoved",
	TypeAppTick:             "AppTick",
	TypeAppUpdate:           "AppUpdate",
	TypeAppRender:           "AppRender",
	TypeKeyPressed:          "KeyPressed",
	TypeKeyReleased:         "KeyReleased",
	TypeKeyTyped:            "KeyTyped",
	TypeMouseButtonPressed:  "MouseButtonPressed",
	TypeMouseButtonReleased: "MouseButtonReleased",
	TypeMouseMoved:          "MouseMoved",
	TypeMouseScrolled:       "MouseScrolled",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// Category is a bitmask of event groups.
type Category uint8

const (
	CategoryApplication Category = 1 << iota
	CategoryInput
	CategoryKeyboard
	CategoryMouse
	CategoryMouseButton
)

var typeCategories = [...]Category{
	TypeWindowClose:         CategoryApplication,
	TypeWindowResize:        CategoryApplication,
	TypeWindowFocus:         CategoryApplication,
	TypeWindowLostFocus:     CategoryApplication,
	TypeWindowMoved:         CategoryApplication,
	TypeAppTick:             CategoryApplication,
	TypeAppUpdate:           CategoryApplication,
	TypeAppRender:           CategoryApplication,
	TypeKeyPressed:          CategoryKeyboard | CategoryInput,
	TypeKeyReleased:         CategoryKeyboard | CategoryInput,
	TypeKeyTyped:            CategoryKeyboard | CategoryInput,
	TypeMouseButtonPressed:  CategoryMouseButton | CategoryMouse | CategoryInput,
	TypeMouseButtonReleased: CategoryMouseButton | CategoryMouse | CategoryInput,
	TypeMouseMoved:          CategoryMouse | CategoryInput,
	TypeMouseScrolled:       CategoryMouse | CategoryInput,
}

// Payload is implemented only by the variant types in this package.
type Payload interface {
	Type() Type
	isPayload()
}

type WindowClose struct{}

type WindowResize struct {
	Width, Height int
}

type WindowFocus struct{}

type WindowLostFocus struct{}

type WindowMoved struct {
	X, Y int
}

type AppTick struct{}

type AppUpdate struct{}

type AppRender struct{}

type KeyPressed struct {
	Key    Key
	Repeat bool
	Mods   ModifierKey
}

type KeyReleased struct {
	Key  Key
	Mods ModifierKey
}

type KeyTyped struct {
	Char rune
}

type MouseButtonPressed struct {
	Button MouseButton
	Mods   ModifierKey
}

type MouseButtonReleased struct {
	Button MouseButton
	Mods   ModifierKey
}

type MouseMoved struct {
	X, Y float64
}

type MouseScrolled struct {
	XOffset, YOffset float64
}

func (WindowClose) Type() Type         { return TypeWindowClose }
func (WindowResize) Type() Type        { return TypeWindowResize }
func (WindowFocus) Type() Type         { return TypeWindowFocus }
func (WindowLostFocus) Type() Type     { return TypeWindowLostFocus }
func (WindowMoved) Type() Type         { return TypeWindowMoved }
func (AppTick) Type() Type             { return TypeAppTick }
func (AppUpdate) Type() Type           { return TypeAppUpdate }
func (AppRender) Type() Type           { return TypeAppRender }
func (KeyPressed) Type() Type          { return TypeKeyPressed }
func (KeyReleased) Type() Type         { return TypeKeyReleased }
func (KeyTyped) Type() Type            { return TypeKeyTyped }
func (MouseButtonPressed) Type() Type  { return TypeMouseButtonPressed }
func (MouseButtonReleased) Type() Type { return TypeMouseButtonReleased }
func (MouseMoved) Type() Type          { return TypeMouseMoved }
func (MouseScrolled) Type() Type       { return TypeMouseScrolled }

func (WindowClose) isPayload()         {}
func (WindowResize) isPayload()        {}
func (WindowFocus) isPayload()         {}
func (WindowLostFocus) isPayload()     {}
func (WindowMoved) isPayload()         {}
func (AppTick) isPayload()             {}
func (AppUpdate) isPayload()           {}
func (AppRender) isPayload()           {}
func (KeyPressed) isPayload()          {}
func (KeyReleased) isPayload()         {}
func (KeyTyped) isPayload()            {}
func (MouseButtonPressed) isPayload()  {}
func (MouseButtonReleased) isPayload() {}
func (MouseMoved) isPayload()          {}
func (MouseScrolled) isPayload()       {}

// Event wraps a payload with the shared handled flag.
type Event struct {
	Payload Payload
	Handled bool
}

// New wraps p in an unhandled Event.
func New(p Payload) *Event {
	return &Event{Payload: p}
}

// Type returns the payload's variant, or TypeNone for an empty event.
func (e *Event) Type() Type {
	if e.Payload == nil {
		return TypeNone
	}
	return e.Payload.Type()
}

// Categories returns the category bitmask of the event's variant.
func (e *Event) Categories() Category {
	t := e.Type()
	if int(t) >= len(typeCategories) {
		return 0
	}
	return typeCategories[t]
}

// InCategory reports whether the event belongs to c.
func (e *Event) InCategory(c Category) bool {
	return e.Categories()&c != 0
}

func (e *Event) String() string {
	switch p := e.Payload.(type) {
	case WindowResize:
		return fmt.Sprintf("WindowResize: %d, %d", p.Width, p.Height)
	case WindowMoved:
		return fmt.Sprintf("WindowMoved: %d, %d", p.X, p.Y)
	case KeyPressed:
		return fmt.Sprintf("KeyPressed: %d (repeat=%t)", p.Key, p.Repeat)
	case KeyReleased:
		return fmt.Sprintf("KeyReleased: %d", p.Key)
	case KeyTyped:
		return fmt.Sprintf("KeyTyped: %q", p.Char)
	case MouseButtonPressed:
		return fmt.Sprintf("MouseButtonPressed: %d", p.Button)
	case MouseButtonReleased:
		return fmt.Sprintf("MouseButtonReleased: %d", p.Button)
	case MouseMoved:
		return fmt.Sprintf("MouseMoved: %.1f, %.1f", p.X, p.Y)
	case MouseScrolled:
		return fmt.Sprintf("MouseScrolled: %.2f, %.2f", p.XOffset, p.YOffset)
	}
	return e.Type().String()
}

// Dispatch calls fn when e carries a T payload and marks the event handled if
// fn returns true. A handled event stays handled. It reports whether fn ran.
func Dispatch[T Payload](e *Event, fn func(T) bool) bool {
	p, ok := e.Payload.(T)
	if !ok {
		return false
	}
	if fn(p) {
		e.Handled = true
	}
	return true
}
