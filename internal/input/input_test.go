package input

import (
	"testing"

	"fracture/internal/events"
)

func TestKeyEdgesAndHold(t *testing.T) {
	im := NewInputManager()

	im.HandleEvent(events.New(events.KeyPressed{Key: events.KeyUp}))
	if !im.IsActive(ActionCameraUp) || !im.JustPressed(ActionCameraUp) {
		t.Fatalf("up should be active and just pressed")
	}

	im.PostUpdate()
	if !im.IsActive(ActionCameraUp) {
		t.Errorf("up should still be held after PostUpdate")
	}
	if im.JustPressed(ActionCameraUp) {
		t.Errorf("just-pressed should reset after PostUpdate")
	}

	// key repeat must not re-trigger the edge
	im.HandleEvent(events.New(events.KeyPressed{Key: events.KeyUp, Repeat: true}))
	if im.JustPressed(ActionCameraUp) {
		t.Errorf("repeat should not count as a new press")
	}

	im.HandleEvent(events.New(events.KeyReleased{Key: events.KeyUp}))
	if im.IsActive(ActionCameraUp) || !im.JustReleased(ActionCameraUp) {
		t.Errorf("up should be released")
	}
}

func TestMiddleMouseMapsToPan(t *testing.T) {
	im := NewInputManager()
	im.HandleEvent(events.New(events.MouseButtonPressed{Button: events.MouseButtonMiddle}))
	if !im.IsActive(ActionCameraPan) {
		t.Errorf("middle mouse should activate pan")
	}
	im.HandleEvent(events.New(events.MouseButtonReleased{Button: events.MouseButtonMiddle}))
	if im.IsActive(ActionCameraPan) {
		t.Errorf("pan should end on release")
	}
}

func TestCursorTracking(t *testing.T) {
	im := NewInputManager()
	im.HandleEvent(events.New(events.MouseMoved{X: 12.5, Y: 40}))
	x, y := im.CursorPos()
	if x != 12.5 || y != 40 {
		t.Errorf("cursor = (%v, %v)", x, y)
	}
}

func TestBindingsAndBounds(t *testing.T) {
	im := NewInputManager()
	im.BindKey(events.KeyW, ActionCameraUp)
	im.HandleEvent(events.New(events.KeyPressed{Key: events.KeyW}))
	if !im.IsActive(ActionCameraUp) {
		t.Errorf("W should drive camera up after binding")
	}

	im.UnbindKey(events.KeyQ)
	im.HandleEvent(events.New(events.KeyPressed{Key: events.KeyQ}))
	if im.IsActive(ActionCameraRotateCCW) {
		t.Errorf("Q was unbound")
	}

	if im.IsActive(ActionCount) || im.JustPressed(-1) || im.JustReleased(ActionCount) {
		t.Errorf("out-of-range actions must report false")
	}
}

func TestTriggers(t *testing.T) {
	im := NewInputManager()
	cases := []struct {
		name   string
		e      *events.Event
		action Action
		want   bool
	}{
		{"F1 press", events.New(events.KeyPressed{Key: events.KeyF1}), ActionToggleDebug, true},
		{"F1 repeat", events.New(events.KeyPressed{Key: events.KeyF1, Repeat: true}), ActionToggleDebug, false},
		{"F1 release", events.New(events.KeyReleased{Key: events.KeyF1}), ActionToggleDebug, false},
		{"escape", events.New(events.KeyPressed{Key: events.KeyEscape}), ActionQuit, true},
		{"escape is not toggle", events.New(events.KeyPressed{Key: events.KeyEscape}), ActionToggleDebug, false},
		{"middle mouse", events.New(events.MouseButtonPressed{Button: events.MouseButtonMiddle}), ActionCameraPan, true},
		{"scroll", events.New(events.MouseScrolled{YOffset: 1}), ActionCameraPan, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := im.Triggers(tc.e, tc.action); got != tc.want {
				t.Errorf("Triggers = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestUnboundKeysFireNothing(t *testing.T) {
	im := NewInputManager()
	for _, e := range []*events.Event{
		events.New(events.KeyPressed{Key: events.KeyLeftControl}),
		events.New(events.KeyPressed{Key: events.KeyRightShift}),
		events.New(events.KeyPressed{Key: events.KeyLeftAlt}),
		events.New(events.MouseButtonPressed{Button: events.MouseButtonLeft}),
		events.New(events.MouseButtonPressed{Button: events.MouseButtonRight}),
	} {
		im.HandleEvent(e)
	}
	for a := range ActionCount {
		if im.IsActive(a) {
			t.Errorf("action %d active from an unbound key", a)
		}
	}
}
