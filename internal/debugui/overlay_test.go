package debugui

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"fracture/internal/events"
	"fracture/internal/input"
)

func newTestOverlay(interval time.Duration) (*Overlay, *time.Time) {
	logger, _ := test.NewNullLogger()
	o := New(interval, logger)
	o.SetBindings(input.NewInputManager())
	clock := time.Unix(1000, 0)
	o.now = func() time.Time { return clock }
	return o, &clock
}

func TestPanelsArePublishedPerInterval(t *testing.T) {
	o, clock := newTestOverlay(time.Second)
	var published [][]Panel
	o.SetSink(func(p []Panel) { published = append(published, p) })

	frame := func(fps int) {
		o.Begin()
		o.Panel("Stats").Text("FPS: %d", fps)
		o.Panel("Camera").Text("zoom %.2f", 1.0)
		o.End()
	}

	frame(60)
	*clock = clock.Add(100 * time.Millisecond)
	frame(61)
	*clock = clock.Add(time.Second)
	frame(62)

	if len(published) != 2 {
		t.Fatalf("published %d times, want 2", len(published))
	}
	last := published[1]
	if len(last) != 2 || last[0].Title != "Stats" || last[0].Lines[0] != "FPS: 62" {
		t.Errorf("last publish = %+v", last)
	}
	if o.Frames() != 3 {
		t.Errorf("frames = %d", o.Frames())
	}
}

func TestF1TogglesVisibility(t *testing.T) {
	o, _ := newTestOverlay(0)
	e := events.New(events.KeyPressed{Key: events.KeyF1})
	o.OnEvent(e)
	if o.Visible() || !e.Handled {
		t.Fatalf("F1 should hide the overlay and be consumed")
	}

	o.Begin()
	o.Panel("Stats").Text("hidden")
	o.End()
	if len(o.Panels()) != 0 {
		t.Errorf("hidden overlay collected panels")
	}

	other := events.New(events.KeyPressed{Key: events.KeyQ})
	o.OnEvent(other)
	if other.Handled {
		t.Errorf("overlay consumed an unrelated key")
	}

	repeat := events.New(events.KeyPressed{Key: events.KeyF1, Repeat: true})
	o.OnEvent(repeat)
	if o.Visible() || repeat.Handled {
		t.Errorf("key repeat toggled the overlay")
	}
}

func TestToggleFollowsRebinding(t *testing.T) {
	logger, _ := test.NewNullLogger()
	o := New(0, logger)
	in := input.NewInputManager()
	in.UnbindKey(events.KeyF1)
	in.BindKey(events.KeyTab, input.ActionToggleDebug)
	o.SetBindings(in)

	o.OnEvent(events.New(events.KeyPressed{Key: events.KeyF1}))
	if !o.Visible() {
		t.Fatalf("unbound F1 still toggles")
	}
	e := events.New(events.KeyPressed{Key: events.KeyTab})
	o.OnEvent(e)
	if o.Visible() || !e.Handled {
		t.Errorf("rebound key did not toggle")
	}
}

func TestPanelOutsideFrameIsDiscarded(t *testing.T) {
	o, _ := newTestOverlay(0)
	o.Panel("late").Text("x")
	if len(o.Panels()) != 0 {
		t.Errorf("panel outside Begin/End was kept")
	}
}
