package engine

import (
	"testing"
	"time"

	"fracture/internal/config"
)

func TestFPSLimiterCap(t *testing.T) {
	defer config.SetFPSLimit(config.GetFPSLimit())

	cases := []struct {
		name      string
		fps, idle int
		minimized bool
		want      int
	}{
		{"active uses fps limit", 144, 30, false, 144},
		{"idle caps high limit", 144, 30, true, 30},
		{"idle caps uncapped", 0, 30, true, 30},
		{"idle keeps lower limit", 20, 30, true, 20},
		{"idle cap disabled", 144, 0, true, 144},
		{"uncapped", 0, 30, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config.SetFPSLimit(tc.fps)
			l := NewFPSLimiter(tc.idle, 0)
			if got := l.limit(tc.minimized); got != tc.want {
				t.Errorf("limit = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFPSLimiterPacesFrames(t *testing.T) {
	defer config.SetFPSLimit(config.GetFPSLimit())
	config.SetFPSLimit(0)

	// uncapped active frames return immediately; idle ones run at 100 fps
	l := NewFPSLimiter(100, time.Millisecond)
	start := time.Now()
	l.Wait(false)
	if d := time.Since(start); d > 5*time.Millisecond {
		t.Errorf("uncapped wait took %v", d)
	}

	start = time.Now()
	for range 3 {
		l.Wait(true)
	}
	if d := time.Since(start); d < 30*time.Millisecond {
		t.Errorf("3 idle frames at 100fps took %v, want at least 30ms", d)
	}
}

func TestFPSLimiterResyncsAfterHitch(t *testing.T) {
	defer config.SetFPSLimit(config.GetFPSLimit())
	config.SetFPSLimit(10)

	clock := time.Unix(0, 0)
	l := NewFPSLimiter(0, 0)
	l.now = func() time.Time { return clock }
	l.next = clock.Add(-time.Second)

	// the deadline is already 900ms behind, so no sleep happens
	l.Wait(false)
	if want := clock.Add(100 * time.Millisecond); !l.next.Equal(want) {
		t.Errorf("next = %v, want %v", l.next, want)
	}
}
