package engine

import (
	"time"

	"fracture/internal/config"
)

// FPSLimiter paces the frame loop to the runtime frame cap. It sleeps until
// spin before each deadline and busy-waits the rest.
type FPSLimiter struct {
	idleLimit int
	spin      time.Duration
	next      time.Time
	now       func() time.Time
}

// NewFPSLimiter returns a limiter that caps idle frames at idleLimit (0 keeps
// the normal cap) and spins for the final spin of every frame.
func NewFPSLimiter(idleLimit int, spin time.Duration) *FPSLimiter {
	return &FPSLimiter{
		idleLimit: max(idleLimit, 0),
		spin:      max(spin, 0),
		now:       time.Now,
	}
}

// limit is the frame cap in force; 0 means uncapped.
func (f *FPSLimiter) limit(idle bool) int {
	fps := config.GetFPSLimit()
	if idle && f.idleLimit > 0 && (fps <= 0 || fps > f.idleLimit) {
		return f.idleLimit
	}
	return fps
}

// Wait blocks until the next frame should start. idle selects the minimized
// cap.
func (f *FPSLimiter) Wait(idle bool) {
	fps := f.limit(idle)
	if fps <= 0 {
		f.next = time.Time{}
		return
	}
	target := time.Second / time.Duration(fps)

	if f.next.IsZero() {
		f.next = f.now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := f.next.Sub(f.now())
		if remaining <= 0 {
			break
		}
		if remaining > f.spin {
			time.Sleep(remaining - f.spin)
		}
	}

	// resync after a hitch instead of racing to catch up
	if late := f.now().Sub(f.next); late > target {
		f.next = f.now().Add(target)
	}
}
