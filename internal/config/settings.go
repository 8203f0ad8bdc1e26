package config

import "sync"

// RuntimeSettings holds values that may change while the frame loop runs.
type RuntimeSettings struct {
	mu       sync.RWMutex
	fpsLimit int // 0 = uncapped
	vsync    bool
}

var globalRuntimeSettings = &RuntimeSettings{
	fpsLimit: 144,
}

// GetFPSLimit returns the current frame cap; 0 means uncapped.
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame cap. Negative values are treated as uncapped and
// anything above 1000 is clamped.
func SetFPSLimit(limit int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRuntimeSettings.fpsLimit = limit
}

// GetVSync reports whether the window should wait for vertical sync.
func GetVSync() bool {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.vsync
}

// SetVSync records the vsync preference.
func SetVSync(enabled bool) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.vsync = enabled
}

// Apply copies the startup values of cfg into the runtime settings.
func Apply(cfg *Config) {
	SetFPSLimit(cfg.App.FPSLimit)
	SetVSync(cfg.Window.VSync)
}
