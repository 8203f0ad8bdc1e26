// Package renderer is the backend-agnostic half of the rendering seam: the
// render command facade, GPU resource contracts, shader preprocessing and the
// scene renderer. Concrete GPU APIs live in subpackages and register a
// Constructor for their API tag.
package renderer

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// API tags a concrete backend implementation.
type API int

const (
	APINone API = iota
	APIOpenGL
	APIHeadless
)

var apiNames = map[API]string{
	APINone:     "none",
	APIOpenGL:   "opengl",
	APIHeadless: "headless",
}

func (a API) String() string {
	if n, ok := apiNames[a]; ok {
		return n
	}
	return fmt.Sprintf("API(%d)", int(a))
}

// ParseAPI maps a config name such as "opengl" to its tag.
func ParseAPI(name string) (API, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for api, n := range apiNames {
		if n == name && api != APINone {
			return api, nil
		}
	}
	return APINone, fmt.Errorf("%w: %q", ErrUnknownAPI, name)
}

// Constructor builds a backend. It runs on first use of the render command,
// after the window and its GPU context exist.
type Constructor func(log logrus.FieldLogger) (Backend, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[API]Constructor)
)

// Register makes a backend available under api. Registering the same API
// twice, or APINone, panics.
func Register(api API, c Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if c == nil {
		panic("renderer: Register constructor is nil")
	}
	if api == APINone {
		panic("renderer: cannot register APINone")
	}
	if _, dup := registry[api]; dup {
		panic("renderer: Register called twice for " + api.String())
	}
	registry[api] = c
}

func lookup(api API) (Constructor, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[api]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no registered backend", ErrUnknownAPI, api)
	}
	return c, nil
}

// Registered lists the APIs with a backend, in tag order.
func Registered() []API {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]API, 0, len(registry))
	for api := range registry {
		out = append(out, api)
	}
	slices.Sort(out)
	return out
}

var (
	ErrUnknownAPI      = errors.New("renderer: unknown or unsupported API")
	ErrShaderCompile   = errors.New("renderer: shader stage compilation failed")
	ErrShaderLink      = errors.New("renderer: shader program link failed")
	ErrNoShaderStages  = errors.New("renderer: shader source has no usable stages")
	ErrNoActiveScene   = errors.New("renderer: no active scene, call BeginScene first")
	ErrSceneActive     = errors.New("renderer: scene already active, call EndScene first")
	ErrNoIndexBuffer   = errors.New("renderer: vertex array has no index buffer")
	ErrBufferOverflow  = errors.New("renderer: data exceeds buffer capacity")
	ErrTextureDecode   = errors.New("renderer: texture decode failed")
	ErrResourcesAlive  = errors.New("renderer: resources still alive at shutdown")
	ErrEmptyBufferData = errors.New("renderer: buffer data is empty")
)
