package renderer

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Handle identifies a GPU object inside the active backend. It is owned by
// the resource that created it and is not stable across backend restarts.
type Handle uint32

// Backend is implemented once per GPU API.
type Backend interface {
	Init() error
	IsInitialized() bool
	SetClearColor(color mgl32.Vec4)
	SetViewport(x, y, width, height uint32)
	Clear()
	// DrawIndexed draws indexCount indices from the bound vertex array. A
	// count of 0 draws the bound vertex array's whole index buffer.
	DrawIndexed(indexCount uint32)
	// Shutdown tears the backend down. Every resource must be destroyed first.
	Shutdown() error

	NewVertexBuffer(vertices []float32) (VertexBuffer, error)
	NewDynamicVertexBuffer(size uint32) (VertexBuffer, error)
	NewIndexBuffer(indices []uint32) (IndexBuffer, error)
	NewVertexArray() (VertexArray, error)
	NewShader(name string, sources ShaderSources) (Shader, error)
	NewTexture2D(data TextureData) (Texture2D, error)
}

type resourceKey struct {
	kind   string
	handle Handle
}

// ResourceTracker counts live GPU objects for a backend so Shutdown can report
// leaks. The zero value is ready to use.
type ResourceTracker struct {
	live map[resourceKey]struct{}
}

func (t *ResourceTracker) Track(kind string, h Handle) {
	if t.live == nil {
		t.live = make(map[resourceKey]struct{})
	}
	t.live[resourceKey{kind, h}] = struct{}{}
}

func (t *ResourceTracker) Release(kind string, h Handle) {
	delete(t.live, resourceKey{kind, h})
}

// Live describes the resources not yet released, e.g. "shader#3".
func (t *ResourceTracker) Live() []string {
	out := make([]string, 0, len(t.live))
	for k := range t.live {
		out = append(out, fmt.Sprintf("%s#%d", k.kind, k.handle))
	}
	slices.Sort(out)
	return out
}

// Err returns ErrResourcesAlive listing the survivors, or nil.
func (t *ResourceTracker) Err() error {
	if len(t.live) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrResourcesAlive, t.Live())
}
