// Package opengl implements the render backend on OpenGL 4.1 core.
// Importing it registers renderer.APIOpenGL.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"fracture/internal/logging"
	"fracture/internal/renderer"
)

func init() {
	renderer.Register(renderer.APIOpenGL, New)
}

// Backend issues GL calls on the thread that owns the current context.
type Backend struct {
	log         logrus.FieldLogger
	initialized bool
	boundVA     *VertexArray
	resources   renderer.ResourceTracker
}

// New loads the GL function pointers. The window's context must already be
// current.
func New(log logrus.FieldLogger) (renderer.Backend, error) {
	log = logging.OrCore(log)
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return &Backend{log: log}, nil
}

func (b *Backend) Init() error {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	b.log.Info("OpenGL Info:")
	b.log.Infof("  Vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	b.log.Infof("  Renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	b.log.Infof("  Version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	b.initialized = true
	return nil
}

func (b *Backend) IsInitialized() bool { return b.initialized }

func (b *Backend) SetClearColor(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
}

func (b *Backend) SetViewport(x, y, width, height uint32) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (b *Backend) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (b *Backend) DrawIndexed(indexCount uint32) {
	if indexCount == 0 {
		if b.boundVA == nil || b.boundVA.IndexBuffer() == nil {
			b.log.Warn("DrawIndexed(0) with no bound index buffer")
			return
		}
		indexCount = b.boundVA.IndexBuffer().Count()
	}
	gl.DrawElements(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_INT, nil)
}

func (b *Backend) Shutdown() error {
	err := b.resources.Err()
	if err != nil {
		b.log.Errorf("OpenGL backend shut down with live resources: %v", b.resources.Live())
	}
	b.initialized = false
	b.boundVA = nil
	return err
}
