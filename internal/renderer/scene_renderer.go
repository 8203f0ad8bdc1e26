package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"fracture/internal/logging"
	"fracture/internal/profiling"
)

// ViewProjector is anything that can supply a view-projection matrix,
// usually a camera.
type ViewProjector interface {
	ViewProjection() mgl32.Mat4
}

// Uniform names uploaded by Submit.
const (
	UniformViewProjection = "u_ViewProjection"
	UniformTransform      = "u_Transform"
)

type sceneData struct {
	viewProjection mgl32.Mat4
	boundShader    Handle
	shaderBound    bool
}

// SceneRenderer is an immediate-mode renderer: submissions draw in issue
// order between BeginScene and EndScene.
type SceneRenderer struct {
	cmd    *RenderCommand
	scene  sceneData
	active bool
	log    logrus.FieldLogger
}

func NewSceneRenderer(cmd *RenderCommand, log logrus.FieldLogger) *SceneRenderer {
	return &SceneRenderer{cmd: cmd, log: logging.OrCore(log)}
}

// Init initializes the backend once.
func (r *SceneRenderer) Init() error {
	b, err := r.cmd.Ensure()
	if err != nil {
		return err
	}
	if b.IsInitialized() {
		return nil
	}
	return b.Init()
}

// BeginScene snapshots the camera's view-projection. Mutating the camera
// afterwards does not affect this scene.
func (r *SceneRenderer) BeginScene(camera ViewProjector) error {
	if r.active {
		return ErrSceneActive
	}
	r.scene = sceneData{viewProjection: camera.ViewProjection()}
	r.active = true
	return nil
}

// Submit draws va with shader. The shader is only bound when it differs from
// the one bound by the previous Submit of this scene.
func (r *SceneRenderer) Submit(va VertexArray, shader Shader, transform mgl32.Mat4) error {
	defer profiling.Track("renderer.Submit")()
	if !r.active {
		return ErrNoActiveScene
	}
	ib := va.IndexBuffer()
	if ib == nil {
		return fmt.Errorf("%w: vertex array %d", ErrNoIndexBuffer, va.Handle())
	}

	if !r.scene.shaderBound || shader.Handle() != r.scene.boundShader {
		shader.Bind()
		r.scene.boundShader = shader.Handle()
		r.scene.shaderBound = true
	}
	shader.SetMat4(UniformViewProjection, r.scene.viewProjection)
	shader.SetMat4(UniformTransform, transform)

	va.Bind()
	r.cmd.DrawIndexed(ib.Count())
	return nil
}

// EndScene closes the bracket opened by BeginScene.
func (r *SceneRenderer) EndScene() error {
	if !r.active {
		return ErrNoActiveScene
	}
	r.active = false
	return nil
}

// InScene reports whether BeginScene has been called without EndScene.
func (r *SceneRenderer) InScene() bool { return r.active }

// OnWindowResize keeps the viewport in sync with the framebuffer.
func (r *SceneRenderer) OnWindowResize(width, height uint32) {
	r.cmd.SetViewport(0, 0, width, height)
}
