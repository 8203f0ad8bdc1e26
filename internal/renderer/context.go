package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"fracture/internal/logging"
)

// Context is the render subsystem handed to every component that draws:
// one render command (and so one backend), one shader library and one scene
// renderer. It replaces process-wide singletons.
type Context struct {
	Command *RenderCommand
	Shaders *ShaderLibrary
	Scene   *SceneRenderer
	log     logrus.FieldLogger
}

// NewContext resolves api and wires the subsystem. An API without a registered
// backend fails with ErrUnknownAPI.
func NewContext(api API, log logrus.FieldLogger) (*Context, error) {
	log = logging.OrCore(log)
	cmd, err := NewRenderCommand(api, log)
	if err != nil {
		log.Errorf("Renderer API %s is not supported: %v", api, err)
		return nil, err
	}
	return &Context{
		Command: cmd,
		Shaders: NewShaderLibrary(cmd, log),
		Scene:   NewSceneRenderer(cmd, log),
		log:     log,
	}, nil
}

// Init constructs and initializes the backend. Call it after the window has
// made its GPU context current.
func (c *Context) Init() error {
	if err := c.Scene.Init(); err != nil {
		return fmt.Errorf("renderer init: %w", err)
	}
	return nil
}

// Backend exposes the active backend for resource creation.
func (c *Context) Backend() Backend { return c.Command.Backend() }

func (c *Context) NewVertexBuffer(vertices []float32, layout BufferLayout) (VertexBuffer, error) {
	vb, err := c.Backend().NewVertexBuffer(vertices)
	if err != nil {
		return nil, err
	}
	vb.SetLayout(layout)
	return vb, nil
}

func (c *Context) NewIndexBuffer(indices []uint32) (IndexBuffer, error) {
	return c.Backend().NewIndexBuffer(indices)
}

// NewMesh builds a vertex array holding one vertex buffer and one index
// buffer. The caller owns all three resources.
func (c *Context) NewMesh(vertices []float32, layout BufferLayout, indices []uint32) (VertexArray, VertexBuffer, IndexBuffer, error) {
	va, err := c.Backend().NewVertexArray()
	if err != nil {
		return nil, nil, nil, err
	}
	vb, err := c.NewVertexBuffer(vertices, layout)
	if err != nil {
		va.Destroy()
		return nil, nil, nil, err
	}
	ib, err := c.NewIndexBuffer(indices)
	if err != nil {
		vb.Destroy()
		va.Destroy()
		return nil, nil, nil, err
	}
	va.AddVertexBuffer(vb)
	va.SetIndexBuffer(ib)
	return va, vb, ib, nil
}

// LoadTexture2D decodes the image at path and uploads it.
func (c *Context) LoadTexture2D(path string) (Texture2D, error) {
	data, err := LoadTextureFile(path)
	if err != nil {
		c.log.Errorf("Failed to load texture: %v", err)
		return nil, err
	}
	return c.Backend().NewTexture2D(data)
}

// NewSolidTexture2D uploads a single-colour texture.
func (c *Context) NewSolidTexture2D(width, height uint32, color mgl32.Vec3) (Texture2D, error) {
	return c.Backend().NewTexture2D(SolidTexture(width, height, color))
}

// Shutdown destroys the library's shaders and tears down the backend. Any
// other resource still alive is reported as an error.
func (c *Context) Shutdown() error {
	c.Shaders.Destroy()
	if !c.Command.Constructed() {
		return nil
	}
	err := c.Command.Backend().Shutdown()
	if errors.Is(err, ErrResourcesAlive) {
		c.log.Warnf("Renderer shutdown: %v", err)
	}
	return err
}
