// Package sandbox is the demo application layer: a grid of flat-coloured
// quads, a textured square and a logo, viewed through a 2D camera controller.
package sandbox

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"fracture/internal/debugui"
	"fracture/internal/events"
	"fracture/internal/graphics"
	"fracture/internal/layer"
	"fracture/internal/logging"
	"fracture/internal/profiling"
	"fracture/internal/renderer"
)

const (
	gridHalf    = 10
	gridSpacing = 0.1

	// texture slots
	slotBase = 0
	slotLogo = 1
)

var quadVertices = []float32{
	-0.5, -0.5, 0.0, 0.0, 0.0,
	0.5, -0.5, 0.0, 1.0, 0.0,
	0.5, 0.5, 0.0, 1.0, 1.0,
	-0.5, 0.5, 0.0, 0.0, 1.0,
}

var quadIndices = []uint32{0, 1, 2, 2, 3, 0}

// Options configure a Sandbox2D.
type Options struct {
	AssetsDir   string
	AspectRatio float32
	Camera      graphics.CameraControllerOptions
}

// object is one drawable: shared quad geometry with its own shader and pose.
type object struct {
	name      string
	shader    renderer.Shader
	transform *graphics.Transform
}

// Sandbox2D draws the demo scene each frame and reports frame stats to the
// debug overlay.
type Sandbox2D struct {
	layer.Base

	rc      *renderer.Context
	debugUI *debugui.Overlay
	log     logrus.FieldLogger
	opts    Options

	controller *graphics.CameraController

	quadVA renderer.VertexArray
	quadVB renderer.VertexBuffer
	quadIB renderer.IndexBuffer

	square    object
	bigSquare object
	logo      object

	baseTexture renderer.Texture2D
	logoTexture renderer.Texture2D

	squareColor    mgl32.Vec4
	animateSquares bool
	animationSpeed float32
	logoPosition   mgl32.Vec3

	lastFrameTime layer.Timestep
	ready         bool
}

// New builds the layer. Resources are created in OnAttach.
func New(rc *renderer.Context, in graphics.InputState, debugUI *debugui.Overlay, opts Options, log logrus.FieldLogger) *Sandbox2D {
	if opts.AspectRatio <= 0 {
		opts.AspectRatio = 1280.0 / 720.0
	}
	return &Sandbox2D{
		Base:           layer.NewBase("Sandbox2D"),
		rc:             rc,
		debugUI:        debugUI,
		log:            logging.OrCore(log),
		opts:           opts,
		controller:     graphics.NewCameraController(opts.AspectRatio, opts.Camera, in),
		squareColor:    mgl32.Vec4{0.2, 0.3, 0.8, 1.0},
		animateSquares: true,
		animationSpeed: 0.5,
		logoPosition:   mgl32.Vec3{-1, 0, 0},
	}
}

func (s *Sandbox2D) Controller() *graphics.CameraController { return s.controller }

// Ready reports whether OnAttach created every resource.
func (s *Sandbox2D) Ready() bool { return s.ready }

func (s *Sandbox2D) OnAttach() {
	defer profiling.Track("Sandbox2D.OnAttach")()
	if err := s.load(); err != nil {
		s.log.Errorf("Sandbox2D: %v", err)
		s.release()
		return
	}
	s.ready = true
}

func (s *Sandbox2D) load() error {
	layout := renderer.NewBufferLayout(
		renderer.Element(renderer.Float3, "a_Position"),
		renderer.Element(renderer.Float2, "a_TexCoord"),
	)
	var err error
	s.quadVA, s.quadVB, s.quadIB, err = s.rc.NewMesh(quadVertices, layout, quadIndices)
	if err != nil {
		return err
	}

	shaders := filepath.Join(s.opts.AssetsDir, "shaders")
	flat, err := s.rc.Shaders.Load(filepath.Join(shaders, "FlatColour.glsl"))
	if err != nil {
		return err
	}
	textured := filepath.Join(shaders, "Texture.glsl")
	big, err := s.rc.Shaders.LoadNamed("BigSquare", textured)
	if err != nil {
		return err
	}
	logo, err := s.rc.Shaders.LoadNamed("Logo", textured)
	if err != nil {
		return err
	}

	s.square = object{name: "Ground Shape", shader: flat, transform: graphics.NewTransform()}
	s.square.transform.SetScale(mgl32.Vec3{0.1, 0.1, 0.1})
	s.bigSquare = object{name: "Texture Square", shader: big, transform: graphics.NewTransform()}
	s.bigSquare.transform.SetScale(mgl32.Vec3{1.5, 1.5, 1.5})
	s.logo = object{name: "Logo Square", shader: logo, transform: graphics.NewTransform()}
	s.logo.transform.SetScale(mgl32.Vec3{0.5, 0.5, 0.5})

	textures := filepath.Join(s.opts.AssetsDir, "textures")
	s.baseTexture = s.texture(filepath.Join(textures, "base-map.png"), mgl32.Vec3{0.8, 0.2, 0.3})
	s.logoTexture = s.texture(filepath.Join(textures, "FractureLogo.png"), mgl32.Vec3{0.9, 0.9, 0.9})
	if s.baseTexture == nil || s.logoTexture == nil {
		return fmt.Errorf("sandbox textures: %w", renderer.ErrTextureDecode)
	}

	big.Bind()
	big.SetInt("u_Texture", slotBase)
	logo.Bind()
	logo.SetInt("u_Texture", slotLogo)
	logo.Unbind()
	return nil
}

// texture loads path, falling back to a 1x1 texture of fallback when the file
// is missing or unreadable.
func (s *Sandbox2D) texture(path string, fallback mgl32.Vec3) renderer.Texture2D {
	tex, err := s.rc.LoadTexture2D(path)
	if err == nil {
		return tex
	}
	s.log.Warnf("Using a solid texture for %s: %v", filepath.Base(path), err)
	tex, err = s.rc.NewSolidTexture2D(1, 1, fallback)
	if err != nil {
		s.log.Errorf("Solid texture: %v", err)
		return nil
	}
	return tex
}

func (s *Sandbox2D) OnDetach() {
	s.release()
	s.ready = false
}

// release destroys what load created. Shaders belong to the library.
func (s *Sandbox2D) release() {
	for _, tex := range []renderer.Texture2D{s.baseTexture, s.logoTexture} {
		if tex != nil {
			tex.Destroy()
		}
	}
	s.baseTexture, s.logoTexture = nil, nil
	if s.quadVA != nil {
		s.quadVA.Destroy()
	}
	if s.quadVB != nil {
		s.quadVB.Destroy()
	}
	if s.quadIB != nil {
		s.quadIB.Destroy()
	}
	s.quadVA, s.quadVB, s.quadIB = nil, nil, nil
}

func (s *Sandbox2D) OnUpdate(ts layer.Timestep) {
	defer profiling.Track("Sandbox2D.OnUpdate")()
	s.lastFrameTime = ts
	s.controller.OnUpdate(ts)
	if !s.ready {
		return
	}

	if s.animateSquares {
		s.square.transform.Rotate(mgl32.Vec3{0, 0, s.animationSpeed * ts.Seconds()})
	}
	s.logo.transform.SetPosition(s.logoPosition)

	s.square.shader.Bind()
	s.square.shader.SetFloat4("u_Color", s.squareColor)
	s.baseTexture.Bind(slotBase)
	s.logoTexture.Bind(slotLogo)

	s.rc.Command.Clear()
	scene := s.rc.Scene
	if err := scene.BeginScene(s.controller.Camera()); err != nil {
		s.log.Errorf("BeginScene: %v", err)
		return
	}
	base := s.square.transform.Matrix()
	for x := -gridHalf; x < gridHalf; x++ {
		for y := -gridHalf; y < gridHalf; y++ {
			offset := mgl32.Translate3D(float32(x)*gridSpacing, float32(y)*gridSpacing, 0)
			s.submit(s.square, offset.Mul4(base))
		}
	}
	s.submit(s.bigSquare, s.bigSquare.transform.Matrix())
	s.submit(s.logo, s.logo.transform.Matrix())
	if err := scene.EndScene(); err != nil {
		s.log.Errorf("EndScene: %v", err)
	}
}

func (s *Sandbox2D) submit(o object, transform mgl32.Mat4) {
	if err := s.rc.Scene.Submit(s.quadVA, o.shader, transform); err != nil {
		s.log.WithField("object", o.name).Errorf("Submit: %v", err)
	}
}

// OnEvent feeds the camera controller. Space toggles the square animation.
func (s *Sandbox2D) OnEvent(e *events.Event) {
	events.Dispatch(e, func(k events.KeyPressed) bool {
		if k.Key == events.KeySpace && !k.Repeat {
			s.animateSquares = !s.animateSquares
			return true
		}
		return false
	})
	s.controller.OnEvent(e)
}

func (s *Sandbox2D) OnImGuiRender() {
	if s.debugUI == nil {
		return
	}
	perf := s.debugUI.Panel("Performance")
	if s.lastFrameTime > 0 {
		perf.Text("Frame Rate: %.1f", 1/s.lastFrameTime.Seconds())
	}
	perf.Text("Frame Time: %.2fms", s.lastFrameTime.Milliseconds())

	scene := s.debugUI.Panel("Scene Controls")
	scene.Text("Zoom: %.2f", s.controller.ZoomLevel())
	scene.Text("Animate Squares: %v", s.animateSquares)
	scene.Text("Square Color: %.2f %.2f %.2f %.2f", s.squareColor[0], s.squareColor[1], s.squareColor[2], s.squareColor[3])
}

// SetSquareColor, SetAnimation and SetLogoPosition stand in for the editor
// widgets of the scene controls panel.
func (s *Sandbox2D) SetSquareColor(c mgl32.Vec4) { s.squareColor = c }

func (s *Sandbox2D) SetAnimation(enabled bool, speed float32) {
	s.animateSquares = enabled
	s.animationSpeed = max(0, min(speed, 10))
}

func (s *Sandbox2D) SetLogoPosition(p mgl32.Vec3) {
	clamp := func(v float32) float32 { return max(-1, min(v, 1)) }
	s.logoPosition = mgl32.Vec3{clamp(p[0]), clamp(p[1]), clamp(p[2])}
}
