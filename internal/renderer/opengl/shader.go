package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"fracture/internal/renderer"
)

var glStages = map[renderer.ShaderStage]uint32{
	renderer.StageVertex:   gl.VERTEX_SHADER,
	renderer.StageFragment: gl.FRAGMENT_SHADER,
}

// Shader is a linked GL program with a uniform location cache.
type Shader struct {
	b         *Backend
	id        uint32
	name      string
	locations map[string]int32
}

func (b *Backend) NewShader(name string, sources renderer.ShaderSources) (renderer.Shader, error) {
	log := b.log.WithField("shader", name)

	var stages []uint32
	deleteStages := func() {
		for _, s := range stages {
			gl.DeleteShader(s)
		}
	}
	for _, stage := range []renderer.ShaderStage{renderer.StageVertex, renderer.StageFragment} {
		src, ok := sources[stage]
		if !ok {
			deleteStages()
			return nil, fmt.Errorf("%w: %q has no %s stage", renderer.ErrShaderLink, name, stage)
		}
		s, err := compileStage(src, glStages[stage])
		if err != nil {
			log.Errorf("%s shader compilation failure: %v", stage, err)
			deleteStages()
			return nil, fmt.Errorf("%w: %s stage of %q: %v", renderer.ErrShaderCompile, stage, name, err)
		}
		stages = append(stages, s)
	}

	program := gl.CreateProgram()
	for _, s := range stages {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		info := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(info))
		info = strings.TrimRight(info, "\x00")

		log.Errorf("Shader link failure: %s", info)
		gl.DeleteProgram(program)
		deleteStages()
		return nil, fmt.Errorf("%w: %q: %s", renderer.ErrShaderLink, name, info)
	}

	// Linked programs keep working after their stages are detached and deleted.
	for _, s := range stages {
		gl.DetachShader(program, s)
	}
	deleteStages()

	b.resources.Track("shader", renderer.Handle(program))
	return &Shader{b: b, id: program, name: name, locations: make(map[string]int32)}, nil
}

func compileStage(source string, stageType uint32) (uint32, error) {
	shader := gl.CreateShader(stageType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		info := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(info))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("%s", strings.TrimRight(info, "\x00"))
	}
	return shader, nil
}

func (s *Shader) Name() string            { return s.name }
func (s *Shader) Handle() renderer.Handle { return renderer.Handle(s.id) }
func (s *Shader) Bind()                   { gl.UseProgram(s.id) }
func (s *Shader) Unbind()                 { gl.UseProgram(0) }

// location resolves name once per shader. Missing uniforms resolve to -1,
// which GL ignores on upload.
func (s *Shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(s.id, gl.Str(name+"\x00"))
	if loc == -1 {
		s.b.log.WithField("shader", s.name).Debugf("Uniform '%s' not found", name)
	}
	s.locations[name] = loc
	return loc
}

func (s *Shader) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(s.location(name), i)
}

func (s *Shader) SetInt(name string, v int32)     { gl.Uniform1i(s.location(name), v) }
func (s *Shader) SetInt2(name string, v [2]int32) { gl.Uniform2i(s.location(name), v[0], v[1]) }
func (s *Shader) SetInt3(name string, v [3]int32) { gl.Uniform3i(s.location(name), v[0], v[1], v[2]) }
func (s *Shader) SetInt4(name string, v [4]int32) {
	gl.Uniform4i(s.location(name), v[0], v[1], v[2], v[3])
}

func (s *Shader) SetFloat(name string, v float32)     { gl.Uniform1f(s.location(name), v) }
func (s *Shader) SetFloat2(name string, v mgl32.Vec2) { gl.Uniform2f(s.location(name), v[0], v[1]) }
func (s *Shader) SetFloat3(name string, v mgl32.Vec3) {
	gl.Uniform3f(s.location(name), v[0], v[1], v[2])
}
func (s *Shader) SetFloat4(name string, v mgl32.Vec4) {
	gl.Uniform4f(s.location(name), v[0], v[1], v[2], v[3])
}

func (s *Shader) SetMat3(name string, v mgl32.Mat3) {
	gl.UniformMatrix3fv(s.location(name), 1, false, &v[0])
}

func (s *Shader) SetMat4(name string, v mgl32.Mat4) {
	gl.UniformMatrix4fv(s.location(name), 1, false, &v[0])
}

func (s *Shader) Destroy() {
	if s.id == 0 {
		return
	}
	s.b.resources.Release("shader", renderer.Handle(s.id))
	gl.DeleteProgram(s.id)
	s.id = 0
}
