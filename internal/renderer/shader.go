package renderer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// ShaderStage is one programmable pipeline stage.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return fmt.Sprintf("ShaderStage(%d)", int(s))
}

// ShaderSources maps each stage to its complete source text.
type ShaderSources map[ShaderStage]string

// Shader is a linked GPU program. Uniform setters are silently ignored when the
// uniform does not exist in the program.
type Shader interface {
	Name() string
	Handle() Handle
	Bind()
	Unbind()

	SetBool(name string, v bool)
	SetInt(name string, v int32)
	SetInt2(name string, v [2]int32)
	SetInt3(name string, v [3]int32)
	SetInt4(name string, v [4]int32)
	SetFloat(name string, v float32)
	SetFloat2(name string, v mgl32.Vec2)
	SetFloat3(name string, v mgl32.Vec3)
	SetFloat4(name string, v mgl32.Vec4)
	SetMat3(name string, v mgl32.Mat3)
	SetMat4(name string, v mgl32.Mat4)

	Destroy()
}

// DefaultShaderVersion is prepended to every stage when the source file does
// not carry its own #version line.
const DefaultShaderVersion = "#version 410 core"

var stageMarkers = map[string]ShaderStage{
	"_TYPE_VERTEX_SHADER":   StageVertex,
	"_TYPE_FRAGMENT_SHADER": StageFragment,
	"_TYPE_PIXEL_SHADER":    StageFragment,
}

// PreprocessShader splits a single-file shader into per-stage sources. Stages
// are delimited with "#ifdef _TYPE_VERTEX_SHADER" and "#ifdef
// _TYPE_FRAGMENT_SHADER" (or _TYPE_PIXEL_SHADER). Each stage gets the version
// line followed by the define of its marker and then the file body, so the
// preprocessor keeps only that stage's block.
func PreprocessShader(source string) (ShaderSources, error) {
	version := DefaultShaderVersion
	var body strings.Builder
	defines := map[ShaderStage][]string{}

	sc := bufio.NewScanner(strings.NewReader(source))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	versionSeen := false
	for sc.Scan() {
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == "#version" && !versionSeen {
			version = strings.TrimSpace(line)
			versionSeen = true
			continue
		}
		if len(fields) >= 2 && fields[0] == "#ifdef" {
			if stage, ok := stageMarkers[fields[1]]; ok {
				defines[stage] = appendUnique(defines[stage], fields[1])
			}
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoShaderStages, err)
	}
	if len(defines) == 0 {
		return nil, fmt.Errorf("%w: no stage markers found", ErrNoShaderStages)
	}

	out := make(ShaderSources, 2)
	for _, stage := range []ShaderStage{StageVertex, StageFragment} {
		markers, ok := defines[stage]
		if !ok {
			return nil, fmt.Errorf("%w: missing %s stage", ErrNoShaderStages, stage)
		}
		var sb strings.Builder
		sb.WriteString(version)
		sb.WriteByte('\n')
		for _, m := range markers {
			sb.WriteString("#define " + m + "\n")
		}
		sb.WriteString(body.String())
		out[stage] = sb.String()
	}
	return out, nil
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

// ShaderNameFromPath derives a library name from a file path:
// "assets/shaders/Texture.glsl" becomes "Texture".
func ShaderNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// readShaderSource returns the file contents. I/O errors are logged and
// yield an empty source, which then fails preprocessing.
func readShaderSource(path string, log logrus.FieldLogger) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("Could not open shader file '%s': %v", path, err)
		return "", err
	}
	return string(data), nil
}

// CreateShaderFromFile preprocesses the file at path and compiles it on the
// command's backend. The shader is named after the file unless name is set.
func CreateShaderFromFile(cmd *RenderCommand, name, path string) (Shader, error) {
	if name == "" {
		name = ShaderNameFromPath(path)
	}
	src, readErr := readShaderSource(path, cmd.log)
	sources, err := PreprocessShader(src)
	if err != nil {
		if readErr != nil {
			err = fmt.Errorf("%w (%v)", err, readErr)
		}
		return nil, fmt.Errorf("shader %q from %s: %w", name, path, err)
	}
	return CreateShader(cmd, name, sources)
}

// CreateShaderFromSources compiles a vertex and fragment source pair.
func CreateShaderFromSources(cmd *RenderCommand, name, vertex, fragment string) (Shader, error) {
	return CreateShader(cmd, name, ShaderSources{StageVertex: vertex, StageFragment: fragment})
}

func CreateShader(cmd *RenderCommand, name string, sources ShaderSources) (Shader, error) {
	b, err := cmd.Ensure()
	if err != nil {
		return nil, err
	}
	s, err := b.NewShader(name, sources)
	if err != nil {
		cmd.log.WithField("shader", name).Errorf("Shader creation failed: %v", err)
		return nil, err
	}
	return s, nil
}
