package renderer

import (
	"maps"
	"slices"

	"github.com/sirupsen/logrus"

	"fracture/internal/logging"
)

// ShaderLibrary caches compiled shaders by name. It owns the shaders added to
// it and destroys them in Destroy.
type ShaderLibrary struct {
	cmd     *RenderCommand
	shaders map[string]Shader
	log     logrus.FieldLogger
}

func NewShaderLibrary(cmd *RenderCommand, log logrus.FieldLogger) *ShaderLibrary {
	return &ShaderLibrary{
		cmd:     cmd,
		shaders: make(map[string]Shader),
		log:     logging.OrCore(log),
	}
}

// Add stores s under its own name. If the name is taken the existing shader
// is kept and returned, with a warning.
func (l *ShaderLibrary) Add(s Shader) Shader {
	return l.AddNamed(s.Name(), s)
}

func (l *ShaderLibrary) AddNamed(name string, s Shader) Shader {
	if name == "" {
		l.log.Panicf("Shader name must not be empty")
	}
	if existing, ok := l.shaders[name]; ok {
		l.log.Warnf("Shader '%s' already exists in library", name)
		return existing
	}
	l.shaders[name] = s
	return s
}

// Load compiles the shader at path and stores it under the file's base name.
// If that name is already present the cached shader is returned with a
// warning and nothing is compiled.
func (l *ShaderLibrary) Load(path string) (Shader, error) {
	return l.LoadNamed(ShaderNameFromPath(path), path)
}

func (l *ShaderLibrary) LoadNamed(name, path string) (Shader, error) {
	if s, ok := l.shaders[name]; ok {
		l.log.Warnf("Shader '%s' already loaded, not reloading %s", name, path)
		return s, nil
	}
	s, err := CreateShaderFromFile(l.cmd, name, path)
	if err != nil {
		return nil, err
	}
	return l.AddNamed(name, s), nil
}

// LoadSources compiles an in-memory vertex and fragment pair under name.
func (l *ShaderLibrary) LoadSources(name, vertex, fragment string) (Shader, error) {
	if s, ok := l.shaders[name]; ok {
		l.log.Warnf("Shader '%s' already loaded", name)
		return s, nil
	}
	s, err := CreateShaderFromSources(l.cmd, name, vertex, fragment)
	if err != nil {
		return nil, err
	}
	return l.AddNamed(name, s), nil
}

// Get returns the shader stored under name, or nil with a warning.
func (l *ShaderLibrary) Get(name string) Shader {
	s, ok := l.shaders[name]
	if !ok {
		l.log.Warnf("Shader '%s' not found in library", name)
		return nil
	}
	return s
}

func (l *ShaderLibrary) Exists(name string) bool {
	_, ok := l.shaders[name]
	return ok
}

// Names returns the stored names in sorted order.
func (l *ShaderLibrary) Names() []string {
	return slices.Sorted(maps.Keys(l.shaders))
}

// Destroy releases every stored shader and empties the library.
func (l *ShaderLibrary) Destroy() {
	for _, name := range l.Names() {
		l.shaders[name].Destroy()
	}
	clear(l.shaders)
}
