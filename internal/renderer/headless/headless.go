// Package headless is a GPU-less render backend. It hands out handles and
// records every command it receives, which makes it the backend for CI runs
// and the fake used by renderer and engine tests.
package headless

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"fracture/internal/logging"
	"fracture/internal/renderer"
)

func init() {
	renderer.Register(renderer.APIHeadless, New)
}

// Kind classifies a recorded command.
type Kind int

const (
	CmdInit Kind = iota
	CmdSetClearColor
	CmdSetViewport
	CmdClear
	CmdDrawIndexed
	CmdBindShader
	CmdUnbindShader
	CmdSetUniform
	CmdBindVertexArray
	CmdUnbindVertexArray
	CmdBindVertexBuffer
	CmdBindIndexBuffer
	CmdBindTexture
)

var kindNames = [...]string{
	CmdInit:              "Init",
	CmdSetClearColor:     "SetClearColor",
	CmdSetViewport:       "SetViewport",
	CmdClear:             "Clear",
	CmdDrawIndexed:       "DrawIndexed",
	CmdBindShader:        "BindShader",
	CmdUnbindShader:      "UnbindShader",
	CmdSetUniform:        "SetUniform",
	CmdBindVertexArray:   "BindVertexArray",
	CmdUnbindVertexArray: "UnbindVertexArray",
	CmdBindVertexBuffer:  "BindVertexBuffer",
	CmdBindIndexBuffer:   "BindIndexBuffer",
	CmdBindTexture:       "BindTexture",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Command is one recorded backend call. Only the fields relevant to Kind are
// set. Uniform values are copies taken at upload time.
type Command struct {
	Kind     Kind
	Handle   renderer.Handle
	Count    uint32
	Viewport [4]uint32
	Color    mgl32.Vec4
	Uniform  string
	Value    any
	Slot     uint32
}

// Backend records commands instead of talking to a GPU.
type Backend struct {
	log         logrus.FieldLogger
	initialized bool
	nextHandle  renderer.Handle
	commands    []Command
	boundVA     *VertexArray
	clearColor  mgl32.Vec4
	viewport    [4]uint32
	resources   renderer.ResourceTracker

	// locationQueries counts uniform location lookups that missed a shader's
	// cache.
	locationQueries int
}

// New is the renderer.Constructor for APIHeadless.
func New(log logrus.FieldLogger) (renderer.Backend, error) {
	return NewBackend(log), nil
}

// NewBackend returns the concrete type so tests can inspect the recording.
func NewBackend(log logrus.FieldLogger) *Backend {
	return &Backend{log: logging.OrCore(log)}
}

func (b *Backend) record(c Command) { b.commands = append(b.commands, c) }

func (b *Backend) handle(kind string) renderer.Handle {
	b.nextHandle++
	b.resources.Track(kind, b.nextHandle)
	return b.nextHandle
}

func (b *Backend) Init() error {
	b.initialized = true
	b.record(Command{Kind: CmdInit})
	b.log.Info("Headless renderer initialized")
	return nil
}

func (b *Backend) IsInitialized() bool { return b.initialized }

func (b *Backend) SetClearColor(color mgl32.Vec4) {
	b.clearColor = color
	b.record(Command{Kind: CmdSetClearColor, Color: color})
}

func (b *Backend) SetViewport(x, y, width, height uint32) {
	b.viewport = [4]uint32{x, y, width, height}
	b.record(Command{Kind: CmdSetViewport, Viewport: b.viewport})
}

func (b *Backend) Clear() { b.record(Command{Kind: CmdClear}) }

func (b *Backend) DrawIndexed(indexCount uint32) {
	if indexCount == 0 {
		if b.boundVA == nil || b.boundVA.IndexBuffer() == nil {
			b.log.Warn("DrawIndexed(0) with no bound index buffer")
			return
		}
		indexCount = b.boundVA.IndexBuffer().Count()
	}
	var h renderer.Handle
	if b.boundVA != nil {
		h = b.boundVA.id
	}
	b.record(Command{Kind: CmdDrawIndexed, Handle: h, Count: indexCount})
}

func (b *Backend) Shutdown() error {
	err := b.resources.Err()
	b.initialized = false
	b.boundVA = nil
	return err
}

// Commands returns a copy of the recording.
func (b *Backend) Commands() []Command { return slices.Clone(b.commands) }

// Filter returns the recorded commands of the given kinds, in order.
func (b *Backend) Filter(kinds ...Kind) []Command {
	var out []Command
	for _, c := range b.commands {
		if slices.Contains(kinds, c.Kind) {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many commands of kind were recorded.
func (b *Backend) Count(kind Kind) int { return len(b.Filter(kind)) }

// Reset drops the recording but keeps resources and state.
func (b *Backend) Reset() { b.commands = nil }

func (b *Backend) ClearColor() mgl32.Vec4 { return b.clearColor }
func (b *Backend) Viewport() [4]uint32    { return b.viewport }

// LiveResources lists resources not yet destroyed.
func (b *Backend) LiveResources() []string { return b.resources.Live() }

// LocationQueries reports how many uniform lookups missed a shader cache.
func (b *Backend) LocationQueries() int { return b.locationQueries }
