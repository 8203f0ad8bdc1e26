package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"fracture/internal/logging"
)

// RenderCommand forwards draw intents to exactly one backend. The backend is
// built on first use so it is created after the window's GPU context.
type RenderCommand struct {
	api       API
	construct Constructor
	backend   Backend
	log       logrus.FieldLogger
}

// NewRenderCommand resolves api against the registry. The backend itself is
// not constructed yet.
func NewRenderCommand(api API, log logrus.FieldLogger) (*RenderCommand, error) {
	c, err := lookup(api)
	if err != nil {
		return nil, err
	}
	return &RenderCommand{api: api, construct: c, log: logging.OrCore(log)}, nil
}

func (rc *RenderCommand) API() API { return rc.api }

// Constructed reports whether the backend has been built.
func (rc *RenderCommand) Constructed() bool { return rc.backend != nil }

// Ensure builds the backend if needed and returns it.
func (rc *RenderCommand) Ensure() (Backend, error) {
	if rc.backend != nil {
		return rc.backend, nil
	}
	b, err := rc.construct(rc.log)
	if err != nil {
		return nil, fmt.Errorf("constructing %s backend: %w", rc.api, err)
	}
	rc.log.Infof("Render backend %s constructed", rc.api)
	rc.backend = b
	return b, nil
}

// Backend returns the backend, constructing it on first use. A construction
// failure is fatal.
func (rc *RenderCommand) Backend() Backend {
	b, err := rc.Ensure()
	if err != nil {
		rc.log.Panicf("%v", err)
	}
	return b
}

func (rc *RenderCommand) SetClearColor(color mgl32.Vec4) {
	rc.Backend().SetClearColor(color)
}

func (rc *RenderCommand) SetViewport(x, y, width, height uint32) {
	rc.Backend().SetViewport(x, y, width, height)
}

func (rc *RenderCommand) Clear() {
	rc.Backend().Clear()
}

func (rc *RenderCommand) DrawIndexed(indexCount uint32) {
	rc.Backend().DrawIndexed(indexCount)
}
