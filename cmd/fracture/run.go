package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/xlab/closer"

	"fracture/internal/config"
	"fracture/internal/debugui"
	"fracture/internal/engine"
	"fracture/internal/graphics"
	"fracture/internal/logging"
	"fracture/internal/renderer"
	_ "fracture/internal/renderer/headless"
	_ "fracture/internal/renderer/opengl"
	"fracture/internal/sandbox"
	"fracture/internal/window"
	"fracture/internal/window/desktop"
)

var (
	backendFlag string
	framesFlag  int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the sandbox window and run the frame loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("backend") {
			cfg.Renderer.Backend = backendFlag
		}
		if cmd.Flags().Changed("frames") {
			cfg.App.MaxFrames = framesFlag
		}
		if err := logging.Init(cfg.Logging.Level, cfg.Logging.File, cfg.Logging.Console); err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		config.Apply(cfg)
		run(cfg)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&backendFlag, "backend", "", "render backend: opengl or headless")
	runCmd.Flags().IntVar(&framesFlag, "frames", 0, "stop after this many frames (0 = until the window closes)")
}

// run builds the application and blocks until it exits. Setup failures are
// fatal.
func run(cfg *config.Config) {
	log := logging.Core()
	defer closer.Close()

	api, err := renderer.ParseAPI(cfg.Renderer.Backend)
	if err != nil {
		log.Fatalf("Renderer backend: %v (registered: %v)", err, renderer.Registered())
	}

	props := window.Props{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	}
	var win window.Window
	var title func(string)
	if api == renderer.APIHeadless {
		win = window.NewHeadless(props)
	} else {
		dw, err := desktop.New(props, log)
		if err != nil {
			log.Fatalf("Window: %v", err)
		}
		win = dw
		title = dw.SetTitle
	}

	rc, err := renderer.NewContext(api, log)
	if err != nil {
		win.Close()
		log.Fatalf("Renderer: %v", err)
	}
	app, err := engine.New(cfg, win, rc, log)
	if err != nil {
		win.Close()
		log.Fatalf("Application: %v", err)
	}
	// The GPU context belongs to this goroutine, so an interrupt only asks the
	// loop to stop and waits for Serve to finish tearing down.
	done := make(chan struct{})
	closer.Bind(func() {
		app.Close()
		<-done
	})

	if title != nil {
		app.DebugUI().SetSink(func(panels []debugui.Panel) {
			title(windowTitle(cfg.Window.Title, panels))
		})
	}

	app.PushLayer(sandbox.New(rc, app.Input(), app.DebugUI(), sandbox.Options{
		AssetsDir:   cfg.App.AssetsDir,
		AspectRatio: float32(win.Width()) / float32(win.Height()),
		Camera: graphics.CameraControllerOptions{
			MinZoom:             cfg.Camera.MinZoom,
			MaxZoom:             cfg.Camera.MaxZoom,
			ZoomSpeed:           cfg.Camera.ZoomSpeed,
			EnableRotation:      cfg.Camera.EnableRotation,
			AxisAlignedMovement: cfg.Camera.AxisAlignedMovement,
		},
	}, logging.Client()))

	log.WithFields(logrus.Fields{
		"backend": api,
		"width":   win.Width(),
		"height":  win.Height(),
	}).Info("Fracture started")
	if err := app.Serve(); err != nil {
		log.Warnf("Shutdown: %v", err)
	}
	log.Info("Fracture stopped")
	close(done)
}

// windowTitle appends the first line of each panel to the base title.
func windowTitle(base string, panels []debugui.Panel) string {
	parts := []string{base}
	for _, p := range panels {
		if len(p.Lines) > 0 {
			parts = append(parts, p.Lines[0])
		}
	}
	return strings.Join(parts, " | ")
}
