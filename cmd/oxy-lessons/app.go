package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/Carmen-Shannon/oxy-lessons/config"
	"github.com/Carmen-Shannon/oxy-lessons/engine"
	"github.com/Carmen-Shannon/oxy-lessons/engine/renderer"
	"github.com/Carmen-Shannon/oxy-lessons/engine/window"
	"github.com/Carmen-Shannon/oxy-lessons/lessons"
	"github.com/muesli/termenv"
)

// app hosts one lesson: it owns the window, the renderer and the frame loop.
type app struct {
	cfg    config.Config
	lesson lessons.Lesson

	window   window.Window
	renderer renderer.Renderer
	engine   engine.Engine
	ctx      *lessons.Context
}

// newApp opens the window and the renderer described by cfg and sets up the named lesson.
//
// Parameters:
//   - cfg: the validated configuration
//   - name: the lesson to run
//
// Returns:
//   - *app: the app, ready to Run
//   - error: error if the lesson is unknown or the window, renderer or lesson setup fails
func newApp(cfg config.Config, name string) (*app, error) {
	lesson, err := lessons.Lookup(name)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, lesson: lesson}

	// ── Window + Renderer ───────────────────────────────────────────
	title := fmt.Sprintf("%s · %s", cfg.Window.Title, lesson.Name())
	a.window, err = window.NewWindow(
		window.WithTitle(title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithResizable(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open window: %w", err)
	}

	presentMode := renderer.PresentModeUncapped
	if cfg.Window.VSync {
		presentMode = renderer.PresentModeVSync
	}
	a.renderer, err = renderer.NewRenderer(a.window,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.ParseMSAA(cfg.Render.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Render.SoftwareAdapter),
	)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	// ── Engine ──────────────────────────────────────────────────────
	a.engine = engine.NewEngine(a.window,
		engine.WithProfiling(cfg.Render.Profile),
		engine.WithRenderFrameLimit(float64(cfg.Render.FrameLimit)),
		engine.WithFrameCallback(a.frame),
		engine.WithResizeCallback(a.resize),
	)

	// ── Lesson ──────────────────────────────────────────────────────
	a.ctx = lessons.NewContext(
		lessons.WithAssets(os.DirFS(cfg.Assets.Root)),
		lessons.WithDispatcher(a.engine.Post),
		lessons.WithOutput(os.Stdout, termenv.EnvColorProfile()),
		lessons.WithViewport(a.window.Width(), a.window.Height()),
		lessons.WithStartMode(cfg.Lessons.StartMode),
		lessons.WithTitleSetter(title, a.window.SetTitle),
	)
	if err := lesson.Setup(a.ctx); err != nil {
		a.release()
		return nil, fmt.Errorf("failed to set up lesson %s: %w", lesson.Name(), err)
	}
	if a.ctx.Camera == nil {
		a.release()
		return nil, fmt.Errorf("lesson %s did not create a camera", lesson.Name())
	}
	if a.ctx.Controls != nil {
		a.ctx.Controls.SetViewportSize(a.window.Width(), a.window.Height())
	}
	a.bindInput()
	return a, nil
}

// Run drives the frame loop until the window closes, then releases every resource.
//
// Returns:
//   - error: error if the frame loop panicked
func (a *app) Run() error {
	defer a.release()
	log.Printf("[Lessons] running %s", a.lesson.Name())
	return a.engine.Run()
}

func (a *app) bindInput() {
	a.window.SetKeyDownCallback(func(keyCode uint32) {
		a.lesson.HandleKeyDown(int(keyCode))
	})
	a.window.SetKeyUpCallback(func(keyCode uint32) {
		a.lesson.HandleKeyUp(int(keyCode))
	})

	controls := a.ctx.Controls
	if controls == nil {
		return
	}
	a.window.SetMouseDownCallback(func(button int, x, y float32) {
		controls.PointerDown(button, x, y)
	})
	a.window.SetMouseUpCallback(func(button int, x, y float32) {
		controls.PointerUp(button)
	})
	a.window.SetMouseMoveCallback(func(x, y float32) {
		controls.PointerMove(x, y)
	})
	a.window.SetScrollCallback(func(delta float32) {
		controls.Wheel(delta)
	})
}

func (a *app) frame(info common.FrameInfo) {
	a.lesson.Update(info)
	if a.ctx.Controls != nil {
		a.ctx.Controls.Update()
	}
	if err := a.renderer.Render(a.ctx.Scene, a.ctx.Camera); err != nil {
		log.Printf("[Lessons] render failed: %v", err)
	}
}

func (a *app) resize(width, height int) {
	a.ctx.Width, a.ctx.Height = width, height
	a.ctx.Camera.SetAspect(a.ctx.Aspect())
	a.renderer.SetSize(width, height)
	if a.ctx.Controls != nil {
		a.ctx.Controls.SetViewportSize(width, height)
	}
}

// release frees GPU resources before the window they render to is destroyed.
func (a *app) release() {
	if a.ctx != nil {
		a.ctx.Close()
	}
	a.renderer.Release()
	a.engine.Quit()
}
