package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/Carmen-Shannon/oxy-lessons/engine/clock"
	"github.com/Carmen-Shannon/oxy-lessons/engine/profiler"
	"github.com/Carmen-Shannon/oxy-lessons/engine/window"
)

// FrameInfo describes the frame being produced.
type FrameInfo = common.FrameInfo

// engine implements the Engine interface.
// Everything runs on the goroutine that called Run: window events, posted tasks, the frame callback.
type engine struct {
	mu      *sync.Mutex
	pending []func()

	quitOnce sync.Once

	window window.Window
	clock  *clock.Clock
	frame  uint64

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback  func(info FrameInfo)
	resizeCallback func(width, height int)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrameEnd     time.Time
}

// Engine drives a single cooperative frame loop on top of a Window.
// Each frame drains the tasks queued with Post, then calls the frame callback.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameCallback registers the function called once per frame.
	// Use this for animation, controls updates and rendering.
	//
	// Parameters:
	//   - callback: function receiving the frame timing
	SetFrameCallback(callback func(info FrameInfo))

	// SetResizeCallback registers the function called when the window framebuffer changes size.
	//
	// Parameters:
	//   - callback: function receiving the new size in pixels
	SetResizeCallback(callback func(width, height int))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Post queues fn to run on the frame loop before the next frame callback.
	// Safe to call from any goroutine; tasks run in submission order.
	//
	// Parameters:
	//   - fn: the task to run
	Post(fn func())

	// Run starts the frame loop and blocks until the window closes or Quit is called.
	//
	// Returns:
	//   - error: the recovered panic of a frame, if the loop stopped because of one
	Run() error

	// Quit closes the window, which ends Run.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine bound to a window.
//
// Parameters:
//   - w: the window whose message loop drives the engine
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(w window.Window, options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:       &sync.Mutex{},
		window:   w,
		clock:    clock.NewClock(),
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	w.SetResizeCallback(func(width, height int) {
		if width == 0 || height == 0 {
			return
		}
		if e.resizeCallback != nil {
			e.resizeCallback(width, height)
		}
	})

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(info FrameInfo)) {
	e.frameCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.resizeCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Post(fn func()) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.pending = append(e.pending, fn)
	e.mu.Unlock()
}

func (e *engine) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("frame loop recovered from panic: %v", r)
			err = fmt.Errorf("frame loop panic: %v", r)
			e.Quit()
		}
	}()

	e.clock.Start()
	e.window.SetUpdateCallback(e.tick)
	e.window.ProcessMessages()
	return nil
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if err := e.window.Close(); err != nil {
			log.Printf("failed to close window: %v", err)
		}
	})
}

// tick produces one frame: posted tasks, the frame callback, profiling and frame limiting.
func (e *engine) tick() {
	e.drain()

	delta := e.clock.Delta()
	info := FrameInfo{
		Elapsed: e.clock.ElapsedTime(),
		Delta:   delta,
		Frame:   e.frame,
	}
	e.frame++

	if e.frameCallback != nil {
		e.frameCallback(info)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 && !e.lastFrameEnd.IsZero() {
		if remaining := e.renderFrameLimit - time.Since(e.lastFrameEnd); remaining > 0 {
			time.Sleep(remaining)
		}
	}
	e.lastFrameEnd = time.Now()
}

// drain runs every task posted so far. Tasks posted while draining run next frame.
func (e *engine) drain() {
	e.mu.Lock()
	tasks := e.pending
	e.pending = nil
	e.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
}
