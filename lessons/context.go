package lessons

import (
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/Carmen-Shannon/oxy-lessons/engine/camera"
	"github.com/Carmen-Shannon/oxy-lessons/engine/debugui"
	"github.com/Carmen-Shannon/oxy-lessons/engine/scene"
	"github.com/Carmen-Shannon/oxy-lessons/engine/texture"
	"github.com/muesli/termenv"
)

// Context is everything a lesson builds on. It carries no GPU state, so lessons can be set up in tests.
// Setup must assign Camera; Controls is optional.
type Context struct {
	Scene    scene.Scene
	Camera   camera.Camera
	Controls camera.OrbitControls

	// Width and Height are the initial viewport size in pixels.
	Width  int
	Height int
	// StartMode is the exercise mode lessons with modes select after setup.
	StartMode int

	mu       *sync.Mutex
	assets   fs.FS
	dispatch func(fn func())
	out      *termenv.Output
	profile  termenv.Profile
	setTitle func(title string)
	title    string
	loaders  []interface{ Close() }
}

// NewContext creates a lesson context with an empty scene.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Context: the context
func NewContext(options ...ContextBuilderOption) *Context {
	c := &Context{
		Scene:   scene.NewScene(),
		Width:   800,
		Height:  600,
		mu:      &sync.Mutex{},
		assets:  os.DirFS("static"),
		profile: termenv.Ascii,
	}
	for _, opt := range options {
		opt(c)
	}
	if c.out == nil {
		c.out = termenv.NewOutput(os.Stdout, termenv.WithProfile(c.profile))
	}
	return c
}

// Aspect returns the viewport aspect ratio.
//
// Returns:
//   - float32: width divided by height, 1 for an empty viewport
func (c *Context) Aspect() float32 {
	if c.Width <= 0 || c.Height <= 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// NewTextureLoader creates a loader reading from the asset root. The context closes it in Close.
//
// Parameters:
//   - manager: receives the lifecycle of every load, may be nil
//
// Returns:
//   - texture.Loader: the loader
func (c *Context) NewTextureLoader(manager texture.LoadingManager) texture.Loader {
	l := texture.NewLoader(c.loaderOptions(manager)...)
	c.track(l)
	return l
}

// NewCubeLoader creates a cube texture loader reading from the asset root. The context closes it in Close.
//
// Parameters:
//   - manager: receives the lifecycle of every face, may be nil
//
// Returns:
//   - texture.CubeLoader: the loader
func (c *Context) NewCubeLoader(manager texture.LoadingManager) texture.CubeLoader {
	l := texture.NewCubeLoader(c.loaderOptions(manager)...)
	c.track(l)
	return l
}

// NewGUI creates a debug GUI printing to the context's output.
//
// Parameters:
//   - title: the GUI title shown in front of every value
//
// Returns:
//   - debugui.GUI: the GUI
func (c *Context) NewGUI(title string) debugui.GUI {
	return debugui.New(debugui.WithTitle(title), debugui.WithOutput(c.out, c.profile))
}

// AnnounceMode prints the active exercise mode and shows it in the window title.
//
// Parameters:
//   - index: the mode index
//   - total: the number of modes
//   - name: the mode name
func (c *Context) AnnounceMode(index, total int, name string) {
	position := fmt.Sprintf("[%d/%d]", index+1, total)
	styled := c.out.String(name).Bold().Foreground(c.out.Color("#ffaf00"))
	fmt.Fprintf(c.out, "%s %s\n", position, styled)

	if c.setTitle != nil {
		c.setTitle(fmt.Sprintf("%s %s %s", c.title, position, name))
	}
}

// Close stops every loader the context created.
func (c *Context) Close() {
	c.mu.Lock()
	loaders := c.loaders
	c.loaders = nil
	c.mu.Unlock()

	for _, l := range loaders {
		l.Close()
	}
}

func (c *Context) loaderOptions(manager texture.LoadingManager) []texture.LoaderBuilderOption {
	opts := []texture.LoaderBuilderOption{texture.WithFS(c.assets)}
	if manager != nil {
		opts = append(opts, texture.WithManager(manager))
	}
	if c.dispatch != nil {
		opts = append(opts, texture.WithDispatcher(c.dispatch))
	}
	return opts
}

func (c *Context) track(l interface{ Close() }) {
	c.mu.Lock()
	c.loaders = append(c.loaders, l)
	c.mu.Unlock()
}
