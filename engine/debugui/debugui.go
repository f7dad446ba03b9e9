// Package debugui is a keyboard driven tweak panel for float parameters, printed to the terminal.
package debugui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/chewxy/math32"
	"github.com/muesli/termenv"
)

// gui is the implementation of the GUI interface.
type gui struct {
	mu *sync.Mutex

	title       string
	out         *termenv.Output
	controllers []*Controller
	selected    int
	shift       bool
	destroyed   bool
}

// GUI is a panel of float controllers driven by keys: [ and ] select the previous or next controller,
// - and = decrease or increase it by its step, ten steps with shift held.
type GUI interface {
	// Add binds value to a new controller with no bounds and the default step.
	//
	// Parameters:
	//   - label: the name printed with every change
	//   - value: the variable the controller reads and writes
	//
	// Returns:
	//   - *Controller: the controller, for chaining Min, Max and Step
	Add(label string, value *float32) *Controller

	// Controllers returns the attached controllers in the order they were added.
	//
	// Returns:
	//   - []*Controller: a copy of the controller list
	Controllers() []*Controller

	// Selected returns the index of the controller the keyboard acts on, or -1 when there is none.
	//
	// Returns:
	//   - int: the selected index
	Selected() int

	// HandleKeyDown applies the key to the panel.
	//
	// Parameters:
	//   - key: a common.Key* code
	//
	// Returns:
	//   - bool: true if the panel consumed the key
	HandleKeyDown(key int) bool

	// HandleKeyUp tracks modifier release.
	//
	// Parameters:
	//   - key: a common.Key* code
	HandleKeyUp(key int)

	// Destroy detaches every controller. Keys are ignored afterwards.
	Destroy()
}

var _ GUI = &gui{}

// New creates an empty GUI writing to stdout.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - GUI: the panel
func New(options ...GUIBuilderOption) GUI {
	g := &gui{
		mu:       &sync.Mutex{},
		title:    "gui",
		selected: -1,
	}
	for _, opt := range options {
		opt(g)
	}
	if g.out == nil {
		g.out = termenv.NewOutput(os.Stdout)
	}
	return g
}

func (g *gui) Add(label string, value *float32) *Controller {
	c := &Controller{
		gui:   g,
		label: label,
		value: value,
		min:   math32.Inf(-1),
		max:   math32.Inf(1),
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.destroyed {
		return c
	}
	g.controllers = append(g.controllers, c)
	if g.selected < 0 {
		g.selected = 0
	}
	return c
}

func (g *gui) Controllers() []*Controller {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*Controller(nil), g.controllers...)
}

func (g *gui) Selected() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selected
}

func (g *gui) HandleKeyDown(key int) bool {
	if key == common.KeyLeftShift || key == common.KeyRightShift {
		g.mu.Lock()
		g.shift = true
		g.mu.Unlock()
		return false
	}

	g.mu.Lock()
	if g.destroyed || len(g.controllers) == 0 {
		g.mu.Unlock()
		return false
	}
	steps := float32(1)
	if g.shift {
		steps = 10
	}
	n := len(g.controllers)

	switch key {
	case common.KeyLeftBracket, common.KeyRightBracket:
		if key == common.KeyLeftBracket {
			g.selected = (g.selected - 1 + n) % n
		} else {
			g.selected = (g.selected + 1) % n
		}
		c := g.controllers[g.selected]
		v := *c.value
		g.mu.Unlock()
		g.announce(c, v)
		return true
	case common.KeyMinus:
		c := g.controllers[g.selected]
		g.mu.Unlock()
		c.nudge(-steps)
		return true
	case common.KeyEqual:
		c := g.controllers[g.selected]
		g.mu.Unlock()
		c.nudge(steps)
		return true
	}
	g.mu.Unlock()
	return false
}

func (g *gui) HandleKeyUp(key int) {
	if key == common.KeyLeftShift || key == common.KeyRightShift {
		g.mu.Lock()
		g.shift = false
		g.mu.Unlock()
	}
}

func (g *gui) Destroy() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.controllers = nil
	g.selected = -1
	g.destroyed = true
}

// announce prints the controller's current value as "title › label = value".
func (g *gui) announce(c *Controller, v float32) {
	g.mu.Lock()
	decimals := precision(c.stepLocked())
	g.mu.Unlock()

	label := g.out.String(c.label).Bold()
	value := g.out.String(formatValue(v, decimals)).Foreground(g.out.Color("#5fd7ff"))
	fmt.Fprintf(g.out, "%s › %s = %s\n", g.title, label, value)
}

// formatValue prints v with a fixed number of decimals.
func formatValue(v float32, decimals int) string {
	return strconv.FormatFloat(float64(v), 'f', decimals, 32)
}

// precision returns the number of decimals a step is written with, e.g. 2 for 0.01.
func precision(step float32) int {
	s := strconv.FormatFloat(float64(step), 'f', -1, 32)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// GUIBuilderOption is a functional option used to configure a GUI during construction.
type GUIBuilderOption func(*gui)

// WithTitle sets the prefix printed before every change.
//
// Parameters:
//   - title: the panel title
//
// Returns:
//   - GUIBuilderOption: a function that sets the title
func WithTitle(title string) GUIBuilderOption {
	return func(g *gui) {
		g.title = title
	}
}

// WithOutput directs announcements to w using the given color profile.
//
// Parameters:
//   - w: the destination
//   - profile: the termenv color profile, termenv.Ascii for plain text
//
// Returns:
//   - GUIBuilderOption: a function that sets the output
func WithOutput(w io.Writer, profile termenv.Profile) GUIBuilderOption {
	return func(g *gui) {
		g.out = termenv.NewOutput(w, termenv.WithProfile(profile))
	}
}
