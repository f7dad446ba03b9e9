package debugui

import (
	"github.com/chewxy/math32"
)

// DefaultStep is the keyboard increment of a controller that has no explicit step.
const DefaultStep = 0.01

// Controller binds one float32 to the GUI. Its configuration methods return the controller so they chain
// the way dat.GUI controllers do: gui.Add("metalness", &m.Metalness).Min(0).Max(1).Step(0.0001).
type Controller struct {
	gui *gui

	label string
	value *float32

	min, max float32
	step     float32
	onChange func(v float32)
}

// Min sets the lower bound and clamps the current value to it.
func (c *Controller) Min(v float32) *Controller {
	c.gui.mu.Lock()
	defer c.gui.mu.Unlock()
	c.min = v
	*c.value = c.constrain(*c.value)
	return c
}

// Max sets the upper bound and clamps the current value to it.
func (c *Controller) Max(v float32) *Controller {
	c.gui.mu.Lock()
	defer c.gui.mu.Unlock()
	c.max = v
	*c.value = c.constrain(*c.value)
	return c
}

// Step sets the increment used by the keyboard and the grid values snap to. Non-positive steps are ignored.
func (c *Controller) Step(v float32) *Controller {
	c.gui.mu.Lock()
	defer c.gui.mu.Unlock()
	if v > 0 {
		c.step = v
	}
	return c
}

// OnChange registers fn to run after every change made through the GUI.
func (c *Controller) OnChange(fn func(v float32)) *Controller {
	c.gui.mu.Lock()
	defer c.gui.mu.Unlock()
	c.onChange = fn
	return c
}

// Label returns the controller's label.
func (c *Controller) Label() string {
	return c.label
}

// Value returns the bound value.
func (c *Controller) Value() float32 {
	c.gui.mu.Lock()
	defer c.gui.mu.Unlock()
	return *c.value
}

// SetValue clamps and snaps v, stores it in the bound variable and announces the change.
func (c *Controller) SetValue(v float32) {
	c.gui.mu.Lock()
	v = c.constrain(v)
	*c.value = v
	fn := c.onChange
	c.gui.mu.Unlock()

	c.gui.announce(c, v)
	if fn != nil {
		fn(v)
	}
}

// nudge moves the value by steps increments.
func (c *Controller) nudge(steps float32) {
	c.gui.mu.Lock()
	v := *c.value + steps*c.stepLocked()
	c.gui.mu.Unlock()
	c.SetValue(v)
}

func (c *Controller) stepLocked() float32 {
	if c.step > 0 {
		return c.step
	}
	return DefaultStep
}

// constrain snaps v to the step grid anchored at min, then clamps it to [min, max].
func (c *Controller) constrain(v float32) float32 {
	if c.step > 0 {
		origin := c.min
		if math32.IsInf(origin, 0) {
			origin = 0
		}
		inv := 1 / c.step
		v = origin + math32.Round((v-origin)*inv)/inv
	}
	return math32.Max(c.min, math32.Min(c.max, v))
}
