package debugui

import (
	"bytes"
	"testing"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGUI() (GUI, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return New(WithTitle("materials"), WithOutput(buf, termenv.Ascii)), buf
}

func TestAddAndSelect(t *testing.T) {
	g, _ := newTestGUI()
	assert.Equal(t, -1, g.Selected())

	var a, b float32
	g.Add("metalness", &a)
	g.Add("roughness", &b)
	assert.Equal(t, 0, g.Selected())
	require.Len(t, g.Controllers(), 2)

	assert.True(t, g.HandleKeyDown(common.KeyRightBracket))
	assert.Equal(t, 1, g.Selected())
	assert.True(t, g.HandleKeyDown(common.KeyRightBracket))
	assert.Equal(t, 0, g.Selected())
	assert.True(t, g.HandleKeyDown(common.KeyLeftBracket))
	assert.Equal(t, 1, g.Selected())
}

func TestIncrementClampsAndSnaps(t *testing.T) {
	g, buf := newTestGUI()
	v := float32(0.95)
	g.Add("metalness", &v).Min(0).Max(1).Step(0.1)

	assert.True(t, g.HandleKeyDown(common.KeyEqual))
	assert.InDelta(t, 1.0, v, 1e-6)
	assert.True(t, g.HandleKeyDown(common.KeyEqual))
	assert.InDelta(t, 1.0, v, 1e-6)

	assert.True(t, g.HandleKeyDown(common.KeyMinus))
	assert.InDelta(t, 0.9, v, 1e-6)
	assert.Contains(t, buf.String(), "materials › metalness = 0.9")
}

func TestShiftMultipliesStep(t *testing.T) {
	g, _ := newTestGUI()
	v := float32(0)
	g.Add("aoMapIntensity", &v).Min(0).Max(10).Step(0.1)

	g.HandleKeyDown(common.KeyLeftShift)
	g.HandleKeyDown(common.KeyEqual)
	assert.InDelta(t, 1.0, v, 1e-5)

	g.HandleKeyUp(common.KeyLeftShift)
	g.HandleKeyDown(common.KeyEqual)
	assert.InDelta(t, 1.1, v, 1e-5)
}

func TestBoundsClampExistingValue(t *testing.T) {
	g, _ := newTestGUI()
	v := float32(5)
	c := g.Add("displacementScale", &v).Min(0).Max(1)
	assert.Equal(t, float32(1), v)
	assert.Equal(t, float32(1), c.Value())
	assert.Equal(t, "displacementScale", c.Label())
}

func TestSetValueRunsOnChange(t *testing.T) {
	g, _ := newTestGUI()
	v := float32(0)
	var seen []float32
	c := g.Add("x", &v).Min(-1).Max(1).Step(0.5).OnChange(func(nv float32) { seen = append(seen, nv) })

	c.SetValue(0.7)
	c.SetValue(-3)
	assert.Equal(t, []float32{0.5, -1}, seen)
	assert.Equal(t, float32(-1), v)
}

func TestUnboundedDefaultStep(t *testing.T) {
	g, _ := newTestGUI()
	v := float32(2)
	g.Add("free", &v)
	g.HandleKeyDown(common.KeyMinus)
	assert.InDelta(t, 2-DefaultStep, v, 1e-6)
}

func TestDestroyDetaches(t *testing.T) {
	g, _ := newTestGUI()
	v := float32(0.5)
	g.Add("metalness", &v).Step(0.1)
	g.Destroy()

	assert.Empty(t, g.Controllers())
	assert.Equal(t, -1, g.Selected())
	assert.False(t, g.HandleKeyDown(common.KeyEqual))
	assert.Equal(t, float32(0.5), v)

	g.Add("late", &v)
	assert.Empty(t, g.Controllers())
}

func TestUnboundKeysIgnored(t *testing.T) {
	g, _ := newTestGUI()
	v := float32(0)
	g.Add("x", &v)
	assert.False(t, g.HandleKeyDown(common.KeyW))
	assert.False(t, g.HandleKeyDown(common.KeyLeftShift))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "0.3000", formatValue(0.3, precision(0.0001)))
	assert.Equal(t, "1", formatValue(1, precision(1)))
	assert.Equal(t, "-0.25", formatValue(-0.25, precision(DefaultStep)))
}

func TestPrecision(t *testing.T) {
	assert.Equal(t, 4, precision(0.0001))
	assert.Equal(t, 1, precision(0.1))
	assert.Equal(t, 0, precision(5))
}
