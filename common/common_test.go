package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 4))
	assert.Equal(t, "", Coalesce("", ""))
	assert.Equal(t, "a", Coalesce("a", "b"))
}

func TestPerspectiveMapsNearFarToUnitDepth(t *testing.T) {
	p := Perspective(DegToRad(75), 4.0/3.0, 0.1, 100)

	ndcDepth := func(z float32) float32 {
		v := p.Mul4x1(mgl32.Vec4{0, 0, z, 1})
		return v[2] / v[3]
	}
	assert.InDelta(t, 0, ndcDepth(-0.1), 1e-5)
	assert.InDelta(t, 1, ndcDepth(-100), 1e-5)
}

func TestUVTransformIdentity(t *testing.T) {
	m := UVTransform(mgl32.Vec2{}, mgl32.Vec2{1, 1}, 0, mgl32.Vec2{})
	assert.True(t, m.ApproxEqual(mgl32.Ident3()))
}

func TestUVTransformRepeatOffset(t *testing.T) {
	m := UVTransform(mgl32.Vec2{0.5, 0.5}, mgl32.Vec2{2, 3}, 0, mgl32.Vec2{})
	uv := m.Mul3x1(mgl32.Vec3{1, 1, 1})
	assert.InDelta(t, 2.5, uv[0], 1e-6)
	assert.InDelta(t, 3.5, uv[1], 1e-6)
}

func TestUVTransformRotationKeepsCenterFixed(t *testing.T) {
	m := UVTransform(mgl32.Vec2{}, mgl32.Vec2{1, 1}, math32.Pi/4, mgl32.Vec2{0.5, 0.5})
	uv := m.Mul3x1(mgl32.Vec3{0.5, 0.5, 1})
	assert.InDelta(t, 0.5, uv[0], 1e-6)
	assert.InDelta(t, 0.5, uv[1], 1e-6)

	corner := m.Mul3x1(mgl32.Vec3{1, 0.5, 1})
	assert.InDelta(t, 0.5+0.5*math32.Cos(math32.Pi/4), corner[0], 1e-5)
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 1}, c)

	c, err = ParseHexColor("0f0")
	require.NoError(t, err)
	assert.Equal(t, Color{G: 1}, c)

	_, err = ParseHexColor("#zzz000")
	assert.Error(t, err)
	_, err = ParseHexColor("#12345")
	assert.Error(t, err)
}

func TestColorFromHex(t *testing.T) {
	c := ColorFromHex(0x1188ff)
	assert.InDelta(t, float32(0x11)/255, c.R, 1e-6)
	assert.InDelta(t, float32(0x88)/255, c.G, 1e-6)
	assert.InDelta(t, 1, c.B, 1e-6)
}

func TestFrustumIntersectsSphere(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	f := ExtractFrustum(Perspective(DegToRad(75), 1, 0.1, 100).Mul4(view))

	assert.True(t, f.IntersectsSphere(mgl32.Vec3{}, 1))
	assert.False(t, f.IntersectsSphere(mgl32.Vec3{0, 0, 10}, 1), "behind the camera")
	assert.False(t, f.IntersectsSphere(mgl32.Vec3{0, 0, -200}, 1), "past the far plane")
	assert.False(t, f.IntersectsSphere(mgl32.Vec3{50, 0, 0}, 1), "off to the side")
}
