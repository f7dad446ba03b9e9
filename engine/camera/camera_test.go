package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec3(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

func TestPerspectiveCameraLooksAtTarget(t *testing.T) {
	c := NewPerspectiveCamera(WithPosition(0, 0, 3), WithTarget(0, 0, 0), WithFov(common.DegToRad(75)), WithAspect(800.0/600.0))

	// the target projects to the center of the screen
	clip := c.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, clip[0]/clip[3], 1e-6)
	assert.InDelta(t, 0, clip[1]/clip[3], 1e-6)
	assert.Greater(t, clip[2]/clip[3], float32(0))
	assert.Less(t, clip[2]/clip[3], float32(1))
}

func TestLookAtFollowsMovingPoint(t *testing.T) {
	c := NewPerspectiveCamera(WithPosition(0, 0, 3))
	c.LookAt(1, 0, 0)

	clip := c.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 0, clip[0]/clip[3], 1e-5)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Target(), 0)
}

func TestLookAtStraightDownStaysFinite(t *testing.T) {
	c := NewPerspectiveCamera(WithPosition(0, 5, 0))
	c.LookAt(0, 0, 0)
	for _, v := range c.ViewMatrix() {
		assert.False(t, math32.IsNaN(v), "NaN in view matrix")
	}
}

func TestSetAspectIgnoresInvalid(t *testing.T) {
	c := NewPerspectiveCamera(WithAspect(2))
	c.SetAspect(0)
	assert.Equal(t, float32(2), c.Aspect())
	c.SetAspect(1.5)
	assert.Equal(t, float32(1.5), c.Aspect())
	assert.InDelta(t, c.ProjectionMatrix()[5]/1.5, c.ProjectionMatrix()[0], 1e-6)
}

func TestGPUUniformMarshal(t *testing.T) {
	c := NewPerspectiveCamera(WithPosition(1, 2, 3), WithClipPlanes(0.1, 100))
	u := c.GPUUniform()
	buf := u.Marshal()

	assert.Len(t, buf, 160)
	assert.Equal(t, 160, u.Size())
	assert.Equal(t, float32(0.1), u.Near)
	assert.Equal(t, float32(100), u.Far)
	assertVec3(t, mgl32.Vec3{1, 2, 3}, u.Position, 0)
}

func TestFrustumContainsTarget(t *testing.T) {
	c := NewPerspectiveCamera(WithPosition(1, 1, 2), WithClipPlanes(0.1, 100))
	c.LookAt(0, 0, 0)
	assert.True(t, c.Frustum().IntersectsSphere(mgl32.Vec3{}, 0.5))
	assert.False(t, c.Frustum().IntersectsSphere(mgl32.Vec3{10, 10, 20}, 0.5))
}
