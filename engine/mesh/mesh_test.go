package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-lessons/engine/geometry"
	"github.com/Carmen-Shannon/oxy-lessons/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeshDefaults(t *testing.T) {
	g := geometry.NewBox(1, 1, 1)
	mat := material.NewMeshBasicMaterial()
	m := NewMesh(g, mat)

	assert.Same(t, mat, m.Material())
	assert.Equal(t, g.ID(), m.Geometry().ID())
	assert.True(t, m.Visible())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, m.Scale())
	assert.True(t, m.ModelMatrix().ApproxEqual(mgl32.Ident4()))
	assert.NotEqual(t, m.ID(), NewMesh(g, mat).ID())
}

func TestOptions(t *testing.T) {
	m := NewMesh(nil, nil,
		WithName("cube"),
		WithPosition(1, 2, 3),
		WithRotation(0.1, 0.2, 0.3),
		WithScale(2, 2, 2),
		WithVisible(false),
	)
	assert.Equal(t, "cube", m.Name())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, m.Position())
	assert.Equal(t, mgl32.Vec3{0.1, 0.2, 0.3}, m.Rotation())
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, m.Scale())
	assert.False(t, m.Visible())
}

func TestModelMatrixAppliesScaleRotateTranslate(t *testing.T) {
	m := NewMesh(nil, nil)
	m.SetScale(2, 2, 2)
	m.SetRotation(0, math.Pi/2, 0)
	m.SetPosition(10, 0, 0)

	// +x scaled to 2, rotated a quarter turn about y to -z, then moved by +10 x.
	p := m.ModelMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.InDelta(t, 10, p.X(), 1e-5)
	assert.InDelta(t, 0, p.Y(), 1e-5)
	assert.InDelta(t, -2, p.Z(), 1e-5)
}

func TestEulerOrderIsXYZ(t *testing.T) {
	m := NewMesh(nil, nil, WithRotation(math.Pi/2, 0, math.Pi/2))

	// Rx * Rz: z rotation applies first to the point, then x.
	p := m.ModelMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.InDelta(t, 0, p.X(), 1e-5)
	assert.InDelta(t, 0, p.Y(), 1e-5)
	assert.InDelta(t, 1, p.Z(), 1e-5)
}

func TestGPUUniform(t *testing.T) {
	g := geometry.NewPlane(1, 1, 1, 1)
	m := NewMesh(g, material.NewMeshStandardMaterial(), WithScale(2, 4, 1))

	u := m.GPUUniform()
	assert.Equal(t, uint32(0), u.HasUV2)
	// inverse transpose of a pure scale is the reciprocal scale
	assert.InDelta(t, 0.5, u.Normal.At(0, 0), 1e-6)
	assert.InDelta(t, 0.25, u.Normal.At(1, 1), 1e-6)

	assert.True(t, m.NormalMatrix().ApproxEqual(u.Normal))

	g.SetUV2FromUV()
	u = m.GPUUniform()
	assert.Equal(t, uint32(1), u.HasUV2)

	buf := u.Marshal()
	require.Len(t, buf, 144)
	assert.Equal(t, 144, u.Size())
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[64:])))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[128:]))
	assert.Contains(t, GPUObjectUniformSource, "has_uv2: u32")
}
