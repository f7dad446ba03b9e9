package geometry

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(arr []float32, i int) mgl32.Vec3 {
	return mgl32.Vec3{arr[i*3], arr[i*3+1], arr[i*3+2]}
}

// assertOutwardWinding checks that every non-degenerate triangle is counter-clockwise
// when seen from the side its vertex normals point to.
func assertOutwardWinding(t *testing.T, g Geometry) {
	t.Helper()
	idx := g.Indices()
	require.Zero(t, len(idx)%3)
	for i := 0; i < len(idx); i += 3 {
		a, b, c := vec(g.Positions(), int(idx[i])), vec(g.Positions(), int(idx[i+1])), vec(g.Positions(), int(idx[i+2]))
		face := b.Sub(a).Cross(c.Sub(a))
		if face.Len() < 1e-9 {
			continue
		}
		n := vec(g.Normals(), int(idx[i])).Add(vec(g.Normals(), int(idx[i+1]))).Add(vec(g.Normals(), int(idx[i+2])))
		if !assert.Greater(t, face.Dot(n), float32(0), "%s triangle %d is wound inward", g.Kind(), i/3) {
			return
		}
	}
}

func TestBoxLayout(t *testing.T) {
	g := NewBox(1, 2, 3)

	assert.Equal(t, "box", g.Kind())
	assert.Equal(t, 24, g.VertexCount())
	assert.Equal(t, 36, g.IndexCount())
	assert.Len(t, g.UVs(), 48)

	// first face is +x
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, vec(g.Normals(), 0))
	assert.Equal(t, float32(0.5), vec(g.Positions(), 0)[0])
	// last face is -z
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, vec(g.Normals(), 23))
	assert.Equal(t, float32(-1.5), vec(g.Positions(), 23)[2])

	assertOutwardWinding(t, g)
}

func TestBoxSegments(t *testing.T) {
	g := NewBoxSegments(1, 1, 1, 2, 3, 4)
	// faces: x pair uses depth*height, y pair width*depth, z pair width*height
	verts := 2*(5*4) + 2*(3*5) + 2*(3*4)
	tris := 2*(4*3) + 2*(2*4) + 2*(2*3)
	assert.Equal(t, verts, g.VertexCount())
	assert.Equal(t, tris*6, g.IndexCount())
	assertOutwardWinding(t, g)
}

func TestSphereLayout(t *testing.T) {
	g := NewSphere(0.5, 16, 16)

	assert.Equal(t, 17*17, g.VertexCount())
	assert.Equal(t, 16*15*6, g.IndexCount())
	for i := range g.VertexCount() {
		assert.InDelta(t, 0.5, vec(g.Positions(), i).Len(), 1e-5)
		assert.InDelta(t, 1, vec(g.Normals(), i).Len(), 1e-5)
	}
	// pole uvs are shifted half a segment
	assert.InDelta(t, 0.5/16, g.UVs()[0], 1e-6)
	assert.Equal(t, float32(1), g.UVs()[1])

	assertOutwardWinding(t, g)
}

func TestSphereClampsSegments(t *testing.T) {
	g := NewSphere(1, 0, 0)
	assert.Equal(t, 4*3, g.VertexCount())
}

func TestPlaneLayout(t *testing.T) {
	g := NewPlane(1, 1, 1, 1)
	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, 6, g.IndexCount())
	assert.Equal(t, mgl32.Vec3{-0.5, 0.5, 0}, vec(g.Positions(), 0))
	assert.Equal(t, []float32{0, 1}, g.UVs()[0:2])
	assertOutwardWinding(t, g)

	dense := NewPlane(1, 1, 100, 100)
	assert.Equal(t, 101*101, dense.VertexCount())
	assert.Equal(t, 100*100*6, dense.IndexCount())
}

func TestTorusLayout(t *testing.T) {
	g := NewTorus(0.3, 0.2, 16, 32)
	assert.Equal(t, 17*33, g.VertexCount())
	assert.Equal(t, 16*32*6, g.IndexCount())

	first := vec(g.Positions(), 0)
	assert.InDelta(t, 0.5, first[0], 1e-6)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, vec(g.Normals(), 0))
	assertOutwardWinding(t, g)
}

func TestIDsAreUnique(t *testing.T) {
	a, b := NewBox(1, 1, 1), NewBox(1, 1, 1)
	assert.NotZero(t, a.ID())
	assert.Greater(t, b.ID(), a.ID())
}

func TestSetUV2FromUV(t *testing.T) {
	g := NewPlane(1, 1, 1, 1)
	assert.False(t, g.HasUV2())
	assert.Nil(t, g.UV2s())
	v := g.Version()

	g.SetUV2FromUV()

	assert.True(t, g.HasUV2())
	assert.Equal(t, g.UVs(), g.UV2s())
	assert.Greater(t, g.Version(), v)

	g.UV2s()[0] = 42
	assert.NotEqual(t, float32(42), g.UVs()[0], "uv2 is a copy")
}

func TestWireframeIndices(t *testing.T) {
	plane := NewPlane(1, 1, 1, 1)
	lines := plane.WireframeIndices()
	// four sides plus the diagonal
	assert.Len(t, lines, 10)

	box := NewBox(1, 1, 1)
	assert.Len(t, box.WireframeIndices(), 6*5*2)

	seen := map[[2]uint32]bool{}
	for i := 0; i < len(lines); i += 2 {
		key := [2]uint32{min(lines[i], lines[i+1]), max(lines[i], lines[i+1])}
		assert.False(t, seen[key], "duplicate edge %v", key)
		seen[key] = true
	}
}

func TestInterleave(t *testing.T) {
	g := NewPlane(2, 2, 1, 1)
	buf := g.Interleave()
	require.Len(t, buf, 4*40)

	read := func(vertex, component int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[vertex*40+component*4:]))
	}
	assert.Equal(t, float32(-1), read(0, 0))
	assert.Equal(t, float32(1), read(0, 1))
	assert.Equal(t, float32(1), read(0, 5))
	assert.Equal(t, float32(1), read(0, 7))
	assert.Equal(t, float32(0), read(0, 9), "uv2 is zero until assigned")

	g.SetUV2FromUV()
	buf = g.Interleave()
	assert.Equal(t, read(3, 6), read(3, 8))
	assert.Equal(t, read(3, 7), read(3, 9))
}

func TestIndexData(t *testing.T) {
	g := NewPlane(1, 1, 1, 1)
	data := g.IndexData()
	require.Len(t, data, 24)
	for i, idx := range g.Indices() {
		assert.Equal(t, idx, binary.LittleEndian.Uint32(data[i*4:]))
	}
}

func TestBoundingSphere(t *testing.T) {
	center, radius := NewBox(1, 1, 1).BoundingSphere()
	assert.Equal(t, mgl32.Vec3{}, center)
	assert.InDelta(t, math32.Sqrt(0.75), radius, 1e-6)

	center, radius = NewSphere(2, 32, 16).BoundingSphere()
	assert.InDelta(t, 0, center.Len(), 1e-5)
	assert.InDelta(t, 2, radius, 1e-4)
}

func TestGPUVertexMarshal(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 2, 3}, UV2: [2]float32{0.25, 0.75}}
	buf := v.Marshal()
	assert.Equal(t, 40, v.Size())
	assert.Len(t, buf, 40)
	assert.Equal(t, float32(0.75), math.Float32frombits(binary.LittleEndian.Uint32(buf[36:])))
	assert.Contains(t, GPUVertexSource, "@location(3) uv2")
}
