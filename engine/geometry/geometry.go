package geometry

import (
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var nextID atomic.Uint64

// geometry is the implementation of the Geometry interface.
type geometry struct {
	mu      *sync.Mutex
	id      uint64
	version uint64
	kind    string

	positions []float32
	normals   []float32
	uvs       []float32
	uv2s      []float32
	indices   []uint32

	boundsCenter mgl32.Vec3
	boundsRadius float32
}

// Geometry holds indexed triangle data in the same layout three.js buffer geometries use:
// flat position, normal and uv arrays plus a triangle index list.
type Geometry interface {
	// ID returns a process-unique identifier for this geometry.
	//
	// Returns:
	//   - uint64: the identifier, never zero
	ID() uint64

	// Version returns a counter bumped whenever the vertex data changes.
	// Renderers combine it with ID to invalidate cached GPU buffers.
	//
	// Returns:
	//   - uint64: the current version
	Version() uint64

	// Kind returns the primitive name, e.g. "box" or "sphere".
	//
	// Returns:
	//   - string: the primitive name
	Kind() string

	// Positions returns the flat xyz position array. The slice must not be modified.
	//
	// Returns:
	//   - []float32: positions, three components per vertex
	Positions() []float32

	// Normals returns the flat xyz normal array. The slice must not be modified.
	//
	// Returns:
	//   - []float32: normals, three components per vertex
	Normals() []float32

	// UVs returns the flat uv array. The slice must not be modified.
	//
	// Returns:
	//   - []float32: uvs, two components per vertex
	UVs() []float32

	// UV2s returns the second uv set, or nil when none has been assigned.
	//
	// Returns:
	//   - []float32: uv2s, two components per vertex
	UV2s() []float32

	// Indices returns the triangle index list. The slice must not be modified.
	//
	// Returns:
	//   - []uint32: three indices per triangle
	Indices() []uint32

	// VertexCount returns the number of vertices.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// IndexCount returns the number of triangle indices.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// SetUV2FromUV copies the primary uv set into the second uv set, which ambient occlusion maps read.
	SetUV2FromUV()

	// HasUV2 reports whether a second uv set has been assigned.
	//
	// Returns:
	//   - bool: true if UV2s is populated
	HasUV2() bool

	// WireframeIndices returns every unique triangle edge as a line-list index pair.
	//
	// Returns:
	//   - []uint32: two indices per edge
	WireframeIndices() []uint32

	// Interleave packs the vertex attributes into the GPUVertex layout.
	//
	// Returns:
	//   - []byte: VertexCount() * 40 bytes
	Interleave() []byte

	// IndexData packs the triangle indices as little-endian uint32 values.
	//
	// Returns:
	//   - []byte: IndexCount() * 4 bytes
	IndexData() []byte

	// BoundingSphere returns a sphere enclosing every vertex in model space.
	//
	// Returns:
	//   - mgl32.Vec3: the sphere center
	//   - float32: the sphere radius
	BoundingSphere() (mgl32.Vec3, float32)
}

var _ Geometry = &geometry{}

func newGeometry(kind string, positions, normals, uvs []float32, indices []uint32) *geometry {
	g := &geometry{
		mu:        &sync.Mutex{},
		id:        nextID.Add(1),
		kind:      kind,
		positions: positions,
		normals:   normals,
		uvs:       uvs,
		indices:   indices,
	}
	g.computeBounds()
	return g
}

func (g *geometry) ID() uint64 {
	return g.id
}

func (g *geometry) Version() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.version
}

func (g *geometry) Kind() string {
	return g.kind
}

func (g *geometry) Positions() []float32 {
	return g.positions
}

func (g *geometry) Normals() []float32 {
	return g.normals
}

func (g *geometry) UVs() []float32 {
	return g.uvs
}

func (g *geometry) UV2s() []float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.uv2s
}

func (g *geometry) Indices() []uint32 {
	return g.indices
}

func (g *geometry) VertexCount() int {
	return len(g.positions) / 3
}

func (g *geometry) IndexCount() int {
	return len(g.indices)
}

func (g *geometry) SetUV2FromUV() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.uv2s = append([]float32(nil), g.uvs...)
	g.version++
}

func (g *geometry) HasUV2() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.uv2s) > 0
}

func (g *geometry) WireframeIndices() []uint32 {
	seen := make(map[[2]uint32]struct{}, len(g.indices))
	lines := make([]uint32, 0, len(g.indices)*2)
	for t := 0; t+2 < len(g.indices); t += 3 {
		tri := [3]uint32{g.indices[t], g.indices[t+1], g.indices[t+2]}
		for e := range 3 {
			a, b := tri[e], tri[(e+1)%3]
			key := [2]uint32{min(a, b), max(a, b)}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			lines = append(lines, a, b)
		}
	}
	return lines
}

func (g *geometry) Interleave() []byte {
	uv2s := g.UV2s()
	count := g.VertexCount()
	stride := (&GPUVertex{}).Size()
	buf := make([]byte, count*stride)
	for i := range count {
		v := GPUVertex{
			Position: [3]float32{g.positions[i*3], g.positions[i*3+1], g.positions[i*3+2]},
			Normal:   [3]float32{g.normals[i*3], g.normals[i*3+1], g.normals[i*3+2]},
			UV:       [2]float32{g.uvs[i*2], g.uvs[i*2+1]},
		}
		if len(uv2s) >= (i+1)*2 {
			v.UV2 = [2]float32{uv2s[i*2], uv2s[i*2+1]}
		}
		v.marshalInto(buf[i*stride:])
	}
	return buf
}

func (g *geometry) IndexData() []byte {
	buf := make([]byte, len(g.indices)*4)
	for i, idx := range g.indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

func (g *geometry) BoundingSphere() (mgl32.Vec3, float32) {
	return g.boundsCenter, g.boundsRadius
}

// computeBounds centers the sphere on the axis-aligned bounding box, as three.js does.
func (g *geometry) computeBounds() {
	if len(g.positions) < 3 {
		return
	}
	lo := mgl32.Vec3{g.positions[0], g.positions[1], g.positions[2]}
	hi := lo
	for i := 3; i+2 < len(g.positions); i += 3 {
		for c := range 3 {
			lo[c] = min(lo[c], g.positions[i+c])
			hi[c] = max(hi[c], g.positions[i+c])
		}
	}
	center := lo.Add(hi).Mul(0.5)
	var radiusSq float32
	for i := 0; i+2 < len(g.positions); i += 3 {
		d := mgl32.Vec3{g.positions[i], g.positions[i+1], g.positions[i+2]}.Sub(center)
		radiusSq = max(radiusSq, d.Dot(d))
	}
	g.boundsCenter = center
	g.boundsRadius = math32.Sqrt(radiusSq)
}
