package mesh

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-lessons/engine/geometry"
	"github.com/Carmen-Shannon/oxy-lessons/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

var nextID atomic.Uint64

type mesh struct {
	mu       *sync.Mutex
	id       uint64
	name     string
	visible  atomic.Bool
	geo      geometry.Geometry
	mat      *material.Material
	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3
}

// Mesh defines the interface for a drawable scene entity: a Geometry rendered with a Material
// under a position, Euler rotation, and scale.
type Mesh interface {
	// ID returns the mesh's unique identifier.
	//
	// Returns:
	//   - uint64: the mesh ID
	ID() uint64

	// Name returns the optional debug name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Geometry returns the vertex data drawn by this mesh.
	//
	// Returns:
	//   - geometry.Geometry: the geometry, or nil
	Geometry() geometry.Geometry

	// SetGeometry replaces the geometry.
	//
	// Parameters:
	//   - g: the new geometry
	SetGeometry(g geometry.Geometry)

	// Material returns the surface description used to shade this mesh.
	// Several meshes may share one Material; edits affect all of them.
	//
	// Returns:
	//   - *material.Material: the material, or nil
	Material() *material.Material

	// SetMaterial replaces the material.
	//
	// Parameters:
	//   - m: the new material
	SetMaterial(m *material.Material)

	// Position returns the world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition sets the world-space position.
	//
	// Parameters:
	//   - x, y, z: the position
	SetPosition(x, y, z float32)

	// Rotation returns the Euler angles in radians, applied in X then Y then Z order.
	//
	// Returns:
	//   - mgl32.Vec3: the rotation
	Rotation() mgl32.Vec3

	// SetRotation sets the Euler angles in radians.
	//
	// Parameters:
	//   - rx, ry, rz: the rotation
	SetRotation(rx, ry, rz float32)

	// Scale returns the per-axis scale.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	Scale() mgl32.Vec3

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - sx, sy, sz: the scale
	SetScale(sx, sy, sz float32)

	// Visible returns whether the mesh is drawn.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible sets whether the mesh is drawn.
	//
	// Parameters:
	//   - visible: true to draw
	SetVisible(visible bool)

	// ModelMatrix composes translation, rotation, and scale into the local-to-world matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ModelMatrix() mgl32.Mat4

	// NormalMatrix returns the inverse transpose of the model matrix, which keeps normals
	// perpendicular to surfaces under non-uniform scale.
	//
	// Returns:
	//   - mgl32.Mat4: the normal matrix
	NormalMatrix() mgl32.Mat4

	// GPUUniform packs the model and normal matrices for upload.
	//
	// Returns:
	//   - GPUObjectUniform: the packed uniform
	GPUUniform() GPUObjectUniform
}

var _ Mesh = &mesh{}

// NewMesh creates a new Mesh from a geometry and material with the given options applied.
// Meshes start visible at the origin with no rotation and unit scale.
//
// Parameters:
//   - g: the geometry to draw
//   - m: the material to shade it with
//   - opts: variadic list of MeshBuilderOption functions
//
// Returns:
//   - Mesh: the new mesh
func NewMesh(g geometry.Geometry, m *material.Material, opts ...MeshBuilderOption) Mesh {
	ms := &mesh{
		mu:    &sync.Mutex{},
		id:    nextID.Add(1),
		geo:   g,
		mat:   m,
		scale: mgl32.Vec3{1, 1, 1},
	}
	ms.visible.Store(true)
	for _, opt := range opts {
		opt(ms)
	}
	return ms
}

func (m *mesh) ID() uint64 {
	return m.id
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Geometry() geometry.Geometry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.geo
}

func (m *mesh) SetGeometry(g geometry.Geometry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.geo = g
}

func (m *mesh) Material() *material.Material {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mat
}

func (m *mesh) SetMaterial(mat *material.Material) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mat = mat
}

func (m *mesh) Position() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *mesh) SetPosition(x, y, z float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = mgl32.Vec3{x, y, z}
}

func (m *mesh) Rotation() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rotation
}

func (m *mesh) SetRotation(rx, ry, rz float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rotation = mgl32.Vec3{rx, ry, rz}
}

func (m *mesh) Scale() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scale
}

func (m *mesh) SetScale(sx, sy, sz float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scale = mgl32.Vec3{sx, sy, sz}
}

func (m *mesh) Visible() bool {
	return m.visible.Load()
}

func (m *mesh) SetVisible(visible bool) {
	m.visible.Store(visible)
}

func (m *mesh) ModelMatrix() mgl32.Mat4 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modelMatrixLocked()
}

func (m *mesh) modelMatrixLocked() mgl32.Mat4 {
	t := mgl32.Translate3D(m.position.X(), m.position.Y(), m.position.Z())
	r := mgl32.HomogRotate3DX(m.rotation.X()).
		Mul4(mgl32.HomogRotate3DY(m.rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(m.rotation.Z()))
	s := mgl32.Scale3D(m.scale.X(), m.scale.Y(), m.scale.Z())
	return t.Mul4(r).Mul4(s)
}

func (m *mesh) NormalMatrix() mgl32.Mat4 {
	return m.ModelMatrix().Inv().Transpose()
}

func (m *mesh) GPUUniform() GPUObjectUniform {
	m.mu.Lock()
	defer m.mu.Unlock()
	model := m.modelMatrixLocked()
	u := GPUObjectUniform{
		Model:  model,
		Normal: model.Inv().Transpose(),
	}
	if m.geo != nil && m.geo.HasUV2() {
		u.HasUV2 = 1
	}
	return u
}
