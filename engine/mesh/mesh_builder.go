package mesh

import "github.com/go-gl/mathgl/mgl32"

// MeshBuilderOption is a functional option for configuring a Mesh during construction.
type MeshBuilderOption func(*mesh)

// WithName sets the debug name of the Mesh.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - MeshBuilderOption: functional option to set the name
func WithName(name string) MeshBuilderOption {
	return func(m *mesh) {
		m.name = name
	}
}

// WithPosition sets the initial world-space position of the Mesh.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - MeshBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) MeshBuilderOption {
	return func(m *mesh) {
		m.position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial Euler rotation of the Mesh in radians.
//
// Parameters:
//   - rx, ry, rz: rotation angles
//
// Returns:
//   - MeshBuilderOption: functional option to set the rotation
func WithRotation(rx, ry, rz float32) MeshBuilderOption {
	return func(m *mesh) {
		m.rotation = mgl32.Vec3{rx, ry, rz}
	}
}

// WithScale sets the initial per-axis scale of the Mesh.
//
// Parameters:
//   - sx, sy, sz: scale components
//
// Returns:
//   - MeshBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float32) MeshBuilderOption {
	return func(m *mesh) {
		m.scale = mgl32.Vec3{sx, sy, sz}
	}
}

// WithVisible sets whether the Mesh starts visible.
//
// Parameters:
//   - visible: true to draw the mesh
//
// Returns:
//   - MeshBuilderOption: functional option to set visibility
func WithVisible(visible bool) MeshBuilderOption {
	return func(m *mesh) {
		m.visible.Store(visible)
	}
}
