package renderer

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/Carmen-Shannon/oxy-lessons/engine/mesh"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// drawItem is one mesh queued for drawing this frame.
type drawItem struct {
	mesh        mesh.Mesh
	transparent bool
	// distance is the squared distance from the camera to the mesh's world bounding sphere center.
	distance float32
}

// buildDrawList returns the visible meshes in draw order: opaque meshes in scene order, then transparent
// meshes from farthest to nearest. Meshes that are hidden, incomplete, or outside the frustum are skipped.
func buildDrawList(meshes []mesh.Mesh, frustum common.Frustum, eye mgl32.Vec3) []drawItem {
	opaque := make([]drawItem, 0, len(meshes))
	var transparent []drawItem

	for _, m := range meshes {
		if m == nil || !m.Visible() || m.Geometry() == nil || m.Material() == nil {
			continue
		}
		if m.Geometry().IndexCount() == 0 {
			continue
		}

		center, radius := worldBoundingSphere(m)
		if !frustum.IntersectsSphere(center, radius) {
			continue
		}

		item := drawItem{
			mesh:        m,
			transparent: m.Material().Transparent,
			distance:    center.Sub(eye).LenSqr(),
		}
		if item.transparent {
			transparent = append(transparent, item)
		} else {
			opaque = append(opaque, item)
		}
	}

	slices.SortStableFunc(transparent, func(a, b drawItem) int {
		switch {
		case a.distance > b.distance:
			return -1
		case a.distance < b.distance:
			return 1
		}
		return 0
	})
	return append(opaque, transparent...)
}

// worldBoundingSphere transforms the geometry's bounding sphere by the mesh's model matrix.
// The radius is scaled by the largest axis scale so the sphere stays conservative.
func worldBoundingSphere(m mesh.Mesh) (mgl32.Vec3, float32) {
	center, radius := m.Geometry().BoundingSphere()
	worldCenter := mgl32.TransformCoordinate(center, m.ModelMatrix())
	s := m.Scale()
	maxScale := max(math32.Abs(s[0]), math32.Abs(s[1]), math32.Abs(s[2]))
	// displacement can push vertices past the rest bounds
	if mat := m.Material(); mat.DisplacementMap != nil {
		radius += math32.Abs(mat.DisplacementScale) + math32.Abs(mat.DisplacementBias)
	}
	return worldCenter, radius * maxScale
}
