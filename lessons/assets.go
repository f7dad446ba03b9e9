package lessons

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-lessons/engine/texture"
)

// Asset paths relative to the asset root.
const (
	doorColorPath            = "/textures/door/color.jpg"
	doorAlphaPath            = "/textures/door/alpha.jpg"
	doorHeightPath           = "/textures/door/height.jpg"
	doorNormalPath           = "/textures/door/normal.jpg"
	doorAmbientOcclusionPath = "/textures/door/ambientOcclusion.jpg"
	doorMetalnessPath        = "/textures/door/metalness.jpg"
	doorRoughnessPath        = "/textures/door/roughness.jpg"
)

// matcapPath returns the path of matcap n; the asset pack ships 1 to 8.
func matcapPath(n int) string {
	return fmt.Sprintf("/textures/matcaps/%d.png", n)
}

// gradientPath returns the path of gradient n; the asset pack ships 3 and 5.
func gradientPath(n int) string {
	return fmt.Sprintf("/textures/gradients/%d.jpg", n)
}

// environmentMapPaths returns the six faces of environment map n in +X, -X, +Y, -Y, +Z, -Z order.
func environmentMapPaths(n int) [6]string {
	var paths [6]string
	for i, face := range [6]string{"px", "nx", "py", "ny", "pz", "nz"} {
		paths[i] = fmt.Sprintf("/textures/environmentMaps/%d/%s.jpg", n, face)
	}
	return paths
}

// doorTextures is the door texture set both texture lessons load.
type doorTextures struct {
	color            texture.Texture
	alpha            texture.Texture
	height           texture.Texture
	normal           texture.Texture
	ambientOcclusion texture.Texture
	metalness        texture.Texture
	roughness        texture.Texture
}

func loadDoorTextures(l texture.Loader) doorTextures {
	return doorTextures{
		color:            l.Load(doorColorPath),
		alpha:            l.Load(doorAlphaPath),
		height:           l.Load(doorHeightPath),
		normal:           l.Load(doorNormalPath),
		ambientOcclusion: l.Load(doorAmbientOcclusionPath),
		metalness:        l.Load(doorMetalnessPath),
		roughness:        l.Load(doorRoughnessPath),
	}
}
