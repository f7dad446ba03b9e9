package material

import (
	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/Carmen-Shannon/oxy-lessons/engine/texture"
	"github.com/go-gl/mathgl/mgl32"
)

// MaterialBuilderOption is a function that configures a material during construction.
type MaterialBuilderOption func(*Material)

// WithName sets the material's label.
//
// Parameters:
//   - name: the label
//
// Returns:
//   - MaterialBuilderOption: option function to apply
func WithName(name string) MaterialBuilderOption {
	return func(m *Material) {
		m.Name = name
	}
}

// WithColor sets the base color from a 0xRRGGBB integer.
//
// Parameters:
//   - hex: the color
//
// Returns:
//   - MaterialBuilderOption: option function to apply
func WithColor(hex uint32) MaterialBuilderOption {
	return func(m *Material) {
		m.Color = common.ColorFromHex(hex)
	}
}

// WithOpacity sets the opacity. It only takes effect on transparent materials.
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *Material) {
		m.Opacity = opacity
	}
}

// WithTransparent enables alpha blending.
func WithTransparent(transparent bool) MaterialBuilderOption {
	return func(m *Material) {
		m.Transparent = transparent
	}
}

// WithSide sets which faces are rendered.
func WithSide(side Side) MaterialBuilderOption {
	return func(m *Material) {
		m.Side = side
	}
}

// WithWireframe renders triangle edges as lines.
func WithWireframe(wireframe bool) MaterialBuilderOption {
	return func(m *Material) {
		m.Wireframe = wireframe
	}
}

// WithFlatShading shades each triangle with its face normal.
func WithFlatShading(flat bool) MaterialBuilderOption {
	return func(m *Material) {
		m.FlatShading = flat
	}
}

// WithMap sets the color map.
//
// Parameters:
//   - tex: the texture
//
// Returns:
//   - MaterialBuilderOption: option function to apply
func WithMap(tex texture.Texture) MaterialBuilderOption {
	return func(m *Material) {
		m.Map = tex
	}
}

// WithAlphaMap sets the alpha map; its green channel scales opacity.
func WithAlphaMap(tex texture.Texture) MaterialBuilderOption {
	return func(m *Material) {
		m.AlphaMap = tex
	}
}

// WithAoMap sets the ambient occlusion map, sampled with the second uv set.
func WithAoMap(tex texture.Texture, intensity float32) MaterialBuilderOption {
	return func(m *Material) {
		m.AoMap = tex
		m.AoMapIntensity = intensity
	}
}

// WithDisplacementMap sets the vertex displacement map and its scale.
func WithDisplacementMap(tex texture.Texture, scale float32) MaterialBuilderOption {
	return func(m *Material) {
		m.DisplacementMap = tex
		m.DisplacementScale = scale
	}
}

// WithNormalMap sets the tangent space normal map and its scale.
func WithNormalMap(tex texture.Texture, scale mgl32.Vec2) MaterialBuilderOption {
	return func(m *Material) {
		m.NormalMap = tex
		m.NormalScale = scale
	}
}

// WithMetalnessMap sets the metalness map; its blue channel scales Metalness.
func WithMetalnessMap(tex texture.Texture) MaterialBuilderOption {
	return func(m *Material) {
		m.MetalnessMap = tex
	}
}

// WithRoughnessMap sets the roughness map; its green channel scales Roughness.
func WithRoughnessMap(tex texture.Texture) MaterialBuilderOption {
	return func(m *Material) {
		m.RoughnessMap = tex
	}
}

// WithMatcap sets the matcap texture.
func WithMatcap(tex texture.Texture) MaterialBuilderOption {
	return func(m *Material) {
		m.Matcap = tex
	}
}

// WithGradientMap sets the toon gradient lookup texture.
func WithGradientMap(tex texture.Texture) MaterialBuilderOption {
	return func(m *Material) {
		m.GradientMap = tex
	}
}

// WithEnvMap sets the environment cube map.
func WithEnvMap(tex texture.Texture) MaterialBuilderOption {
	return func(m *Material) {
		m.EnvMap = tex
	}
}

// WithMetalness sets the metalness factor.
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *Material) {
		m.Metalness = metalness
	}
}

// WithRoughness sets the roughness factor.
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *Material) {
		m.Roughness = roughness
	}
}

// WithShininess sets the Phong specular exponent.
func WithShininess(shininess float32) MaterialBuilderOption {
	return func(m *Material) {
		m.Shininess = shininess
	}
}

// WithSpecular sets the Phong specular color from a 0xRRGGBB integer.
func WithSpecular(hex uint32) MaterialBuilderOption {
	return func(m *Material) {
		m.Specular = common.ColorFromHex(hex)
	}
}

// WithEmissive sets the emissive color from a 0xRRGGBB integer.
func WithEmissive(hex uint32) MaterialBuilderOption {
	return func(m *Material) {
		m.Emissive = common.ColorFromHex(hex)
	}
}
