package texture

import "github.com/go-gl/mathgl/mgl32"

// TextureBuilderOption is a functional option for configuring a Texture.
type TextureBuilderOption func(*texture)

// WithWrap sets the wrapping modes.
//
// Parameters:
//   - s: horizontal wrapping
//   - t: vertical wrapping
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithWrap(s, t Wrapping) TextureBuilderOption {
	return func(tex *texture) {
		tex.wrapS, tex.wrapT = s, t
	}
}

// WithFilters sets the minification and magnification filters.
//
// Parameters:
//   - min: minification filter
//   - mag: magnification filter
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithFilters(min, mag Filter) TextureBuilderOption {
	return func(tex *texture) {
		tex.minFilter, tex.magFilter = min, mag
	}
}

// WithGenerateMipmaps toggles mip chain generation.
func WithGenerateMipmaps(enabled bool) TextureBuilderOption {
	return func(tex *texture) {
		tex.generateMipmaps = enabled
	}
}

// WithFlipY toggles the vertical flip applied at upload.
func WithFlipY(enabled bool) TextureBuilderOption {
	return func(tex *texture) {
		tex.flipY = enabled
	}
}

// WithRepeat sets how many times the texture repeats across the uv range.
func WithRepeat(x, y float32) TextureBuilderOption {
	return func(tex *texture) {
		tex.repeat = mgl32.Vec2{x, y}
	}
}
