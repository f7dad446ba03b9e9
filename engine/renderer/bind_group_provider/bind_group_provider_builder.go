package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBuffer sets an owned uniform buffer for a specific binding index.
//
// Parameters:
//   - binding: the binding index for this buffer
//   - buf: the buffer to associate with this binding
//
// Returns:
//   - BindGroupProviderOption: a function that sets the buffer for the specified binding
func WithBuffer(binding int, buf *wgpu.Buffer) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.buffers[binding] = buf
	}
}

// WithTextureView sets a borrowed texture view and its sampler for a texture/sampler binding pair.
//
// Parameters:
//   - textureBinding: the binding index of the texture
//   - samplerBinding: the binding index of the sampler
//   - tv: the texture view
//   - s: the sampler
//
// Returns:
//   - BindGroupProviderOption: a function that sets the texture view and sampler
func WithTextureView(textureBinding, samplerBinding int, tv *wgpu.TextureView, s *wgpu.Sampler) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.textureViews[textureBinding] = tv
		p.samplers[samplerBinding] = s
	}
}
