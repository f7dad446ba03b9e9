package shader

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStructs = `
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) uv: vec2<f32>,
}

struct Light {
    position: vec3<f32>,
    range: f32,
}

struct Frame {
    view_proj: mat4x4<f32>,
    tint: vec3<f32>,
    count: u32,
    lights: array<Light, 4>,
}
`

const testModule = `
/* block comment with @vertex fn nope() inside */
@group(0) @binding(0) var<uniform> frame: Frame; // frame data
@group(1) @binding(1) var albedo: texture_2d<f32>;
@group(1) @binding(2) var albedo_sampler: sampler;
@group(1) @binding(3) var sky: texture_cube<f32>;
@group(1) @binding(0) var<uniform> tint: vec4<f32>;

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}
`

func TestNewShaderParsesEntryPoints(t *testing.T) {
	s, err := NewShader("test", testStructs, testModule)
	require.NoError(t, err)

	assert.Equal(t, "test", s.Key())
	assert.Equal(t, "vs_main", s.VertexEntryPoint())
	assert.Equal(t, "fs_main", s.FragmentEntryPoint())
	assert.Contains(t, s.Source(), "struct Frame")
	require.NotNil(t, s.Module())
	assert.Equal(t, s.Source(), s.Module().WGSLDescriptor.Code)
}

func TestNewShaderMissingEntryPoints(t *testing.T) {
	_, err := NewShader("frag-only", `@fragment fn fs() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }`)
	assert.True(t, errors.Is(err, ErrNoVertexEntry))

	_, err = NewShader("vert-only", `@vertex fn vs() -> @builtin(position) vec4<f32> { return vec4<f32>(1.0); }`)
	assert.True(t, errors.Is(err, ErrNoFragmentEntry))
}

func TestVertexLayouts(t *testing.T) {
	s, err := NewShader("test", testStructs, testModule)
	require.NoError(t, err)

	layouts := s.VertexLayouts()
	require.Len(t, layouts, 1)
	assert.Equal(t, uint64(32), layouts[0].ArrayStride)
	require.Len(t, layouts[0].Attributes, 3)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layouts[0].Attributes[1].Format)
	assert.Equal(t, uint64(12), layouts[0].Attributes[1].Offset)
	assert.Equal(t, uint32(2), layouts[0].Attributes[2].ShaderLocation)
	assert.Equal(t, uint64(24), layouts[0].Attributes[2].Offset)
}

func TestBindGroupLayouts(t *testing.T) {
	s, err := NewShader("test", testStructs, testModule)
	require.NoError(t, err)

	frame := s.BindGroupLayoutDescriptor(0)
	require.Len(t, frame.Entries, 1)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, frame.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(144), frame.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, frame.Entries[0].Visibility)

	mat := s.BindGroupLayoutDescriptor(1)
	require.Len(t, mat.Entries, 4)
	for i, e := range mat.Entries {
		assert.Equal(t, uint32(i), e.Binding, "entries are sorted by binding")
	}
	assert.Equal(t, uint64(16), mat.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, mat.Entries[1].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, mat.Entries[1].Texture.ViewDimension)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, mat.Entries[2].Sampler.Type)
	assert.Equal(t, wgpu.TextureViewDimensionCube, mat.Entries[3].Texture.ViewDimension)

	assert.Len(t, s.BindGroupLayoutDescriptors(), 2)
	assert.Empty(t, s.BindGroupLayoutDescriptor(5).Entries)
}

func TestBindingNames(t *testing.T) {
	s, err := NewShader("test", testStructs, testModule)
	require.NoError(t, err)

	assert.Equal(t, "albedo", s.BindingName(1, 1))
	assert.Equal(t, "", s.BindingName(3, 0))
	b, ok := s.BindingByName(1, "sky")
	assert.True(t, ok)
	assert.Equal(t, 3, b)
	_, ok = s.BindingByName(0, "missing")
	assert.False(t, ok)
}

func TestStructSize(t *testing.T) {
	s, err := NewShader("test", testStructs, testModule)
	require.NoError(t, err)

	size, ok := s.StructSize("Light")
	assert.True(t, ok)
	assert.Equal(t, uint64(16), size)

	// mat4 (64) + vec3 and u32 packed into 16 + 4 lights of 16
	size, ok = s.StructSize("Frame")
	assert.True(t, ok)
	assert.Equal(t, uint64(144), size)

	_, ok = s.StructSize("Nope")
	assert.False(t, ok)
}

func TestStripComments(t *testing.T) {
	got := stripComments("a // line\nb /* x /* nested */ y */ c")
	assert.Equal(t, "a \nb  c", got)
}
