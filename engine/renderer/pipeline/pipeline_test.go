package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-lessons/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("mesh", nil)
	assert.Equal(t, "mesh", p.Key())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, p.BlendState().Color.SrcFactor)
	assert.Nil(t, p.RenderPipeline())
	p.Release()
}

func TestOptions(t *testing.T) {
	blend := &wgpu.BlendState{}
	p := NewPipeline("custom", nil,
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
		WithBlendEnabled(true),
		WithCullMode(wgpu.CullModeFront),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
		WithBlendState(blend),
	)
	assert.False(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.True(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeFront, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskRed, p.WriteMask())
	assert.Same(t, blend, p.BlendState())
}

func TestForMaterial(t *testing.T) {
	tests := []struct {
		name     string
		key      material.PipelineKey
		cull     wgpu.CullMode
		topology wgpu.PrimitiveTopology
		blend    bool
	}{
		{"front", material.PipelineKey{Side: material.FrontSide}, wgpu.CullModeBack, wgpu.PrimitiveTopologyTriangleList, false},
		{"back", material.PipelineKey{Side: material.BackSide}, wgpu.CullModeFront, wgpu.PrimitiveTopologyTriangleList, false},
		{"double", material.PipelineKey{Side: material.DoubleSide}, wgpu.CullModeNone, wgpu.PrimitiveTopologyTriangleList, false},
		{"wireframe", material.PipelineKey{Wireframe: true}, wgpu.CullModeNone, wgpu.PrimitiveTopologyLineList, false},
		{"transparent", material.PipelineKey{Side: material.DoubleSide, Transparent: true}, wgpu.CullModeNone, wgpu.PrimitiveTopologyTriangleList, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ForMaterial(nil, tt.key)
			assert.Equal(t, tt.key.String(), p.Key())
			assert.Equal(t, tt.cull, p.CullMode())
			assert.Equal(t, tt.topology, p.Topology())
			assert.Equal(t, tt.blend, p.BlendEnabled())
			assert.True(t, p.DepthWriteEnabled())
		})
	}
}
