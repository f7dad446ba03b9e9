package renderer

import "github.com/Carmen-Shannon/oxy-lessons/common"

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// ParseMSAA maps a configured sample count onto a supported MSAASampleCount.
// Anything above 1 selects MSAA4x.
//
// Parameters:
//   - samples: the requested sample count
//
// Returns:
//   - MSAASampleCount: MSAAOff or MSAA4x
func ParseMSAA(samples int) MSAASampleCount {
	if samples > 1 {
		return MSAA4x
	}
	return MSAAOff
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}

// whitePixel is the staging data of the placeholder bound to empty 2D texture slots.
func whitePixel() common.TextureStagingData {
	return common.TextureStagingData{
		Levels: [][]byte{{255, 255, 255, 255}},
		Width:  1,
		Height: 1,
		Layers: 1,
	}
}

// whiteCube is the staging data of the placeholder bound to an empty environment map slot.
func whiteCube() common.TextureStagingData {
	faces := make([]byte, 0, 6*4)
	for range 6 {
		faces = append(faces, 255, 255, 255, 255)
	}
	return common.TextureStagingData{
		Levels: [][]byte{faces},
		Width:  1,
		Height: 1,
		Layers: 6,
		Cube:   true,
	}
}
