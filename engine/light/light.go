package light

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every fragment equally, regardless of position or normal.
	LightTypeAmbient LightType = iota

	// LightTypePoint emits in all directions from a position. With a Distance of zero the
	// light never fades; otherwise it fades to nothing at Distance following Decay.
	LightTypePoint
)

var nextID atomic.Uint64

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu        *sync.Mutex
	id        uint64
	lightType LightType
	position  mgl32.Vec3
	color     common.Color
	intensity float32
	distance  float32
	decay     float32
	enabled   bool
}

// Light defines the interface for a light source in the scene.
// Lights are plain scene members; the renderer packs the enabled ones into a uniform block each frame.
type Light interface {
	// ID returns a process-unique identifier.
	//
	// Returns:
	//   - uint64: the identifier
	ID() uint64

	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position. Meaningless for ambient lights.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Color returns the light color.
	//
	// Returns:
	//   - common.Color: the color
	Color() common.Color

	// Intensity returns the scalar multiplier applied to Color.
	//
	// Returns:
	//   - float32: the intensity
	Intensity() float32

	// Distance returns the cutoff distance of a point light, zero for no cutoff.
	//
	// Returns:
	//   - float32: the distance
	Distance() float32

	// Decay returns the falloff exponent used between the light and Distance.
	//
	// Returns:
	//   - float32: the decay
	Decay() float32

	// Enabled returns whether this light contributes to rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetPosition sets the world-space position.
	//
	// Parameters:
	//   - x, y, z: the position
	SetPosition(x, y, z float32)

	// SetColor sets the light color.
	//
	// Parameters:
	//   - c: the color
	SetColor(c common.Color)

	// SetIntensity sets the scalar multiplier.
	//
	// Parameters:
	//   - intensity: the intensity
	SetIntensity(intensity float32)

	// SetDistance sets the point light cutoff distance.
	SetDistance(distance float32)

	// SetDecay sets the point light falloff exponent.
	SetDecay(decay float32)

	// SetEnabled enables or disables the light.
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the given type with the provided options applied.
// Defaults are a white light of intensity 1 with no distance cutoff and a decay of 1.
//
// Parameters:
//   - lightType: the kind of light
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: the configured light
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		id:        nextID.Add(1),
		lightType: lightType,
		color:     common.Color{R: 1, G: 1, B: 1},
		intensity: 1,
		decay:     1,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewAmbientLight creates an ambient light.
//
// Parameters:
//   - hex: the color as 0xRRGGBB
//   - intensity: the intensity
//   - opts: additional options
//
// Returns:
//   - Light: the ambient light
func NewAmbientLight(hex uint32, intensity float32, opts ...LightBuilderOption) Light {
	return NewLight(LightTypeAmbient, append([]LightBuilderOption{WithColorHex(hex), WithIntensity(intensity)}, opts...)...)
}

// NewPointLight creates a point light at the origin.
//
// Parameters:
//   - hex: the color as 0xRRGGBB
//   - intensity: the intensity
//   - opts: additional options, typically WithPosition
//
// Returns:
//   - Light: the point light
func NewPointLight(hex uint32, intensity float32, opts ...LightBuilderOption) Light {
	return NewLight(LightTypePoint, append([]LightBuilderOption{WithColorHex(hex), WithIntensity(intensity)}, opts...)...)
}

func (l *lightImpl) ID() uint64 {
	return l.id
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Color() common.Color {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) Distance() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.distance
}

func (l *lightImpl) Decay() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.decay
}

func (l *lightImpl) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = mgl32.Vec3{x, y, z}
}

func (l *lightImpl) SetColor(c common.Color) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) SetDistance(distance float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.distance = max(distance, 0)
}

func (l *lightImpl) SetDecay(decay float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decay = decay
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}
