package texture

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Wrapping selects how uv coordinates outside [0, 1] are resolved.
type Wrapping int

const (
	ClampToEdgeWrapping Wrapping = iota
	RepeatWrapping
	MirroredRepeatWrapping
)

// Filter selects texel filtering for magnification and minification.
type Filter int

const (
	LinearFilter Filter = iota
	NearestFilter
)

var (
	// ErrNotReady is returned when staging data is requested before any image has been assigned.
	ErrNotReady = errors.New("texture: image not loaded")

	// ErrCubeFaceSize is returned when cube faces are missing, not square or differ in size.
	ErrCubeFaceSize = errors.New("texture: cube faces must be square and equally sized")
)

var nextID atomic.Uint64

// texture is the implementation of the Texture interface.
type texture struct {
	mu      *sync.Mutex
	id      uint64
	name    string
	version uint64
	cube    bool
	images  []image.Image
	ready   bool

	repeat   mgl32.Vec2
	offset   mgl32.Vec2
	center   mgl32.Vec2
	rotation float32

	wrapS, wrapT         Wrapping
	minFilter, magFilter Filter
	generateMipmaps      bool
	flipY                bool
}

// Texture is an image plus the sampling and uv placement parameters three.js attaches to it.
// Placement (repeat, offset, center, rotation) is read every frame; image, wrap, filter,
// mipmap and flip changes bump Version so renderers re-upload.
type Texture interface {
	// ID returns a process-unique identifier.
	//
	// Returns:
	//   - uint64: the identifier, never zero
	ID() uint64

	// Name returns the asset path the texture was created for.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Version returns a counter bumped on every change that requires a GPU re-upload.
	//
	// Returns:
	//   - uint64: the version
	Version() uint64

	// Ready reports whether the texture's images have been assigned.
	//
	// Returns:
	//   - bool: true once loaded
	Ready() bool

	// IsCube reports whether this is a six-face cube texture.
	//
	// Returns:
	//   - bool: true for cube textures
	IsCube() bool

	// Images returns the source images: one for 2D textures, six for cube textures.
	//
	// Returns:
	//   - []image.Image: the images, nil until ready
	Images() []image.Image

	// SetImage assigns the image of a 2D texture and marks it ready.
	//
	// Parameters:
	//   - img: the decoded image
	SetImage(img image.Image)

	// SetFace assigns one face of a cube texture. The texture becomes ready once all six are set.
	//
	// Parameters:
	//   - index: face index in +X, -X, +Y, -Y, +Z, -Z order
	//   - img: the decoded face image
	SetFace(index int, img image.Image)

	Repeat() mgl32.Vec2
	SetRepeat(x, y float32)
	Offset() mgl32.Vec2
	SetOffset(x, y float32)
	Center() mgl32.Vec2
	SetCenter(x, y float32)
	Rotation() float32
	SetRotation(radians float32)

	WrapS() Wrapping
	WrapT() Wrapping
	// SetWrap sets the horizontal and vertical wrapping modes.
	SetWrap(s, t Wrapping)

	MinFilter() Filter
	MagFilter() Filter
	// SetFilters sets the minification and magnification filters.
	SetFilters(min, mag Filter)

	GenerateMipmaps() bool
	SetGenerateMipmaps(enabled bool)

	FlipY() bool
	SetFlipY(enabled bool)

	// UVTransform returns the 3x3 matrix mapping mesh uvs to texture uvs
	// from the texture's offset, repeat, rotation and center.
	//
	// Returns:
	//   - mgl32.Mat3: the column-major uv transform
	UVTransform() mgl32.Mat3

	// SamplerData converts the wrap and filter settings into a GPU sampler description.
	//
	// Returns:
	//   - common.SamplerStagingData: the sampler description
	SamplerData() common.SamplerStagingData

	// StagingData builds the RGBA pixel levels for GPU upload, applying FlipY and the mip chain.
	//
	// Returns:
	//   - common.TextureStagingData: the staged pixels
	//   - error: ErrNotReady or ErrCubeFaceSize
	StagingData() (common.TextureStagingData, error)
}

var _ Texture = &texture{}

// NewTexture creates an empty 2D texture with three.js defaults.
//
// Parameters:
//   - name: the asset path or label
//   - options: functional options
//
// Returns:
//   - Texture: the texture
func NewTexture(name string, options ...TextureBuilderOption) Texture {
	t := &texture{
		mu:              &sync.Mutex{},
		id:              nextID.Add(1),
		name:            name,
		repeat:          mgl32.Vec2{1, 1},
		generateMipmaps: true,
		flipY:           true,
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

// NewCubeTexture creates an empty cube texture awaiting six faces.
//
// Parameters:
//   - name: a label
//   - options: functional options
//
// Returns:
//   - Texture: the cube texture
func NewCubeTexture(name string, options ...TextureBuilderOption) Texture {
	t := NewTexture(name, options...).(*texture)
	t.cube = true
	t.flipY = false
	t.images = make([]image.Image, 6)
	return t
}

// NewFromImage wraps an already decoded image as a ready 2D texture.
//
// Parameters:
//   - name: a label
//   - img: the image
//   - options: functional options
//
// Returns:
//   - Texture: the ready texture
func NewFromImage(name string, img image.Image, options ...TextureBuilderOption) Texture {
	t := NewTexture(name, options...)
	t.SetImage(img)
	return t
}

func (t *texture) ID() uint64 {
	return t.id
}

func (t *texture) Name() string {
	return t.name
}

func (t *texture) Version() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.version
}

func (t *texture) Ready() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ready
}

func (t *texture) IsCube() bool {
	return t.cube
}

func (t *texture) Images() []image.Image {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.ready {
		return nil
	}
	return append([]image.Image(nil), t.images...)
}

func (t *texture) SetImage(img image.Image) {
	if t.cube || img == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.images = []image.Image{img}
	t.ready = true
	t.version++
}

func (t *texture) SetFace(index int, img image.Image) {
	if !t.cube || index < 0 || index >= 6 || img == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.images[index] = img
	for _, face := range t.images {
		if face == nil {
			return
		}
	}
	t.ready = true
	t.version++
}

func (t *texture) Repeat() mgl32.Vec2 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.repeat
}

func (t *texture) SetRepeat(x, y float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.repeat = mgl32.Vec2{x, y}
}

func (t *texture) Offset() mgl32.Vec2 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.offset
}

func (t *texture) SetOffset(x, y float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.offset = mgl32.Vec2{x, y}
}

func (t *texture) Center() mgl32.Vec2 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.center
}

func (t *texture) SetCenter(x, y float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.center = mgl32.Vec2{x, y}
}

func (t *texture) Rotation() float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rotation
}

func (t *texture) SetRotation(radians float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rotation = radians
}

func (t *texture) WrapS() Wrapping {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wrapS
}

func (t *texture) WrapT() Wrapping {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wrapT
}

func (t *texture) SetWrap(s, tw Wrapping) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.wrapS == s && t.wrapT == tw {
		return
	}
	t.wrapS, t.wrapT = s, tw
	t.version++
}

func (t *texture) MinFilter() Filter {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.minFilter
}

func (t *texture) MagFilter() Filter {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.magFilter
}

func (t *texture) SetFilters(min, mag Filter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.minFilter == min && t.magFilter == mag {
		return
	}
	t.minFilter, t.magFilter = min, mag
	t.version++
}

func (t *texture) GenerateMipmaps() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.generateMipmaps
}

func (t *texture) SetGenerateMipmaps(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.generateMipmaps == enabled {
		return
	}
	t.generateMipmaps = enabled
	t.version++
}

func (t *texture) FlipY() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flipY
}

func (t *texture) SetFlipY(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.flipY == enabled {
		return
	}
	t.flipY = enabled
	t.version++
}

func (t *texture) UVTransform() mgl32.Mat3 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return common.UVTransform(t.offset, t.repeat, t.rotation, t.center)
}

func (t *texture) SamplerData() common.SamplerStagingData {
	t.mu.Lock()
	defer t.mu.Unlock()

	data := common.SamplerStagingData{
		AddressModeU:  addressMode(t.wrapS),
		AddressModeV:  addressMode(t.wrapT),
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     filterMode(t.magFilter),
		MinFilter:     filterMode(t.minFilter),
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   0,
		MaxAnisotropy: 1,
	}
	if t.generateMipmaps {
		data.MipmapFilter = wgpu.MipmapFilterModeLinear
		data.LodMaxClamp = 32
	}
	return data
}

func (t *texture) StagingData() (common.TextureStagingData, error) {
	t.mu.Lock()
	images := append([]image.Image(nil), t.images...)
	ready, flip, mips := t.ready, t.flipY, t.generateMipmaps
	t.mu.Unlock()

	if !ready {
		return common.TextureStagingData{}, fmt.Errorf("%s: %w", t.name, ErrNotReady)
	}

	chains := make([][]*image.RGBA, len(images))
	for i, img := range images {
		var base *image.RGBA
		if flip {
			base = transform.FlipV(img)
		} else {
			base = clone.AsRGBA(img)
		}
		if mips {
			chains[i] = MipChain(base)
		} else {
			chains[i] = []*image.RGBA{base}
		}
	}

	size := chains[0][0].Bounds().Size()
	if t.cube {
		for _, chain := range chains {
			if s := chain[0].Bounds().Size(); s != size || s.X != s.Y {
				return common.TextureStagingData{}, fmt.Errorf("%s: %w", t.name, ErrCubeFaceSize)
			}
		}
	}

	levels := make([][]byte, len(chains[0]))
	for level := range levels {
		for _, chain := range chains {
			levels[level] = append(levels[level], chain[level].Pix...)
		}
	}
	return common.TextureStagingData{
		Levels: levels,
		Width:  uint32(size.X),
		Height: uint32(size.Y),
		Layers: uint32(len(chains)),
		Cube:   t.cube,
	}, nil
}

// MipChain returns img followed by successively halved copies down to 1x1.
//
// Parameters:
//   - img: the full resolution level
//
// Returns:
//   - []*image.RGBA: every mip level, level 0 first
func MipChain(img image.Image) []*image.RGBA {
	base := clone.AsRGBA(img)
	w, h := base.Bounds().Dx(), base.Bounds().Dy()
	chain := make([]*image.RGBA, 1, mipLevelCount(w, h))
	chain[0] = base
	for w > 1 || h > 1 {
		w, h = max(w/2, 1), max(h/2, 1)
		chain = append(chain, transform.Resize(chain[len(chain)-1], w, h, transform.Linear))
	}
	return chain
}

// mipLevelCount returns the number of levels MipChain produces for a width x height image.
//
// Parameters:
//   - width, height: the level 0 size
//
// Returns:
//   - int: the level count
func mipLevelCount(width, height int) int {
	n := 1
	for width > 1 || height > 1 {
		width, height = max(width/2, 1), max(height/2, 1)
		n++
	}
	return n
}

func addressMode(w Wrapping) wgpu.AddressMode {
	switch w {
	case RepeatWrapping:
		return wgpu.AddressModeRepeat
	case MirroredRepeatWrapping:
		return wgpu.AddressModeMirrorRepeat
	default:
		return wgpu.AddressModeClampToEdge
	}
}

func filterMode(f Filter) wgpu.FilterMode {
	if f == NearestFilter {
		return wgpu.FilterModeNearest
	}
	return wgpu.FilterModeLinear
}
