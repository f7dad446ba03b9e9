package common

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Perspective creates a right-handed perspective projection matrix for WebGPU clip space,
// mapping view depth [-near, -far] onto [0, 1]. mgl32.Perspective targets the OpenGL [-1, 1] range.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1 / math32.Tan(fovY/2)
	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1
	out[14] = (near * far) / (near - far)
	return out
}

// DegToRad converts an angle from degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// UVTransform builds the 3x3 matrix that maps mesh uvs into texture space:
// scale by repeat, rotate by rotation around center, then translate by offset.
//
// Parameters:
//   - offset: translation applied after repeat and rotation
//   - repeat: uv scale
//   - rotation: rotation in radians around center
//   - center: pivot of the rotation
//
// Returns:
//   - mgl32.Mat3: column-major uv transform
func UVTransform(offset, repeat mgl32.Vec2, rotation float32, center mgl32.Vec2) mgl32.Mat3 {
	c := math32.Cos(rotation)
	s := math32.Sin(rotation)
	sx, sy := repeat[0], repeat[1]
	cx, cy := center[0], center[1]

	// rows: (sx*c, sx*s, tx) and (-sy*s, sy*c, ty)
	return mgl32.Mat3{
		sx * c, -sy * s, 0,
		sx * s, sy * c, 0,
		-sx*(c*cx+s*cy) + cx + offset[0], -sy*(-s*cx+c*cy) + cy + offset[1], 1,
	}
}
