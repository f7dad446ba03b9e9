package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const orbitEpsilon = 1e-6

type dragState int

const (
	dragNone dragState = iota
	dragRotate
	dragPan
)

// spherical is a y-up spherical coordinate: phi from +Y, theta around Y from +Z.
type spherical struct {
	radius, phi, theta float32
}

func sphericalFromVec(v mgl32.Vec3) spherical {
	r := v.Len()
	if r == 0 {
		return spherical{}
	}
	return spherical{
		radius: r,
		theta:  math32.Atan2(v[0], v[2]),
		phi:    math32.Acos(mgl32.Clamp(v[1]/r, -1, 1)),
	}
}

func (s spherical) vec() mgl32.Vec3 {
	sinPhi := math32.Sin(s.phi)
	return mgl32.Vec3{
		s.radius * sinPhi * math32.Sin(s.theta),
		s.radius * math32.Cos(s.phi),
		s.radius * sinPhi * math32.Cos(s.theta),
	}
}

// orbitControls implements OrbitControls.
type orbitControls struct {
	mu     *sync.Mutex
	camera Camera

	target mgl32.Vec3

	enableDamping bool
	dampingFactor float32
	rotateSpeed   float32
	zoomSpeed     float32
	panSpeed      float32

	minDistance, maxDistance      float32
	minPolarAngle, maxPolarAngle  float32
	viewportWidth, viewportHeight float32

	sphericalDelta spherical
	panOffset      mgl32.Vec3
	scale          float32

	drag  dragState
	lastX float32
	lastY float32
}

// OrbitControls orbits a Camera around a target point.
// Left drag rotates, right or middle drag pans and the wheel dollies.
// Input only accumulates deltas; Update applies them and must be called once per frame.
type OrbitControls interface {
	// Target returns the point the camera orbits around.
	//
	// Returns:
	//   - mgl32.Vec3: the orbit target
	Target() mgl32.Vec3

	// SetTarget moves the orbit target.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// SetEnableDamping toggles inertia. With damping, deltas are applied a fraction at a time
	// over several frames.
	//
	// Parameters:
	//   - enabled: true to enable damping
	SetEnableDamping(enabled bool)

	// EnableDamping reports whether damping is enabled.
	//
	// Returns:
	//   - bool: true if damping is enabled
	EnableDamping() bool

	// SetViewportSize sets the pixel size used to scale drag distances into angles.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	SetViewportSize(width, height int)

	// PointerDown starts a drag.
	//
	// Parameters:
	//   - button: common.MouseButton* value
	//   - x, y: cursor position in pixels
	PointerDown(button int, x, y float32)

	// PointerMove continues a drag started with PointerDown.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	PointerMove(x, y float32)

	// PointerUp ends the current drag.
	//
	// Parameters:
	//   - button: common.MouseButton* value
	PointerUp(button int)

	// Wheel dollies the camera. Positive values move toward the target.
	//
	// Parameters:
	//   - delta: scroll amount
	Wheel(delta float32)

	// Rotate queues an orbit by the given angles in radians.
	//
	// Parameters:
	//   - left: rotation around the up axis
	//   - up: rotation toward the pole
	Rotate(left, up float32)

	// Pan queues a target translation in screen pixels.
	//
	// Parameters:
	//   - dx, dy: pixel offsets
	Pan(dx, dy float32)

	// Dolly queues a distance scale; values below 1 move toward the target.
	//
	// Parameters:
	//   - scale: multiplicative distance factor
	Dolly(scale float32)

	// Update applies queued input to the camera.
	//
	// Returns:
	//   - bool: true if the camera moved
	Update() bool
}

var _ OrbitControls = &orbitControls{}

// NewOrbitControls creates controls for cam, orbiting around the origin.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options
//
// Returns:
//   - OrbitControls: the controls
func NewOrbitControls(cam Camera, options ...OrbitControlsBuilderOption) OrbitControls {
	oc := &orbitControls{
		mu:             &sync.Mutex{},
		camera:         cam,
		dampingFactor:  0.05,
		rotateSpeed:    1,
		zoomSpeed:      1,
		panSpeed:       1,
		minDistance:    0,
		maxDistance:    math32.Inf(1),
		minPolarAngle:  0,
		maxPolarAngle:  math32.Pi,
		viewportWidth:  800,
		viewportHeight: 600,
		scale:          1,
	}
	for _, opt := range options {
		opt(oc)
	}
	t := oc.target
	cam.LookAt(t[0], t[1], t[2])
	return oc
}

func (oc *orbitControls) Target() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControls) SetTarget(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = mgl32.Vec3{x, y, z}
}

func (oc *orbitControls) SetEnableDamping(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enableDamping = enabled
}

func (oc *orbitControls) EnableDamping() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enableDamping
}

func (oc *orbitControls) SetViewportSize(width, height int) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if width > 0 && height > 0 {
		oc.viewportWidth = float32(width)
		oc.viewportHeight = float32(height)
	}
}

func (oc *orbitControls) PointerDown(button int, x, y float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	switch button {
	case common.MouseButtonLeft:
		oc.drag = dragRotate
	case common.MouseButtonRight, common.MouseButtonMiddle:
		oc.drag = dragPan
	default:
		return
	}
	oc.lastX, oc.lastY = x, y
}

func (oc *orbitControls) PointerMove(x, y float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	dx, dy := x-oc.lastX, y-oc.lastY
	oc.lastX, oc.lastY = x, y

	switch oc.drag {
	case dragRotate:
		oc.rotateLocked(
			2*math32.Pi*dx*oc.rotateSpeed/oc.viewportHeight,
			2*math32.Pi*dy*oc.rotateSpeed/oc.viewportHeight,
		)
	case dragPan:
		oc.panLocked(dx*oc.panSpeed, dy*oc.panSpeed)
	}
}

func (oc *orbitControls) PointerUp(button int) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.drag = dragNone
}

func (oc *orbitControls) Wheel(delta float32) {
	if delta == 0 {
		return
	}
	zoomScale := math32.Pow(0.95, oc.zoomSpeed)
	if delta > 0 {
		oc.Dolly(zoomScale)
	} else {
		oc.Dolly(1 / zoomScale)
	}
}

func (oc *orbitControls) Rotate(left, up float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.rotateLocked(left, up)
}

func (oc *orbitControls) Pan(dx, dy float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.panLocked(dx, dy)
}

func (oc *orbitControls) Dolly(scale float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if scale > 0 {
		oc.scale *= scale
	}
}

func (oc *orbitControls) Update() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	position := oc.camera.Position()
	s := sphericalFromVec(position.Sub(oc.target))

	if oc.enableDamping {
		s.theta += oc.sphericalDelta.theta * oc.dampingFactor
		s.phi += oc.sphericalDelta.phi * oc.dampingFactor
	} else {
		s.theta += oc.sphericalDelta.theta
		s.phi += oc.sphericalDelta.phi
	}

	s.phi = mgl32.Clamp(s.phi, oc.minPolarAngle, oc.maxPolarAngle)
	s.phi = mgl32.Clamp(s.phi, orbitEpsilon, math32.Pi-orbitEpsilon)
	s.radius = mgl32.Clamp(s.radius*oc.scale, oc.minDistance, oc.maxDistance)

	if oc.enableDamping {
		oc.target = oc.target.Add(oc.panOffset.Mul(oc.dampingFactor))
	} else {
		oc.target = oc.target.Add(oc.panOffset)
	}

	next := oc.target.Add(s.vec())
	oc.camera.SetPosition(next[0], next[1], next[2])
	oc.camera.LookAt(oc.target[0], oc.target[1], oc.target[2])

	if oc.enableDamping {
		decay := 1 - oc.dampingFactor
		oc.sphericalDelta.theta *= decay
		oc.sphericalDelta.phi *= decay
		oc.panOffset = oc.panOffset.Mul(decay)
	} else {
		oc.sphericalDelta = spherical{}
		oc.panOffset = mgl32.Vec3{}
	}
	oc.scale = 1

	return next.Sub(position).Len() > orbitEpsilon
}

func (oc *orbitControls) rotateLocked(left, up float32) {
	oc.sphericalDelta.theta -= left
	oc.sphericalDelta.phi -= up
}

// panLocked converts a pixel offset into a world offset on the plane at the target's distance.
func (oc *orbitControls) panLocked(dx, dy float32) {
	view := oc.camera.ViewMatrix()
	right := view.Row(0).Vec3()
	up := view.Row(1).Vec3()

	targetDistance := oc.camera.Position().Sub(oc.target).Len() * math32.Tan(oc.camera.Fov()/2)
	left := 2 * dx * targetDistance / oc.viewportHeight
	upward := 2 * dy * targetDistance / oc.viewportHeight

	oc.panOffset = oc.panOffset.Add(right.Mul(-left)).Add(up.Mul(upward))
}
