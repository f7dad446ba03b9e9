package camera

import "github.com/go-gl/mathgl/mgl32"

// OrbitControlsBuilderOption is a functional option for configuring OrbitControls.
type OrbitControlsBuilderOption func(*orbitControls)

// WithOrbitTarget sets the initial orbit target.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithOrbitTarget(x, y, z float32) OrbitControlsBuilderOption {
	return func(oc *orbitControls) {
		oc.target = mgl32.Vec3{x, y, z}
	}
}

// WithDamping enables inertia with the given damping factor.
//
// Parameters:
//   - factor: fraction of the pending motion applied per frame, in (0, 1]
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithDamping(factor float32) OrbitControlsBuilderOption {
	return func(oc *orbitControls) {
		oc.enableDamping = true
		if factor > 0 && factor <= 1 {
			oc.dampingFactor = factor
		}
	}
}

// WithDistanceLimits clamps how close and how far the camera may get from the target.
//
// Parameters:
//   - min: minimum distance
//   - max: maximum distance
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithDistanceLimits(min, max float32) OrbitControlsBuilderOption {
	return func(oc *orbitControls) {
		oc.minDistance = min
		oc.maxDistance = max
	}
}

// WithPolarLimits clamps the angle from the +Y axis, in radians.
//
// Parameters:
//   - min: minimum polar angle
//   - max: maximum polar angle
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithPolarLimits(min, max float32) OrbitControlsBuilderOption {
	return func(oc *orbitControls) {
		oc.minPolarAngle = min
		oc.maxPolarAngle = max
	}
}

// WithSpeeds sets the rotate, zoom and pan speed multipliers.
//
// Parameters:
//   - rotate, zoom, pan: speed multipliers (1 = default)
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithSpeeds(rotate, zoom, pan float32) OrbitControlsBuilderOption {
	return func(oc *orbitControls) {
		oc.rotateSpeed = rotate
		oc.zoomSpeed = zoom
		oc.panSpeed = pan
	}
}
