package common

// Coalesce returns the first of values that is not the zero value of T, or the zero value.
// Sampler descriptors use it to fill fields a texture left unset.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
