package math

// Lerp returns the linear interpolation between a and b by t.
// t is not clamped; t outside [0,1] extrapolates.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Floor returns the largest integer value less than or equal to v.
func Floor(v float32) float32 {
	i := float32(int32(v))
	if v < 0 && i != v {
		return i - 1
	}
	return i
}

// Abs returns the absolute value of v.
func Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
