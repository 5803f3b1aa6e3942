// SPDX-License-Identifier: EPL-2.0

package utils

// LinearInterpolate blends between two neighboring samples.
// x is the fractional position between y1 and y2 (0 <= x <= 1).
func LinearInterpolate(y1, y2, x float32) float32 {
	return y1 + (y2-y1)*x
}

// Clamp limits x to [-1, 1].
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
