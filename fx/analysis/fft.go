// SPDX-License-Identifier: EPL-2.0

// Package analysis provides the small frequency-domain toolbox used by the
// spectrum tap: an in-place radix-2 FFT over complex64 frames and a Hann
// window.
package analysis

import (
	"math"
	"math/cmplx"
)

// HannWindow returns the Hann coefficients for a frame of the given size.
func HannWindow(size int) []float32 {
	w := make([]float32, size)
	n := float64(size)
	for i := range w {
		w[i] = float32(0.5 * (1 - math.Cos(2*math.Pi*float64(i)/(n-1))))
	}
	return w
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// FFT runs an in-place iterative radix-2 transform. len(data) must be a
// power of two.
func FFT(data []complex64) {
	n := len(data)
	if n < 2 {
		return
	}

	// Bit-reversal permutation.
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j &^= bit
		}
		j |= bit
		if i < j {
			data[i], data[j] = data[j], data[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		angle := -2 * math.Pi / float64(length)
		wl := complex64(cmplx.Exp(complex(0, angle)))
		for start := 0; start < n; start += length {
			w := complex64(1)
			half := length / 2
			for k := range half {
				u := data[start+k]
				v := data[start+k+half] * w
				data[start+k] = u + v
				data[start+k+half] = u - v
				w *= wl
			}
		}
	}
}

// Magnitudes fills mags with the normalized magnitude of the first
// len(mags) bins (at most len(data)/2+1 are meaningful).
func Magnitudes(data []complex64, mags []float64) {
	scale := 2.0 / float64(len(data))
	for i := range mags {
		re := float64(real(data[i]))
		im := float64(imag(data[i]))
		mags[i] = math.Sqrt(re*re+im*im) * scale
	}
}
