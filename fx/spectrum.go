// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"github.com/ik5/audmix/fx/analysis"
	"github.com/ik5/audmix/swapbuf"
)

// SpectrumTap is a pass-through insert that publishes windowed
// complex-valued frames of the signal it sees. The render thread is the
// single writer into the swap buffer; any number of background Analyzer
// readers may consume frames without ever making the render thread wait
// on them.
type SpectrumTap struct {
	frameSize int
	window    []float32
	accum     []float32 // mono fold of the stereo signal
	pos       int
	frames    *swapbuf.Buffer[complex64]
}

// NewSpectrumTap creates a tap publishing frames of frameSize samples.
// frameSize must be a power of two.
func NewSpectrumTap(frameSize int) (*SpectrumTap, error) {
	if !analysis.IsPowerOfTwo(frameSize) {
		return nil, ErrFrameSize
	}
	return &SpectrumTap{
		frameSize: frameSize,
		window:    analysis.HannWindow(frameSize),
		accum:     make([]float32, frameSize),
		frames:    swapbuf.New[complex64](frameSize),
	}, nil
}

// Frames exposes the underlying exchange, for wiring custom consumers.
func (s *SpectrumTap) Frames() *swapbuf.Buffer[complex64] { return s.frames }

// Process folds the interleaved stereo block to mono, and every time a
// full frame accumulates, windows it and publishes it. The signal itself
// passes through untouched.
func (s *SpectrumTap) Process(buf []float32) {
	for i := 0; i+1 < len(buf); i += 2 {
		s.accum[s.pos] = 0.5 * (buf[i] + buf[i+1])
		s.pos++
		if s.pos == s.frameSize {
			s.publish()
			s.pos = 0
		}
	}
}

func (s *SpectrumTap) publish() {
	w := s.frames.BeginWrite()
	for i, v := range s.accum {
		w[i] = complex(v*s.window[i], 0)
	}
	s.frames.EndWrite()
}

// Analyzer consumes tap frames off the render thread and turns them into
// magnitude spectra.
type Analyzer struct {
	frames *swapbuf.Buffer[complex64]
	work   []complex64
	mags   []float64
}

// NewAnalyzer builds an analyzer over the tap's published frames. Each
// Analyzer owns its scratch; create one per consuming goroutine.
func NewAnalyzer(tap *SpectrumTap) *Analyzer {
	n := tap.frames.Len()
	return &Analyzer{
		frames: tap.frames,
		work:   make([]complex64, n),
		mags:   make([]float64, n/2+1),
	}
}

// Snapshot copies the latest published frame out of the exchange (keeping
// the read session short), runs the FFT on the copy and returns the
// magnitude bins. The returned slice is reused by the next Snapshot.
func (a *Analyzer) Snapshot() []float64 {
	session := a.frames.BeginRead()
	copy(a.work, session.Data())
	session.End()

	analysis.FFT(a.work)
	analysis.Magnitudes(a.work, a.mags)
	return a.mags
}

// BinFrequency maps a magnitude bin index to Hz for the given sample
// rate.
func (a *Analyzer) BinFrequency(bin, sampleRate int) float64 {
	return float64(bin) * float64(sampleRate) / float64(len(a.work))
}
