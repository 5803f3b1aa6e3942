// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audmix/utils"
)

// Resampler streams from src to a target sample rate using cubic
// interpolation over a sliding four-frame window. It preserves the channel
// count and applies a one-pole low-pass when downsampling.
//
// This is an offline (load-time) converter. The render path uses the
// mixer's own variable-rate channel instead, which owns exact cursor
// semantics that a streaming resampler cannot provide.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames consumed per output frame
	channels int

	// window[0] = t-1, window[1] = t0, window[2] = t+1, window[3] = t+2
	window    [4][]float32
	haveFrame [4]bool
	primed    bool
	pos       float64
	eof       bool

	frameBuf []float32

	lpState []float32
	lpAlpha float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		ratio:    float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		frameBuf: make([]float32, channels),
		lpState:  make([]float32, channels),
	}
	// Crude anti-aliasing when decimating. Good enough for load-time
	// conversion of speech and effects; not a brick-wall filter.
	if r.ratio > 1.0 {
		r.lpAlpha = 0.5
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls one interleaved frame from the source into dst,
// filtering it when the low-pass is active.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	n, err := r.src.ReadSamples(r.frameBuf)
	if n > 0 {
		copy(dst, r.frameBuf[:n])
		if r.lpAlpha > 0 {
			for c := range r.channels {
				dst[c] = r.lpAlpha*dst[c] + (1-r.lpAlpha)*r.lpState[c]
				r.lpState[c] = dst[c]
			}
		}
	}
	if err == io.EOF {
		r.eof = true
		return n > 0, nil
	}
	if err != nil {
		return n > 0, fmt.Errorf("%w", err)
	}
	return n > 0, nil
}

// advance shifts the window one frame to the left and fetches a new t+2.
func (r *Resampler) advance() error {
	copy(r.window[0], r.window[1])
	copy(r.window[1], r.window[2])
	copy(r.window[2], r.window[3])
	r.haveFrame[0] = r.haveFrame[1]
	r.haveFrame[1] = r.haveFrame[2]
	r.haveFrame[2] = r.haveFrame[3]

	if r.eof {
		r.haveFrame[3] = false
		return nil
	}

	ok, err := r.readFrame(r.window[3])
	r.haveFrame[3] = ok
	return err
}

func (r *Resampler) prime() error {
	for i := range 4 {
		if r.eof {
			// Short sources: duplicate the last real frame.
			if i > 0 {
				copy(r.window[i], r.window[i-1])
				r.haveFrame[i] = true
			}
			continue
		}

		ok, err := r.readFrame(r.window[i])
		if err != nil {
			return err
		}
		if ok {
			r.haveFrame[i] = true
			if i == 0 && r.lpAlpha > 0 {
				copy(r.lpState, r.window[0])
			}
		} else if i == 0 {
			return io.EOF
		} else {
			copy(r.window[i], r.window[i-1])
			r.haveFrame[i] = true
		}
	}
	r.primed = true
	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	frames := len(dst) / r.channels

	for written < frames {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.haveFrame[1] || !r.haveFrame[2] {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		for c := range r.channels {
			y0 := r.window[1][c]
			if r.haveFrame[0] {
				y0 = r.window[0][c]
			}
			y3 := r.window[2][c]
			if r.haveFrame[3] {
				y3 = r.window[3][c]
			}
			dst[written*r.channels+c] = utils.CubicInterpolate(
				y0, r.window[1][c], r.window[2][c], y3, x)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
