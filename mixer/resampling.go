// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"math"
	"sync/atomic"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

// ResamplingChannel plays a fully decoded stereo clip at an arbitrary
// pitch, linearly interpolating between fractional source positions.
//
// The read cursor counts output samples and advances by pitch x doppler per
// written sample; it is mapped into the clip by sourceRate/outputRate. The
// fractional part of the cursor survives pause, resume and loop wrap, so
// playback is phase-exact across callback boundaries.
type ResamplingChannel struct {
	ChannelState

	data  *audio.SampleData
	pitch atomicFloat32

	// floatPos is written only by the render context; the control context
	// reads it for pause snapshots.
	floatPos    atomicUint64Float
	playbackPos atomic.Int64
}

type atomicUint64Float struct{ bits atomic.Uint64 }

func (f *atomicUint64Float) Load() float64   { return math.Float64frombits(f.bits.Load()) }
func (f *atomicUint64Float) Store(v float64) { f.bits.Store(math.Float64bits(v)) }

// NewResamplingChannel wraps a decoded stereo clip. data must have exactly
// two channels; use audio.LoadStereo to prepare it.
func NewResamplingChannel(data *audio.SampleData, pitch float32) *ResamplingChannel {
	c := &ResamplingChannel{data: data}
	c.init()
	if pitch <= 0 {
		pitch = 1
	}
	c.pitch.Store(pitch)
	return c
}

func (c *ResamplingChannel) Pitch() float32 { return c.pitch.Load() }

func (c *ResamplingChannel) SetPitch(p float32) {
	if p > 0 {
		c.pitch.Store(p)
	}
}

// PlaybackPosition is the integer cursor, in output samples.
func (c *ResamplingChannel) PlaybackPosition() int64 { return c.playbackPos.Load() }

// Pause snapshots the integer cursor from the float cursor so that resume
// is exact.
func (c *ResamplingChannel) Pause() {
	c.playbackPos.Store(int64(c.floatPos.Load()))
	c.ChannelState.Pause()
}

// Resume continues from the snapshotted integer position.
func (c *ResamplingChannel) Resume() {
	c.floatPos.Store(float64(c.playbackPos.Load()))
	c.ChannelState.Resume()
}

// Stop rewinds both cursors and finishes the channel; the tree drops it on
// the next synchronize.
func (c *ResamplingChannel) Stop() {
	c.floatPos.Store(0)
	c.playbackPos.Store(0)
	c.ChannelState.Stop()
}

// sampleAt reads the clip at the parity-snapped index, clamped to the
// edges: reads before the start are silence, reads past the end repeat the
// last valid sample of that side.
func sampleAt(samples []float32, idx int) float32 {
	if idx < 0 {
		return 0
	}
	if idx >= len(samples) {
		idx = len(samples) - 2 + (idx & 1)
	}
	return samples[idx]
}

// sampleLerp maps a fractional source position to a value for one side.
// left samples live at even indices, right at odd; the interpolation
// neighbour is therefore two samples away.
func sampleLerp(samples []float32, pos float64, left bool) float32 {
	base := int(pos)
	frac := float32(pos - float64(base))
	if left {
		base &^= 1
	} else {
		base |= 1
	}
	return utils.LinearInterpolate(sampleAt(samples, base), sampleAt(samples, base+2), frac)
}

func (c *ResamplingChannel) Produce(dst []float32, count, outputRate int) {
	if c.Paused() || c.ChannelState.Finished() {
		silence(dst, count)
		return
	}

	samples := c.data.Samples()
	factor := float64(c.data.SampleRate()) / float64(outputRate)
	srcLen := float64(len(samples))
	srcLenOut := srcLen / factor
	step := float64(c.pitch.Load()) * float64(c.doppler.Load())
	lGain, rGain := c.gains()

	pos := c.floatPos.Load()

	for i := range count {
		if pos*factor >= srcLen {
			if !c.Looping() {
				silence(dst[i:], count-i)
				c.finished.Store(true)
				break
			}
			// Wrap modulo the source length in output units; the
			// sub-sample fraction is preserved across the seam.
			pos = math.Mod(pos, srcLenOut)
		}

		if i&1 == 0 {
			dst[i] = lGain * sampleLerp(samples, pos*factor, true)
		} else {
			dst[i] = rGain * sampleLerp(samples, pos*factor, false)
		}
		pos += step
	}

	c.floatPos.Store(pos)
	c.playbackPos.Store(int64(pos))

	c.runInserts(dst[:count])
}
