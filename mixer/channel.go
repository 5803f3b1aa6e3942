// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"math"
	"sync/atomic"
)

// Effect is a post-processing insert applied to a produced block in place.
// Process runs on the render thread and must not allocate or block.
type Effect interface {
	Process(buf []float32)
}

// Channel is anything the mix tree can pull samples from: a playing clip,
// a decoded stream, or a nested mix node.
//
// Produce writes exactly count interleaved stereo samples into dst[:count]
// (silence when paused or finished), at outputRate Hz. It is called only
// from the render context.
type Channel interface {
	Produce(dst []float32, count, outputRate int)
	Finished() bool
	State() *ChannelState

	Stop()
	Pause()
	Resume()
}

// atomicFloat32 stores a float32 bit pattern for cross-context access.
type atomicFloat32 struct{ bits atomic.Uint32 }

func (f *atomicFloat32) Load() float32   { return math.Float32frombits(f.bits.Load()) }
func (f *atomicFloat32) Store(v float32) { f.bits.Store(math.Float32bits(v)) }

// ChannelState is the per-voice state shared by every channel variant:
// volume, stereo balance, loop and pause flags, distance attenuation for
// spatial sources, and the ordered insert-effect chain.
//
// Setters may be called from the control context while the render context
// reads; every field crossing that boundary is atomic. The insert chain is
// the exception: it must be configured before the channel is attached.
type ChannelState struct {
	volume   atomicFloat32
	balance  atomicFloat32
	distAtt  atomicFloat32
	doppler  atomicFloat32
	looping  atomic.Bool
	paused   atomic.Bool
	finished atomic.Bool

	inserts []Effect
}

func (s *ChannelState) init() {
	s.volume.Store(1)
	s.distAtt.Store(1)
	s.doppler.Store(1)
}

func (s *ChannelState) Volume() float32     { return s.volume.Load() }
func (s *ChannelState) SetVolume(v float32) { s.volume.Store(v) }

// Balance is the stereo position in [-1, +1]; 0 is centre.
func (s *ChannelState) Balance() float32 { return s.balance.Load() }

func (s *ChannelState) SetBalance(b float32) {
	if b < -1 {
		b = -1
	} else if b > 1 {
		b = 1
	}
	s.balance.Store(b)
}

func (s *ChannelState) Looping() bool        { return s.looping.Load() }
func (s *ChannelState) SetLooping(loop bool) { s.looping.Store(loop) }

func (s *ChannelState) Paused() bool   { return s.paused.Load() }
func (s *ChannelState) Finished() bool { return s.finished.Load() }

func (s *ChannelState) DistanceAttenuation() float32     { return s.distAtt.Load() }
func (s *ChannelState) SetDistanceAttenuation(a float32) { s.distAtt.Store(a) }

func (s *ChannelState) DopplerRatio() float32     { return s.doppler.Load() }
func (s *ChannelState) SetDopplerRatio(r float32) { s.doppler.Store(r) }

// SetInserts replaces the insert chain. Only valid before the channel is
// attached to the tree.
func (s *ChannelState) SetInserts(fx []Effect) { s.inserts = fx }

func (s *ChannelState) Pause()  { s.paused.Store(true) }
func (s *ChannelState) Resume() { s.paused.Store(false) }
func (s *ChannelState) Stop()   { s.finished.Store(true) }

func (s *ChannelState) State() *ChannelState { return s }

// gains returns the constant-power left/right gains: balance is mapped to
// p in [0,1] and attenuated by sqrt(1-p) / sqrt(p), then by volume and
// distance attenuation.
func (s *ChannelState) gains() (left, right float32) {
	p := (s.balance.Load() + 1) * 0.5
	g := s.volume.Load() * s.distAtt.Load()
	left = g * float32(math.Sqrt(float64(1-p)))
	right = g * float32(math.Sqrt(float64(p)))
	return left, right
}

// runInserts applies the effect chain in order over the filled region.
func (s *ChannelState) runInserts(buf []float32) {
	for _, e := range s.inserts {
		e.Process(buf)
	}
}

// silence writes count zeros.
func silence(dst []float32, count int) {
	for i := range count {
		dst[i] = 0
	}
}
