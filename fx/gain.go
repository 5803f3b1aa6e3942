// SPDX-License-Identifier: EPL-2.0

// Package fx contains insert effects for mixer channels. Every effect
// implements mixer.Effect and runs its Process on the render thread, so
// none of them allocate or lock there.
package fx

import (
	"math"
	"sync/atomic"
)

// Gain scales a block by a factor settable from the control context.
type Gain struct {
	bits atomic.Uint32
}

func NewGain(gain float32) *Gain {
	g := &Gain{}
	g.Set(gain)
	return g
}

func (g *Gain) Set(gain float32) { g.bits.Store(math.Float32bits(gain)) }
func (g *Gain) Get() float32     { return math.Float32frombits(g.bits.Load()) }

func (g *Gain) Process(buf []float32) {
	gain := g.Get()
	if gain == 1 {
		return
	}
	for i := range buf {
		buf[i] *= gain
	}
}
