// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"sync/atomic"
)

// DefaultEditQueueSize bounds how many structural edits one node can queue
// between two callbacks.
const DefaultEditQueueSize = 64

type editOp uint8

const (
	editAdd editOp = iota
	editRemove
)

type edit struct {
	op editOp
	ch Channel
}

// MixChannel is an internal tree node: it sums the output of its children
// into its own block. Children are referenced, not owned; a finished child
// is dropped at the end of the callback that observed it.
//
// Structural edits never touch the child list directly. They go through a
// bounded queue that Synchronize drains on the render context, so the
// control side queues without blocking and the render side never waits.
type MixChannel struct {
	ChannelState

	name  string
	depth atomic.Int32
	muted atomic.Bool

	cache       *SampleCache
	maxChildren int

	// children is owned by the render context; only Synchronize and
	// Produce touch it.
	children []Channel
	edits    chan edit
}

// NewMixChannel creates a detached mix node. Nodes are normally created
// through Tree, which wires the shared cache and depth bookkeeping.
func NewMixChannel(name string, cache *SampleCache, maxChildren, editQueue int) *MixChannel {
	if maxChildren <= 0 {
		maxChildren = 64
	}
	if editQueue <= 0 {
		editQueue = DefaultEditQueueSize
	}
	m := &MixChannel{
		name:        name,
		cache:       cache,
		maxChildren: maxChildren,
		edits:       make(chan edit, editQueue),
	}
	m.init()
	return m
}

func (m *MixChannel) Name() string { return m.name }

// Depth is the node's distance from the root; it selects the scratch
// buffer the node mixes into.
func (m *MixChannel) Depth() int        { return int(m.depth.Load()) }
func (m *MixChannel) setDepth(d int)    { m.depth.Store(int32(d)) }
func (m *MixChannel) Muted() bool       { return m.muted.Load() }
func (m *MixChannel) SetMuted(mut bool) { m.muted.Store(mut) }

// AddInput queues ch for attachment. It reports false when the edit queue
// is full; width limits are enforced again when the edit is applied.
func (m *MixChannel) AddInput(ch Channel) bool {
	return m.queue(edit{op: editAdd, ch: ch})
}

// RemoveInput queues detachment of ch. The child keeps playing until the
// next callback's Synchronize observes the edit.
func (m *MixChannel) RemoveInput(ch Channel) bool {
	return m.queue(edit{op: editRemove, ch: ch})
}

func (m *MixChannel) queue(e edit) bool {
	select {
	case m.edits <- e:
		return true
	default:
		return false
	}
}

// Synchronize applies all queued edits, then recurses into child mix
// nodes. The driver calls it on the root exactly once per callback, before
// Produce, so edits land atomically between blocks.
func (m *MixChannel) Synchronize() {
	for {
		select {
		case e := <-m.edits:
			switch e.op {
			case editAdd:
				if len(m.children) < m.maxChildren {
					m.children = append(m.children, e.ch)
				}
			case editRemove:
				m.remove(e.ch)
			}
		default:
			m.syncChildren()
			return
		}
	}
}

func (m *MixChannel) syncChildren() {
	for _, ch := range m.children {
		if sub, ok := ch.(*MixChannel); ok {
			sub.Synchronize()
		}
	}
}

func (m *MixChannel) remove(ch Channel) {
	for i, c := range m.children {
		if c == ch {
			m.children = append(m.children[:i], m.children[i+1:]...)
			return
		}
	}
}

// ChildCount is the number of attached children as of the last
// Synchronize. Render context only.
func (m *MixChannel) ChildCount() int { return len(m.children) }

func (m *MixChannel) Produce(dst []float32, count, outputRate int) {
	if m.Paused() || m.ChannelState.Finished() {
		silence(dst, count)
		return
	}

	scratch := m.cache.Acquire(m.Depth()+1, count)
	if scratch == nil {
		// Cache lockdown anomaly: this node degrades to silence for one
		// callback; the cache already logged it.
		silence(dst, count)
		return
	}

	silence(dst, count)
	for _, ch := range m.children {
		ch.Produce(scratch, count, outputRate)
		for i := range count {
			dst[i] += scratch[i]
		}
	}

	// The node's own volume applies once, after the sum, never per child.
	gain := m.Volume()
	if m.muted.Load() {
		gain = 0
	}
	if gain != 1 {
		for i := range count {
			dst[i] *= gain
		}
	}

	m.reapFinished()
	m.runInserts(dst[:count])
}

// reapFinished drops children that reported themselves finished during
// this callback.
func (m *MixChannel) reapFinished() {
	kept := m.children[:0]
	for _, ch := range m.children {
		if !ch.Finished() {
			kept = append(kept, ch)
		}
	}
	for i := len(kept); i < len(m.children); i++ {
		m.children[i] = nil
	}
	m.children = kept
}
