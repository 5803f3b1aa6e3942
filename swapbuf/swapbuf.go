// SPDX-License-Identifier: EPL-2.0

package swapbuf

import (
	"runtime"
	"sync/atomic"
)

// Buffer exchanges fixed-length arrays between exactly one writer and any
// number of readers without locks. It backs effects that move
// frequency-domain frames between the render thread and background
// analysis (in either direction).
//
// Layout: two rows, each holding two physical slots and a reader count.
// The writer picks a row with no readers and fills the slot that is not
// that row's newest, so a previously published value is never overwritten
// while someone might still be reading it. Publication is two atomic
// stores: slot becomes the row's newest, row becomes the global latest.
//
// A completed read session observes a value no older than the most recent
// write that finished before the session began, and never a torn value: a
// slot is only written while it is not marked newest, and marked newest
// only after the write completed.
//
// The scheme is best-effort, not wait-free: if both rows have readers at
// the instant the writer scans, the writer spins until one clears. Reader
// sessions must therefore be brief — copy out and End; in this engine the
// bound is one callback period.
type Buffer[T any] struct {
	rows   [2]row[T]
	latest atomic.Int32

	// writer-owned between BeginWrite and EndWrite
	writeRow  int32
	writeSlot int32
}

type row[T any] struct {
	readers atomic.Int32
	// Keep the hot counters of the two rows on separate cache lines.
	_      [56]byte
	newest atomic.Int32
	slots  [2][]T
}

// New creates a Buffer whose four slots each hold length elements.
func New[T any](length int) *Buffer[T] {
	b := &Buffer[T]{}
	for r := range b.rows {
		for s := range b.rows[r].slots {
			b.rows[r].slots[s] = make([]T, length)
		}
	}
	return b
}

// Len is the fixed slot length.
func (b *Buffer[T]) Len() int { return len(b.rows[0].slots[0]) }

// BeginWrite returns the slot to fill for the next publication. It scans
// for a row with zero readers, yielding between passes; with short reader
// sessions the first pass succeeds.
//
// Single writer only: concurrent BeginWrite calls are a caller bug.
func (b *Buffer[T]) BeginWrite() []T {
	for {
		for i := range b.rows {
			r := &b.rows[i]
			if r.readers.Load() == 0 {
				b.writeRow = int32(i)
				b.writeSlot = 1 - r.newest.Load()
				return r.slots[b.writeSlot]
			}
		}
		runtime.Gosched()
	}
}

// EndWrite publishes the slot returned by the matching BeginWrite.
func (b *Buffer[T]) EndWrite() {
	b.rows[b.writeRow].newest.Store(b.writeSlot)
	b.latest.Store(b.writeRow)
}

// ReadSession pins one published value for the duration of a read.
type ReadSession[T any] struct {
	row  *row[T]
	data []T
}

// BeginRead captures the latest published row and pins it. The returned
// session stays internally consistent even if a concurrent write
// publishes elsewhere. Call End as soon as the data has been consumed.
func (b *Buffer[T]) BeginRead() ReadSession[T] {
	r := &b.rows[b.latest.Load()]
	r.readers.Add(1)
	return ReadSession[T]{
		row:  r,
		data: r.slots[r.newest.Load()],
	}
}

// Data is the pinned value. Valid until End.
func (s ReadSession[T]) Data() []T { return s.data }

// End releases the pinned row.
func (s ReadSession[T]) End() { s.row.readers.Add(-1) }
