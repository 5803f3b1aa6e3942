// SPDX-License-Identifier: EPL-2.0

package mixer

import "log/slog"

// DefaultWarmupCallbacks is how many consecutive callbacks must pass
// without an allocation before the cache locks itself down.
const DefaultWarmupCallbacks = 100

// SampleCache hands out one reusable scratch buffer per tree depth. All
// calls happen on the render context; buffers are valid only until the end
// of the current callback.
//
// Allocation policy: the first request at a depth allocates exactly the
// requested length; an undersized buffer is regrown to twice the request;
// once a configurable number of consecutive callbacks pass without any
// growth, the cache enters no-allocation mode. An undersized request in
// that mode is an anomaly: rather than allocate (which would break the
// real-time promise the mode exists for), the cache logs a diagnostic,
// drops back to warm-up, and reports the buffer as unavailable so the
// caller substitutes one callback of silence.
type SampleCache struct {
	buffers [][]float32

	warmup    int // callbacks without growth required to lock down
	quiet     int // consecutive callbacks without growth so far
	noAlloc   bool
	allocated bool // growth happened during the current callback

	log *slog.Logger
}

// NewSampleCache creates a cache for depths 0..maxDepth. A warmup of 0
// uses DefaultWarmupCallbacks.
func NewSampleCache(maxDepth, warmup int, log *slog.Logger) *SampleCache {
	if warmup <= 0 {
		warmup = DefaultWarmupCallbacks
	}
	if log == nil {
		log = slog.Default()
	}
	return &SampleCache{
		buffers: make([][]float32, maxDepth+1),
		warmup:  warmup,
		log:     log,
	}
}

// Acquire returns a buffer of at least length samples for the given tree
// depth, or nil when the cache is locked down and cannot satisfy the
// request this callback.
func (c *SampleCache) Acquire(depth, length int) []float32 {
	if depth < 0 || depth >= len(c.buffers) || length <= 0 {
		return nil
	}

	buf := c.buffers[depth]
	if len(buf) >= length {
		return buf[:length]
	}

	if c.noAlloc {
		c.log.Warn("sample cache: allocation request while locked down, degrading to silence",
			"depth", depth, "have", len(buf), "want", length)
		c.noAlloc = false
		c.quiet = 0
		return nil
	}

	if buf == nil {
		// First use at this depth: no over-provisioning.
		buf = make([]float32, length)
	} else {
		// Regrow with headroom to amortize the next growth.
		buf = make([]float32, 2*length)
	}
	c.buffers[depth] = buf
	c.allocated = true

	return buf[:length]
}

// EndCallback must be called once at the end of every render callback; it
// drives the warm-up counter and the switch into no-allocation mode.
func (c *SampleCache) EndCallback() {
	if c.allocated {
		c.quiet = 0
		c.allocated = false
		return
	}
	if c.noAlloc {
		return
	}
	c.quiet++
	if c.quiet > c.warmup {
		c.noAlloc = true
	}
}

// Locked reports whether the cache is in no-allocation mode.
func (c *SampleCache) Locked() bool { return c.noAlloc }
