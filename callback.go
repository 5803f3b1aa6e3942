// SPDX-License-Identifier: EPL-2.0

package audmix

import "github.com/ik5/audmix/utils"

// RenderCallback runs one mix cycle: it pulls requested interleaved stereo
// samples through the tree, clamps them and writes them into the device
// ring. The output backend calls it periodically from its own thread; no
// Engine control method may run on that thread.
//
// When the sample cache cannot provide the root buffer the cycle degrades
// to one block of silence, still advancing the ring cursor so the output
// clock never stalls.
func (e *Engine) RenderCallback(requested int) {
	if requested <= 0 {
		return
	}
	// A block at full ring capacity would wrap the write cursor onto the
	// read cursor and read back as empty; half the ring is the block cap.
	if requested > len(e.device)/2 {
		requested = len(e.device) / 2
	}

	buf := e.cache.Acquire(0, requested)
	if buf == nil {
		e.writeSilence(requested)
		e.cache.EndCallback()
		return
	}

	e.root.Synchronize()
	e.root.Produce(buf, requested, e.cfg.SampleRate)

	for _, v := range buf[:requested] {
		e.device[e.writePos] = utils.Clamp(v)
		e.writePos++
		if e.writePos == len(e.device) {
			e.writePos = 0
		}
	}

	e.cache.EndCallback()
}

func (e *Engine) writeSilence(count int) {
	for range count {
		e.device[e.writePos] = 0
		e.writePos++
		if e.writePos == len(e.device) {
			e.writePos = 0
		}
	}
}

// ReadDevice copies rendered samples out of the ring for the output
// backend, following the write cursor. It returns how many samples were
// copied; fewer than len(dst) means the renderer has not produced enough
// yet.
func (e *Engine) ReadDevice(dst []float32) int {
	n := 0
	for n < len(dst) && e.readPos != e.writePos {
		dst[n] = e.device[e.readPos]
		e.readPos++
		if e.readPos == len(e.device) {
			e.readPos = 0
		}
		n++
	}
	return n
}

// DeviceBufferSize is the ring capacity in samples.
func (e *Engine) DeviceBufferSize() int { return len(e.device) }

// Buffered is how many samples are waiting in the ring.
func (e *Engine) Buffered() int {
	d := e.writePos - e.readPos
	if d < 0 {
		d += len(e.device)
	}
	return d
}
