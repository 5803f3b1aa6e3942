// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"io"

	"github.com/ik5/audmix/audio"
)

// StreamChannel plays blocks pulled from an externally decoded stream. The
// source runs at the device rate; rate conversion for streams happens in
// the decoder layer, not here.
//
// Looping requires the source to implement audio.Rewinder; otherwise the
// channel finishes at end of stream regardless of the loop flag.
type StreamChannel struct {
	ChannelState

	src  audio.Source
	mono bool

	// scratch for source reads; sized up front so the render path does not
	// allocate. Grows only if a callback requests more than maxBlock.
	readBuf []float32
}

// NewStreamChannel wraps src. maxBlock is the largest sample count one
// callback may request; it sizes the internal read buffer.
func NewStreamChannel(src audio.Source, maxBlock int) *StreamChannel {
	if maxBlock <= 0 {
		maxBlock = 4096
	}
	c := &StreamChannel{
		src:     src,
		mono:    src.Channels() == 1,
		readBuf: make([]float32, maxBlock),
	}
	c.init()
	return c
}

func (c *StreamChannel) Produce(dst []float32, count, outputRate int) {
	if c.Paused() || c.ChannelState.Finished() {
		silence(dst, count)
		return
	}

	// Samples to pull from the source: half as many when it is mono.
	want := count
	if c.mono {
		want = count / 2
	}
	if len(c.readBuf) < want {
		c.readBuf = make([]float32, want)
	}

	got := 0
	for got < want {
		n, err := c.src.ReadSamples(c.readBuf[got:want])
		got += n
		if err == io.EOF {
			if c.Looping() {
				if rw, ok := c.src.(audio.Rewinder); ok && rw.Rewind() == nil {
					continue
				}
			}
			c.finished.Store(true)
			break
		}
		if err != nil {
			c.finished.Store(true)
			break
		}
		if n == 0 {
			break
		}
	}

	lGain, rGain := c.gains()

	if c.mono {
		for f := range got {
			dst[2*f] = lGain * c.readBuf[f]
			dst[2*f+1] = rGain * c.readBuf[f]
		}
		silence(dst[2*got:], count-2*got)
	} else {
		for i := range got {
			if i&1 == 0 {
				dst[i] = lGain * c.readBuf[i]
			} else {
				dst[i] = rGain * c.readBuf[i]
			}
		}
		silence(dst[got:], count-got)
	}

	c.runInserts(dst[:count])
}
