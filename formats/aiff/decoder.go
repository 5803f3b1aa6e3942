// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audmix/audio"
)

// pcmReader is the slice of aiff.Decoder the source needs; tests substitute
// their own.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps a go-audio aiff.Decoder to implement audio.Source. When the
// underlying reader can seek, the source also implements audio.Rewinder.
type source struct {
	dec      pcmReader
	rs       io.ReadSeeker
	bitDepth int
	intBuf   *goaudio.IntBuffer

	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	scale := pcmScale(s.bitDepth)
	for i := range n {
		dst[i] = float32(s.intBuf.Data[i]) / scale
	}

	if n < len(dst) && err == nil {
		return n, io.EOF
	}
	return n, err
}

// Rewind seeks back to the file start and reparses the headers.
func (s *source) Rewind() error {
	if s.rs == nil {
		return ErrNotSeekable
	}
	if _, err := s.rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	dec := aiff.NewDecoder(s.rs)
	if !dec.IsValidFile() {
		return ErrNotAiffFile
	}
	dec.ReadInfo()
	s.dec = dec
	return nil
}

func pcmScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 16:
		return 32768.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires an io.ReadSeeker; buffer non-seekable input.
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.SampleRate <= 0 || format.NumChannels <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	return &source{
		dec:        dec,
		rs:         rs,
		bitDepth:   int(dec.BitDepth),
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
	}, nil
}
