// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audmix/audio"
)

// pcmReader is the slice of wav.Decoder the source needs; tests substitute
// their own.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps a go-audio wav.Decoder to implement audio.Source. When the
// underlying reader can seek, the source also implements audio.Rewinder,
// which the mixer needs for looped stream playback.
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

// Rewind seeks back to the file start and reparses the headers, so the
// next ReadSamples delivers the first sample again.
func (s *source) Rewind() error {
	if s.rs == nil {
		return ErrNotSeekable
	}
	if _, err := s.rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	dec := wav.NewDecoder(s.rs)
	if !dec.IsValidFile() {
		return ErrNotWavFile
	}
	s.dec = dec
	return nil
}

// pcmScale is the normalization divisor for a signed PCM bit depth.
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
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.SampleRate <= 0 || format.NumChannels <= 0 {
		return nil, ErrUnsupportedWavLayout
	}

	return &source{
		dec:        dec,
		rs:         rs,
		bitDepth:   int(dec.BitDepth),
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
	}, nil
}
