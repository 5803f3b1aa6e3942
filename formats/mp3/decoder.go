// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audmix/audio"
)

// pcmReader is the slice of gomp3.Decoder the source needs; tests
// substitute their own.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// source wraps a go-mp3 decoder to implement audio.Source. go-mp3 can seek
// within its decoded stream, so the source also implements audio.Rewinder.
type source struct {
	dec        pcmReader
	sampleRate int
	channels   int
	buf        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 } // sample capacity, not bytes

func (s *source) ReadSamples(dst []float32) (int, error) {
	// go-mp3 returns 16-bit little-endian PCM bytes, stereo interleaved.
	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	n, err := s.dec.Read(s.buf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	samples := n / 2
	for i := range samples {
		low := uint16(s.buf[2*i])
		high := uint16(s.buf[2*i+1])
		dst[i] = float32(int16(low|(high<<8))) / 32768.0
	}

	return samples, err
}

// Rewind seeks the decoded stream back to the first sample.
func (s *source) Rewind() error {
	sk, ok := s.dec.(io.Seeker)
	if !ok {
		return ErrNotSeekable
	}
	if _, err := sk.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// go-mp3 always outputs stereo.
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   2,
		buf:        make([]byte, 8192),
	}, nil
}
