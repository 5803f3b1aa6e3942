// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audmix/audio"
)

// oggReader is the slice of oggvorbis.Reader the source needs; tests
// substitute their own.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// source wraps an oggvorbis.Reader to implement audio.Source. When the
// input reader can seek, the source also implements audio.Rewinder by
// reopening the stream from the start.
type source struct {
	dec        oggReader
	rs         io.ReadSeeker
	sampleRate int
	channels   int
	frameBuf   []float32
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.frameBuf) }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// oggvorbis counts frames, not samples.
	framesRequested := len(dst) / s.channels
	if cap(s.frameBuf) < framesRequested*s.channels {
		s.frameBuf = make([]float32, framesRequested*s.channels)
	}
	s.frameBuf = s.frameBuf[:framesRequested*s.channels]

	framesRead, err := s.dec.Read(s.frameBuf)
	if framesRead == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	samplesRead := framesRead * s.channels
	copy(dst, s.frameBuf[:samplesRead])

	return samplesRead, err
}

// Rewind reopens the Ogg stream from the start.
func (s *source) Rewind() error {
	if s.rs == nil {
		return ErrNotSeekable
	}
	if _, err := s.rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	dec, err := oggvorbis.NewReader(s.rs)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	s.dec = dec
	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	rs, _ := r.(io.ReadSeeker)

	return &source{
		dec:        dec,
		rs:         rs,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		frameBuf:   make([]float32, 4096),
	}, nil
}
