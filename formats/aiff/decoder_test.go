// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// mockPCMReader simulates the aiff.Decoder for testing
type mockPCMReader struct {
	sampleRate   int
	channels     int
	samples      []int
	offset       int
	returnErrors bool
}

func (m *mockPCMReader) Format() *goaudio.Format {
	return &goaudio.Format{
		SampleRate:  m.sampleRate,
		NumChannels: m.channels,
	}
}

func (m *mockPCMReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := min(len(buf.Data), len(m.samples)-m.offset)
	copy(buf.Data, m.samples[m.offset:m.offset+n])
	m.offset += n

	if m.offset >= len(m.samples) {
		return n, io.EOF
	}
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	invalidData := []byte("This is not AIFF data")

	decoder := Decoder{}
	if _, err := decoder.Decode(bytes.NewReader(invalidData)); !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	if _, err := decoder.Decode(bytes.NewReader(nil)); err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestSource_ReadConverts16Bit(t *testing.T) {
	t.Parallel()

	s := &source{
		dec:        &mockPCMReader{sampleRate: 44100, channels: 2, samples: []int{16384, -16384, 32767, -32768}},
		bitDepth:   16,
		sampleRate: 44100,
		channels:   2,
	}

	buf := make([]float32, 4)
	n, err := s.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples: %v", err)
	}
	if n != 4 {
		t.Fatalf("n = %d, want 4", n)
	}
	want := []float32{0.5, -0.5, 32767.0 / 32768.0, -1.0}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestSource_ReadConverts24Bit(t *testing.T) {
	t.Parallel()

	s := &source{
		dec:        &mockPCMReader{sampleRate: 48000, channels: 1, samples: []int{4194304}},
		bitDepth:   24,
		sampleRate: 48000,
		channels:   1,
	}

	buf := make([]float32, 1)
	if _, err := s.ReadSamples(buf); err != nil && err != io.EOF {
		t.Fatalf("ReadSamples: %v", err)
	}
	if buf[0] != 0.5 {
		t.Errorf("buf[0] = %v, want 0.5", buf[0])
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	s := &source{
		dec:      &mockPCMReader{returnErrors: true},
		bitDepth: 16,
	}

	if _, err := s.ReadSamples(make([]float32, 8)); err == nil {
		t.Error("ReadSamples error = nil, want propagated error")
	}
}

func TestSource_RewindNeedsSeeker(t *testing.T) {
	t.Parallel()

	s := &source{dec: &mockPCMReader{}, bitDepth: 16}
	if err := s.Rewind(); !errors.Is(err, ErrNotSeekable) {
		t.Errorf("Rewind err = %v, want ErrNotSeekable", err)
	}
}
