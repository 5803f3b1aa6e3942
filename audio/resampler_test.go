package audio

import (
	"io"
	"math"
	"testing"
)

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	src := newSilentSource(44100, 2, 1000)
	resampler := NewResampler(src, 8000)

	if resampler.SampleRate() != 8000 {
		t.Errorf("Resampler.SampleRate() = %d, want 8000", resampler.SampleRate())
	}

	if resampler.Channels() != 2 {
		t.Errorf("Resampler.Channels() = %d, want 2", resampler.Channels())
	}
}

func TestResampler_SameRate(t *testing.T) {
	t.Parallel()

	src := newConstantSource(8000, 1, 100, 0.5)
	resampler := NewResampler(src, 8000)

	buf := make([]float32, 100)
	n, err := resampler.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n == 0 {
		t.Fatal("ReadSamples() returned 0 samples")
	}

	for i := range n {
		if math.Abs(float64(buf[i]-0.5)) > 0.1 {
			t.Errorf("buf[%d] = %v, want ≈0.5", i, buf[i])
		}
	}
}

func TestResampler_Downsampling(t *testing.T) {
	t.Parallel()

	// Downsample one second of a 440Hz tone from 44.1kHz to 8kHz.
	src := newSineSource(44100, 1, 44100, 440.0)
	resampler := NewResampler(src, 8000)

	buf := make([]float32, 1024)
	var samples []float32

	for {
		n, err := resampler.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	expected := 8000
	tolerance := 100
	if len(samples) < expected-tolerance || len(samples) > expected+tolerance {
		t.Errorf("got %d samples, want ~%d", len(samples), expected)
	}
}

func TestResampler_Upsampling(t *testing.T) {
	t.Parallel()

	src := newSineSource(8000, 1, 8000, 200.0)
	resampler := NewResampler(src, 44100)

	buf := make([]float32, 1024)
	total := 0

	for {
		n, err := resampler.ReadSamples(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	expected := 44100
	tolerance := 200
	if total < expected-tolerance || total > expected+tolerance {
		t.Errorf("got %d samples, want ~%d", total, expected)
	}
}

func TestResampler_BadDstSize(t *testing.T) {
	t.Parallel()

	src := newSilentSource(44100, 2, 100)
	resampler := NewResampler(src, 8000)

	buf := make([]float32, 33) // not a multiple of 2
	if _, err := resampler.ReadSamples(buf); err != ErrInvalidDstSize {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	src := newSilentSource(44100, 1, 0)
	resampler := NewResampler(src, 8000)

	buf := make([]float32, 64)
	if _, err := resampler.ReadSamples(buf); err != io.EOF {
		t.Errorf("ReadSamples() error = %v, want io.EOF", err)
	}
}
