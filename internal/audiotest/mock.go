// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"

	"github.com/ik5/audmix/audio"
)

// MockSource is a test helper that generates audio data for testing.
// It implements audio.Source and audio.Rewinder.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	waveform     func(sample int, channel int) float32
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
// waveform is a function that generates sample values given sample index and channel.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		return 0.0
	})
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Rewind resets the generated sample counter to allow re-reading.
func (m *MockSource) Rewind() error {
	m.generated = 0
	return nil
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesWanted := len(dst) / m.channels
	framesLeft := m.totalSamples - m.generated
	frames := min(framesWanted, framesLeft)

	for f := range frames {
		for c := range m.channels {
			dst[f*m.channels+c] = m.waveform(m.generated+f, c)
		}
	}
	m.generated += frames

	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}

// ConstantData builds a decoded stereo clip with every sample set to value.
func ConstantData(sampleRate, frames int, value float32) *audio.SampleData {
	samples := make([]float32, frames*2)
	for i := range samples {
		samples[i] = value
	}
	data, err := audio.NewSampleData(sampleRate, 2, samples)
	if err != nil {
		panic(err)
	}
	return data
}

// RampData builds a decoded stereo clip where sample i has value
// start + float32(i)*step, distinct per interleaved index. Useful for
// asserting exact cursor positions.
func RampData(sampleRate, frames int, start, step float32) *audio.SampleData {
	samples := make([]float32, frames*2)
	for i := range samples {
		samples[i] = start + float32(i)*step
	}
	data, err := audio.NewSampleData(sampleRate, 2, samples)
	if err != nil {
		panic(err)
	}
	return data
}

// SineData builds a decoded stereo clip carrying the same sine wave on
// both sides.
func SineData(sampleRate, frames int, frequency float64) *audio.SampleData {
	samples := make([]float32, frames*2)
	for f := range frames {
		t := float64(f) / float64(sampleRate)
		v := float32(math.Sin(2 * math.Pi * frequency * t))
		samples[2*f] = v
		samples[2*f+1] = v
	}
	data, err := audio.NewSampleData(sampleRate, 2, samples)
	if err != nil {
		panic(err)
	}
	return data
}
