// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// SampleData is a fully decoded, immutable audio clip: interleaved float32
// samples in [-1,1] at a fixed sample rate. Once handed to the mixer it must
// never be mutated; channels read it concurrently with zero copies.
type SampleData struct {
	sampleRate int
	channels   int
	samples    []float32
}

// NewSampleData validates and wraps decoded samples. The slice is retained,
// not copied; the caller gives up ownership.
func NewSampleData(sampleRate, channels int, samples []float32) (*SampleData, error) {
	if sampleRate <= 0 {
		return nil, ErrZeroSampleRate
	}
	if channels != 1 && channels != 2 {
		return nil, ErrBadChannelCount
	}
	if len(samples) == 0 {
		return nil, ErrEmptySource
	}
	if len(samples)%channels != 0 {
		return nil, ErrPartialFrame
	}

	return &SampleData{
		sampleRate: sampleRate,
		channels:   channels,
		samples:    samples,
	}, nil
}

func (d *SampleData) SampleRate() int    { return d.sampleRate }
func (d *SampleData) Channels() int      { return d.channels }
func (d *SampleData) Samples() []float32 { return d.samples }

// Frames returns the number of per-channel sample frames.
func (d *SampleData) Frames() int { return len(d.samples) / d.channels }

// LoadAll drains src into a SampleData at the source's own rate and
// channel layout.
func LoadAll(src Source) (*SampleData, error) {
	buf := make([]float32, max(src.BufSize(), 4096))
	samples := make([]float32, 0, len(buf))

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	return NewSampleData(src.SampleRate(), src.Channels(), samples)
}

// LoadStereo drains src into stereo SampleData at targetRate, resampling
// with cubic interpolation and upmixing mono by duplicating the channel.
// This is the load-time path; it allocates freely and must never be called
// from the render callback.
func LoadStereo(src Source, targetRate int) (*SampleData, error) {
	if targetRate <= 0 {
		return nil, ErrZeroSampleRate
	}

	var pipeline Source = src
	if src.SampleRate() != targetRate {
		pipeline = NewResampler(src, targetRate)
	}

	data, err := LoadAll(pipeline)
	if err != nil {
		return nil, err
	}
	if data.channels == 2 {
		return data, nil
	}

	// Mono clip: expand each frame into an identical left/right pair.
	stereo := make([]float32, len(data.samples)*2)
	for i, s := range data.samples {
		stereo[2*i] = s
		stereo[2*i+1] = s
	}

	return NewSampleData(targetRate, 2, stereo)
}
