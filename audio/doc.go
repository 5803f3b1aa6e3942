// SPDX-License-Identifier: EPL-2.0

// Package audio defines the seam between decoders and the mixing engine.
//
// This package contains the shared audio-data building blocks:
//   - Source interface for streaming audio input
//   - SampleData for fully decoded, immutable clips
//   - Resampler for load-time sample rate conversion
//   - Format registry for decoder registration
//
// # Source Interface
//
// The Source interface is implemented by every decoder in formats/:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Sources stream interleaved float32 samples in [-1.0, 1.0] and report
// io.EOF when exhausted. Decoders that can seek back to the beginning also
// implement Rewinder, which the mixer requires for looping streams.
//
// # Decoded Clips
//
// SampleData holds a clip decoded up front, which is what the mixer's
// variable-rate channels play from:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	clip, _ := audio.LoadStereo(src, 48000)
//
// LoadStereo resamples to the engine rate and upmixes mono, so the render
// path never converts formats. SampleData is immutable after construction:
// many channels may read the same clip concurrently.
//
// # Resampling
//
// The Resampler changes the sample rate of a stream using cubic
// interpolation. It is a load-time tool; the render callback uses the
// mixer's own interpolating channel instead, because exact pause/resume and
// loop cursor semantics live there.
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// This normalized format makes it easy to sum channels without worrying
// about bit depths; the engine clamps once, at the device boundary.
//
// # Error Handling
//
// Streaming functions return io.EOF when no more data is available. Other
// errors indicate problems with the source or processing:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
package audio
