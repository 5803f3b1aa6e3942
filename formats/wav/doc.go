// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio decoding and encoding.
//
// Decoding is backed by github.com/go-audio/wav and supports PCM at 8, 16,
// 24 and 32 bits, mono and stereo, any sample rate. The decoder returns an
// audio.Source delivering float32 samples in [-1.0, 1.0]; when the input
// reader can seek (or had to be buffered in memory), the source also
// implements audio.Rewinder, so looped stream playback through the mixer
// works.
//
//	decoder := wav.Decoder{}
//	file, _ := os.Open("audio.wav")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // handle error
//	}
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Encoding writes 16-bit PCM, mono or interleaved stereo:
//
//	samples := []int16{100, -100, 200, -200}
//	file, _ := os.Create("output.wav")
//	err := wav.WriteWAV16(file, 48000, 2, samples)
//
// # Error Handling
//
//   - ErrNotWavFile: the input is not a valid WAV file
//   - ErrUnsupportedWavLayout: channel or header layout not supported
//   - ErrNotSeekable: Rewind on a source whose reader cannot seek
package wav
