// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF audio decoding.
//
// Decoding is backed by github.com/go-audio/aiff and supports PCM at 8,
// 16, 24 and 32 bits, mono and stereo. The decoder returns an audio.Source
// delivering float32 samples in [-1.0, 1.0]; when the input reader can
// seek (or had to be buffered in memory), the source also implements
// audio.Rewinder, so looped stream playback through the mixer works.
//
//	decoder := aiff.Decoder{}
//	file, _ := os.Open("audio.aiff")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // handle error
//	}
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// AIFF writing is not supported.
package aiff
