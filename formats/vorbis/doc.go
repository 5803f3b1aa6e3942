// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio decoding.
//
// Decoding is backed by github.com/jfreymuth/oggvorbis, which outputs
// float32 samples directly, so no PCM conversion is needed. The decoder
// returns an audio.Source; when the input reader can seek, the source also
// implements audio.Rewinder, so looped stream playback through the mixer
// works.
//
//	decoder := vorbis.Decoder{}
//	file, _ := os.Open("audio.ogg")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // handle error
//	}
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Output follows the file: mono or stereo, at the encoded sample rate.
// Vorbis writing is not supported.
package vorbis
