// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio decoding.
//
// Decoding is backed by github.com/hajimehoshi/go-mp3. The decoder returns
// an audio.Source delivering float32 samples in [-1.0, 1.0]; output is
// always stereo at the file's sample rate. go-mp3 can seek within the
// decoded stream, so the source implements audio.Rewinder and may be
// looped through the mixer.
//
//	decoder := mp3.Decoder{}
//	file, _ := os.Open("audio.mp3")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // handle error
//	}
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Stream sources play at the device rate; decode an MP3 at another rate
// into a clip with audio.LoadStereo before handing it to the engine, or
// wrap it in audio.Resampler.
//
// MP3 writing is not supported.
package mp3
