// SPDX-License-Identifier: EPL-2.0

// Package audmix is a real-time audio mixing engine for Go applications.
//
// The engine mixes an arbitrary tree of playing sounds down to one
// interleaved stereo stream at a fixed device rate. It is built for the
// render-callback model: an output backend (a sound device, a network
// sink, a file writer) calls Engine.RenderCallback periodically, and the
// engine fills its device ring without blocking, allocating or contending
// on locks once warm.
//
// # Quick Start
//
//	eng, _ := audmix.New(audmix.Config{SampleRate: 48000}, nil)
//
//	// Decode a clip up front and play it.
//	f, _ := os.Open("jump.wav")
//	src, _ := (wav.Decoder{}).Decode(f)
//	clip, _ := audio.LoadStereo(src, eng.SampleRate())
//	h, _ := eng.Play(clip, audmix.PlayOptions{Volume: 0.8})
//
//	// Drive the engine from the output backend.
//	eng.RenderCallback(960)
//	out := make([]float32, 960)
//	eng.ReadDevice(out)
//
//	// Later: stop and free the voice.
//	eng.StopChannel(h)
//	eng.Release(h)
//
// # The Mix Tree
//
// Sounds attach under mix nodes, which attach under other mix nodes up to
// the root. Each node sums its children and applies its own volume once,
// so grouped sounds (all effects, all music) are controlled together:
//
//	sfx, _ := eng.CreateMixChannel("sfx")
//	eng.Attach(eng.Root(), sfx)
//	eng.Play(clip, audmix.PlayOptions{Target: sfx})
//
//	if ch, ok := eng.Lookup(sfx); ok {
//		ch.State().SetVolume(0.5) // duck every effect at once
//	}
//
// Handles are generation-checked: after Release, a stale handle fails
// cleanly instead of touching a reused slot.
//
// # Execution Contexts
//
// Engine methods split into two groups. RenderCallback and ReadDevice
// belong to the render context and must be called from one goroutine (the
// output backend's). Everything else is control context and may be called
// from any goroutine: state changes cross over via atomics, structural
// edits via bounded queues the render context drains between blocks.
//
// # Streams
//
// Clips that are too large to decode up front play through PlayStream,
// which pulls from an audio.Source on the render thread. Sources must
// already run at the device rate; the decoders under formats/ combined
// with audio.Resampler prepare them.
//
// # Subpackages
//
//   - audio: Source and Decoder interfaces, decoded-clip container,
//     offline resampling
//   - mixer: the tree, channels and the per-callback sample cache
//   - swapbuf: wait-free single-writer buffer for taps and meters
//   - fx: insert effects and spectrum analysis
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders
//
// See the examples directory for a playable demo wired to a sound device.
package audmix
