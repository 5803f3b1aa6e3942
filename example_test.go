// SPDX-License-Identifier: EPL-2.0

package audmix_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/wav"
)

// Example_basicUsage decodes a WAV clip and mixes it through the engine,
// the way an output backend would between two device callbacks.
func Example_basicUsage() {
	// Build a small stereo WAV in memory for demonstration.
	samples := make([]int16, 960*2)
	for i := range samples {
		samples[i] = 16384 // 0.5 after normalization
	}
	wavData := new(bytes.Buffer)
	wav.WriteWAV16(wavData, 48000, 2, samples)

	// Decode it into a clip at the device rate.
	decoder := wav.Decoder{}
	src, err := decoder.Decode(bytes.NewReader(wavData.Bytes()))
	if err != nil {
		fmt.Printf("decode error: %v\n", err)
		return
	}
	clip, err := audio.LoadStereo(src, 48000)
	if err != nil {
		fmt.Printf("load error: %v\n", err)
		return
	}

	eng, err := audmix.New(audmix.Config{SampleRate: 48000}, nil)
	if err != nil {
		fmt.Printf("engine error: %v\n", err)
		return
	}

	// Hard left so the left channel reproduces the clip exactly.
	if _, err := eng.Play(clip, audmix.PlayOptions{Balance: -1}); err != nil {
		fmt.Printf("play error: %v\n", err)
		return
	}

	// One device callback: render a block, then read it back out.
	eng.RenderCallback(128)
	out := make([]float32, 128)
	n := eng.ReadDevice(out)

	fmt.Printf("rendered %d samples\n", n)
	fmt.Printf("left = %v, right = %v\n", out[0], out[1])
	// Output:
	// rendered 128 samples
	// left = 0.5, right = 0
}

// Example_mixChannels groups voices under a named mix node and ducks them
// all with one volume change.
func Example_mixChannels() {
	eng, _ := audmix.New(audmix.Config{SampleRate: 48000}, nil)

	sfx, err := eng.CreateMixChannel("sfx")
	if err != nil {
		fmt.Printf("create error: %v\n", err)
		return
	}
	eng.Attach(eng.Root(), sfx)

	// Every effect voice targets the sfx node.
	clip := constantClip(48000, 4800, 0.5)
	eng.Play(clip, audmix.PlayOptions{Target: sfx, Balance: -1})
	eng.Play(clip, audmix.PlayOptions{Target: sfx, Balance: -1})

	// Halving the node's volume halves the whole group after summing.
	if ch, ok := eng.Lookup(sfx); ok {
		ch.State().SetVolume(0.5)
	}

	eng.RenderCallback(64)
	out := make([]float32, 64)
	eng.ReadDevice(out)

	fmt.Printf("summed left = %v\n", out[0])
	// Output: summed left = 0.5
}

func constantClip(rate, frames int, value float32) *audio.SampleData {
	samples := make([]float32, frames*2)
	for i := range samples {
		samples[i] = value
	}
	clip, _ := audio.NewSampleData(rate, 2, samples)
	return clip
}
