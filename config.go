// SPDX-License-Identifier: EPL-2.0

package audmix

import "github.com/ik5/audmix/mixer"

// Config carries the engine's fixed parameters. Zero values take the
// defaults below; Validate runs at engine creation, never on the render
// path.
type Config struct {
	// SampleRate of the device, in Hz.
	SampleRate int
	// MaxTreeDepth bounds mix-node nesting; the sample cache holds one
	// scratch buffer per level.
	MaxTreeDepth int
	// MaxChildren bounds the width of a single mix node.
	MaxChildren int
	// WarmupCallbacks is how many quiet callbacks the cache waits before
	// refusing further allocation.
	WarmupCallbacks int
	// DeviceBufferFrames sizes the output ring, in stereo frames.
	DeviceBufferFrames int
	// EditQueueSize bounds queued structural edits per mix node.
	EditQueueSize int
}

const (
	DefaultSampleRate         = 48000
	DefaultDeviceBufferFrames = 4096
)

func (c Config) withDefaults() Config {
	if c.SampleRate == 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.MaxTreeDepth == 0 {
		c.MaxTreeDepth = mixer.DefaultMaxDepth
	}
	if c.MaxChildren == 0 {
		c.MaxChildren = mixer.DefaultMaxChildren
	}
	if c.WarmupCallbacks == 0 {
		c.WarmupCallbacks = mixer.DefaultWarmupCallbacks
	}
	if c.DeviceBufferFrames == 0 {
		c.DeviceBufferFrames = DefaultDeviceBufferFrames
	}
	if c.EditQueueSize == 0 {
		c.EditQueueSize = mixer.DefaultEditQueueSize
	}
	return c
}

func (c Config) validate() error {
	if c.SampleRate < 0 || c.MaxTreeDepth < 0 || c.MaxChildren < 0 ||
		c.WarmupCallbacks < 0 || c.DeviceBufferFrames < 0 || c.EditQueueSize < 0 {
		return ErrBadConfig
	}
	return nil
}
