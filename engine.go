// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/mixer"
)

// Engine owns one mix tree, its sample cache, the named mix-channel
// registry and the device output ring. All Engine methods except
// RenderCallback and ReadDevice belong to the control context.
type Engine struct {
	cfg  Config
	log  *slog.Logger
	tree *mixer.Tree

	mu    sync.Mutex
	named map[string]mixer.Handle

	// render-context state
	root     *mixer.MixChannel
	cache    *mixer.SampleCache
	device   []float32
	writePos int
	readPos  int
}

// New creates an engine. A nil logger falls back to slog.Default.
func New(cfg Config, log *slog.Logger) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if log == nil {
		log = slog.Default()
	}

	tree := mixer.NewTree(cfg.MaxTreeDepth, cfg.MaxChildren,
		cfg.WarmupCallbacks, cfg.EditQueueSize, log)

	return &Engine{
		cfg:    cfg,
		log:    log,
		tree:   tree,
		named:  make(map[string]mixer.Handle),
		root:   tree.RootNode(),
		cache:  tree.Cache(),
		device: make([]float32, cfg.DeviceBufferFrames*2),
	}, nil
}

// SampleRate is the device rate the engine mixes at.
func (e *Engine) SampleRate() int { return e.cfg.SampleRate }

// Root is the handle of the root mix channel.
func (e *Engine) Root() mixer.Handle { return e.tree.Root() }

// Tree exposes the mix tree for direct structural work.
func (e *Engine) Tree() *mixer.Tree { return e.tree }

// CreateMixChannel registers a named mix node. An empty name gets a
// generated one; a duplicate name is an error. The node starts detached —
// attach it under the root (or another node) to hear it.
func (e *Engine) CreateMixChannel(name string) (mixer.Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if name == "" {
		name = uuid.NewString()
	}
	if _, exists := e.named[name]; exists {
		return mixer.Handle{}, ErrDuplicateName
	}

	h := e.tree.NewMixNode(name)
	e.named[name] = h
	e.log.Debug("mix channel created", "name", name)
	return h, nil
}

// MixChannelByName looks up a previously created named node.
func (e *Engine) MixChannelByName(name string) (mixer.Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	h, ok := e.named[name]
	if !ok {
		return mixer.Handle{}, ErrUnknownName
	}
	return h, nil
}

// PlayOptions shape a new voice. Zero values mean: full volume, centred,
// pitch 1, no loop, attach under the root.
type PlayOptions struct {
	Volume  float32
	Balance float32
	Pitch   float32
	Loop    bool
	Target  mixer.Handle
	Inserts []mixer.Effect
}

func (o PlayOptions) volume() float32 {
	if o.Volume == 0 {
		return 1
	}
	return o.Volume
}

// Play starts a decoded stereo clip and returns the handle of its voice.
// The voice is audible from the first callback that observes the attach.
func (e *Engine) Play(data *audio.SampleData, opts PlayOptions) (mixer.Handle, error) {
	if data == nil || data.Channels() != 2 {
		return mixer.Handle{}, ErrInvalidSource
	}
	if data.SampleRate() <= 0 {
		return mixer.Handle{}, audio.ErrZeroSampleRate
	}
	if opts.Pitch < 0 {
		return mixer.Handle{}, ErrBadPitch
	}

	pitch := opts.Pitch
	if pitch == 0 {
		pitch = 1
	}
	ch := mixer.NewResamplingChannel(data, pitch)
	return e.start(ch, &ch.ChannelState, opts)
}

// PlayStream starts a voice fed by an externally decoded stream. Looping
// requires the source to implement audio.Rewinder.
func (e *Engine) PlayStream(src audio.Source, opts PlayOptions) (mixer.Handle, error) {
	if src == nil {
		return mixer.Handle{}, ErrInvalidSource
	}
	if opts.Loop {
		if _, ok := src.(audio.Rewinder); !ok {
			return mixer.Handle{}, ErrNotRewindable
		}
	}

	ch := mixer.NewStreamChannel(src, e.cfg.DeviceBufferFrames*2)
	return e.start(ch, &ch.ChannelState, opts)
}

func (e *Engine) start(ch mixer.Channel, state *mixer.ChannelState, opts PlayOptions) (mixer.Handle, error) {
	state.SetVolume(opts.volume())
	state.SetBalance(opts.Balance)
	state.SetLooping(opts.Loop)
	state.SetInserts(opts.Inserts)

	target := opts.Target
	if !target.Valid() {
		target = e.tree.Root()
	}

	h := e.tree.AddChannel(ch)
	if !e.tree.Attach(target, h) {
		e.tree.Release(h)
		return mixer.Handle{}, ErrTreeFull
	}
	return h, nil
}

// Attach links child under parent; see mixer.Tree.Attach for the failure
// cases.
func (e *Engine) Attach(parent, child mixer.Handle) bool {
	return e.tree.Attach(parent, child)
}

// Detach queues removal of child from parent; the child falls silent on
// the next callback.
func (e *Engine) Detach(parent, child mixer.Handle) bool {
	return e.tree.Detach(parent, child)
}

// Lookup resolves a handle to its channel for state changes
// (volume, balance, attenuation and so on via Channel.State).
func (e *Engine) Lookup(h mixer.Handle) (mixer.Channel, bool) {
	return e.tree.Resolve(h)
}

// StopChannel finishes a voice; the tree drops it on the next callback.
func (e *Engine) StopChannel(h mixer.Handle) bool {
	ch, ok := e.tree.Resolve(h)
	if !ok {
		return false
	}
	ch.Stop()
	return true
}

func (e *Engine) PauseChannel(h mixer.Handle) bool {
	ch, ok := e.tree.Resolve(h)
	if !ok {
		return false
	}
	ch.Pause()
	return true
}

func (e *Engine) ResumeChannel(h mixer.Handle) bool {
	ch, ok := e.tree.Resolve(h)
	if !ok {
		return false
	}
	ch.Resume()
	return true
}

// Release frees a stopped or finished voice's handle slot.
func (e *Engine) Release(h mixer.Handle) bool {
	return e.tree.Release(h)
}
