// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"log/slog"
	"sync"
)

const (
	// DefaultMaxDepth bounds the mix tree depth; sample cache sizing
	// depends on this bound.
	DefaultMaxDepth = 8
	// DefaultMaxChildren bounds the width of a single mix node.
	DefaultMaxChildren = 64
)

// Handle is the stable external reference to a channel or mix node. It is
// a (index, generation) pair into the tree's arena: using a handle whose
// slot was released simply fails instead of touching a reused node.
type Handle struct {
	index uint32
	gen   uint32
}

// Valid reports whether h was ever issued (the zero Handle is not).
func (h Handle) Valid() bool { return h.gen != 0 }

type slot struct {
	gen uint32
	ch  Channel

	// Control-side mirror of the tree structure, used for cycle, width
	// and depth checks without touching render-owned child lists.
	parent   int32 // arena index, -1 when detached
	children []uint32
}

// Tree owns the arena of channels, the root mix node and the structural
// constraints. All Tree methods run on the control context; the render
// context only ever sees the per-node edit queues the Tree feeds.
type Tree struct {
	mu    sync.Mutex
	slots []slot
	free  []uint32

	root        Handle
	maxDepth    int
	maxChildren int
	editQueue   int
	cache       *SampleCache
}

// NewTree builds a tree with a root mix node at depth 0 and a sample cache
// sized for maxDepth levels.
func NewTree(maxDepth, maxChildren, warmup, editQueue int, log *slog.Logger) *Tree {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if maxChildren <= 0 {
		maxChildren = DefaultMaxChildren
	}
	t := &Tree{
		maxDepth:    maxDepth,
		maxChildren: maxChildren,
		editQueue:   editQueue,
		cache:       NewSampleCache(maxDepth, warmup, log),
	}
	root := NewMixChannel("root", t.cache, maxChildren, editQueue)
	t.root = t.add(root)
	return t
}

// Root is the handle of the root mix node.
func (t *Tree) Root() Handle { return t.root }

// Cache exposes the shared sample cache to the driver.
func (t *Tree) Cache() *SampleCache { return t.cache }

// RootNode resolves the root for the driver's per-callback cycle.
func (t *Tree) RootNode() *MixChannel {
	ch, _ := t.Resolve(t.root)
	return ch.(*MixChannel)
}

// add registers a channel in the arena and returns its handle.
func (t *Tree) add(ch Channel) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		s := &t.slots[idx]
		s.gen++
		s.ch = ch
		s.parent = -1
		s.children = s.children[:0]
		return Handle{index: idx, gen: s.gen}
	}

	t.slots = append(t.slots, slot{gen: 1, ch: ch, parent: -1})
	return Handle{index: uint32(len(t.slots) - 1), gen: 1}
}

// AddChannel registers a leaf channel and returns its handle. The channel
// is not attached anywhere yet.
func (t *Tree) AddChannel(ch Channel) Handle { return t.add(ch) }

// NewMixNode creates a detached mix node wired to the shared cache.
func (t *Tree) NewMixNode(name string) Handle {
	return t.add(NewMixChannel(name, t.cache, t.maxChildren, t.editQueue))
}

// Resolve returns the channel behind h, or false for stale or zero
// handles.
func (t *Tree) Resolve(h Handle) (Channel, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resolveLocked(h)
}

func (t *Tree) resolveLocked(h Handle) (Channel, bool) {
	if int(h.index) >= len(t.slots) {
		return nil, false
	}
	s := &t.slots[h.index]
	if s.gen != h.gen || s.ch == nil {
		return nil, false
	}
	return s.ch, true
}

// Release frees a handle's arena slot. The caller must have detached the
// channel first; releasing an attached channel fails.
func (t *Tree) Release(h Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.resolveLocked(h); !ok {
		return false
	}
	s := &t.slots[h.index]
	if s.parent != -1 {
		// A channel that finished on its own is reaped by the render
		// context; reconcile the mirror here. Anything still live must
		// be detached explicitly first.
		if !s.ch.Finished() {
			return false
		}
		pidx := uint32(s.parent)
		if pnode, ok := t.slots[pidx].ch.(*MixChannel); ok {
			pnode.RemoveInput(s.ch) // no-op if already reaped
		}
		ps := &t.slots[pidx]
		for i, c := range ps.children {
			if c == h.index {
				ps.children = append(ps.children[:i], ps.children[i+1:]...)
				break
			}
		}
		s.parent = -1
	}
	if len(s.children) > 0 || h == t.root {
		return false
	}
	s.ch = nil
	s.gen++
	t.free = append(t.free, h.index)
	return true
}

// depthOf walks the mirror's parent links up to the root. Returns -1 for
// nodes not reachable from the root.
func (t *Tree) depthOf(idx uint32) int {
	d := 0
	for idx != t.root.index {
		p := t.slots[idx].parent
		if p < 0 || d > t.maxDepth {
			return -1
		}
		idx = uint32(p)
		d++
	}
	return d
}

// height is the deepest chain of mix nodes below idx (0 for a node with no
// mix children).
func (t *Tree) height(idx uint32) int {
	h := 0
	for _, c := range t.slots[idx].children {
		if _, ok := t.slots[c].ch.(*MixChannel); ok {
			if ch := t.height(c) + 1; ch > h {
				h = ch
			}
		}
	}
	return h
}

// isAncestor reports whether a is an ancestor of (or the same node as) b.
func (t *Tree) isAncestor(a, b uint32) bool {
	for {
		if a == b {
			return true
		}
		p := t.slots[b].parent
		if p < 0 {
			return false
		}
		b = uint32(p)
	}
}

// Attach links child under parent. It fails — leaving the tree unchanged —
// when either handle is stale, the parent is not a mix node, the child is
// already attached, the attachment would create a cycle, exceed the width
// limit, or push a mix node past the depth bound.
func (t *Tree) Attach(parent, child Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	pch, ok := t.resolveLocked(parent)
	if !ok {
		return false
	}
	cch, ok := t.resolveLocked(child)
	if !ok {
		return false
	}
	pnode, ok := pch.(*MixChannel)
	if !ok {
		return false
	}
	cs := &t.slots[child.index]
	ps := &t.slots[parent.index]

	if cs.parent != -1 {
		return false
	}
	if t.isAncestor(child.index, parent.index) {
		return false
	}
	if len(ps.children) >= t.maxChildren {
		return false
	}

	pdepth := t.depthOf(parent.index)
	if pdepth < 0 {
		return false
	}
	if _, isMix := cch.(*MixChannel); isMix {
		// The deepest mix node must still have a cache level left for
		// its scratch buffer.
		if pdepth+1+t.height(child.index) > t.maxDepth-1 {
			return false
		}
	}

	if !pnode.AddInput(cch) {
		return false
	}

	cs.parent = int32(parent.index)
	ps.children = append(ps.children, child.index)
	t.refreshDepths(child.index, pdepth+1)
	return true
}

// Detach queues removal of child from parent. The child keeps producing
// until the next callback applies the edit.
func (t *Tree) Detach(parent, child Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	pch, ok := t.resolveLocked(parent)
	if !ok {
		return false
	}
	cch, ok := t.resolveLocked(child)
	if !ok {
		return false
	}
	pnode, ok := pch.(*MixChannel)
	if !ok {
		return false
	}
	cs := &t.slots[child.index]
	if cs.parent != int32(parent.index) {
		return false
	}
	if !pnode.RemoveInput(cch) {
		return false
	}

	cs.parent = -1
	ps := &t.slots[parent.index]
	for i, c := range ps.children {
		if c == child.index {
			ps.children = append(ps.children[:i], ps.children[i+1:]...)
			break
		}
	}
	return true
}

// refreshDepths pushes new depth values into a reattached subtree's mix
// nodes so each acquires the right cache level.
func (t *Tree) refreshDepths(idx uint32, depth int) {
	if m, ok := t.slots[idx].ch.(*MixChannel); ok {
		m.setDepth(depth)
	}
	for _, c := range t.slots[idx].children {
		t.refreshDepths(c, depth+1)
	}
}
