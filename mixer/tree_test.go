package mixer

import (
	"testing"
)

func TestTree_WidthLimit(t *testing.T) {
	t.Parallel()

	tree := NewTree(8, 2, 0, 0, nil)
	root := tree.RootNode()

	if !tree.Attach(tree.Root(), tree.AddChannel(newStub(0.1))) {
		t.Fatal("first attach failed")
	}
	if !tree.Attach(tree.Root(), tree.AddChannel(newStub(0.1))) {
		t.Fatal("second attach failed")
	}
	if tree.Attach(tree.Root(), tree.AddChannel(newStub(0.1))) {
		t.Fatal("attach beyond width limit succeeded")
	}

	root.Synchronize()
	if root.ChildCount() != 2 {
		t.Errorf("ChildCount() = %d, want 2 (tree unchanged)", root.ChildCount())
	}
}

func TestTree_DepthLimit(t *testing.T) {
	t.Parallel()

	const maxDepth = 3
	tree := NewTree(maxDepth, 8, 0, 0, nil)

	parent := tree.Root()
	// Nodes at depths 1..maxDepth-1 must attach; one more must not.
	for d := 1; d < maxDepth; d++ {
		node := tree.NewMixNode("")
		if !tree.Attach(parent, node) {
			t.Fatalf("attach at depth %d failed", d)
		}
		parent = node
	}
	if tree.Attach(parent, tree.NewMixNode("")) {
		t.Error("attach past the depth bound succeeded")
	}

	// Leaves carry no mix depth and still fit at the bottom.
	if !tree.Attach(parent, tree.AddChannel(newStub(0.1))) {
		t.Error("leaf attach at the bottom failed")
	}
}

func TestTree_RejectsCycles(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)

	a := tree.NewMixNode("a")
	b := tree.NewMixNode("b")
	if !tree.Attach(tree.Root(), a) || !tree.Attach(a, b) {
		t.Fatal("setup attach failed")
	}

	if tree.Attach(b, a) {
		t.Error("attaching an ancestor under its descendant succeeded")
	}
	if tree.Attach(a, a) {
		t.Error("self-attach succeeded")
	}
	if tree.Attach(b, tree.Root()) {
		t.Error("attaching the root under a descendant succeeded")
	}
}

func TestTree_DoubleAttachFails(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)
	other := tree.NewMixNode("other")
	tree.Attach(tree.Root(), other)

	h := tree.AddChannel(newStub(0.1))
	if !tree.Attach(tree.Root(), h) {
		t.Fatal("attach failed")
	}
	if tree.Attach(other, h) {
		t.Error("second attach of the same channel succeeded")
	}
}

func TestTree_StaleHandle(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)

	h := tree.AddChannel(newStub(0.1))
	if !tree.Release(h) {
		t.Fatal("release of a detached channel failed")
	}

	if _, ok := tree.Resolve(h); ok {
		t.Error("stale handle resolved")
	}
	if tree.Attach(tree.Root(), h) {
		t.Error("attach of a stale handle succeeded")
	}

	// The slot is reused; the old handle must stay dead.
	h2 := tree.AddChannel(newStub(0.2))
	if _, ok := tree.Resolve(h2); !ok {
		t.Fatal("fresh handle failed to resolve")
	}
	if _, ok := tree.Resolve(h); ok {
		t.Error("stale handle resolved after slot reuse")
	}
}

func TestTree_ReleaseRules(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)

	if tree.Release(tree.Root()) {
		t.Error("released the root")
	}

	h := tree.AddChannel(newStub(0.1))
	tree.Attach(tree.Root(), h)
	if tree.Release(h) {
		t.Error("released an attached, live channel")
	}

	// After the channel finishes, release reconciles and succeeds even
	// though the control mirror still lists it.
	ch, _ := tree.Resolve(h)
	ch.Stop()
	if !tree.Release(h) {
		t.Error("release of a finished channel failed")
	}
}

func TestHandle_ZeroInvalid(t *testing.T) {
	t.Parallel()

	var h Handle
	if h.Valid() {
		t.Error("zero handle is valid")
	}

	tree := newTestTree(t)
	if !tree.Root().Valid() {
		t.Error("root handle invalid")
	}
}
