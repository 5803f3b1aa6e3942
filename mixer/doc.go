// SPDX-License-Identifier: EPL-2.0

// Package mixer implements the real-time mix tree: leaf channels that
// produce sample blocks, mix nodes that sum their children, and the
// allocation-avoiding scratch buffer cache that keeps the render callback
// off the heap.
//
// # Execution contexts
//
// Exactly two contexts touch a tree. The render context (the engine's
// callback) calls Synchronize and Produce; it never blocks and, once the
// cache is warm, never allocates. The control context creates channels,
// attaches and detaches them through Tree handles, and flips per-channel
// state. The only crossing points are bounded edit queues (non-blocking on
// both sides) and atomic state fields.
//
// # Channels
//
// ResamplingChannel plays a decoded clip at arbitrary pitch with linear
// interpolation and constant-power panning. StreamChannel pulls decoded
// blocks from an audio.Source. MixChannel sums any mix of the above and is
// itself a Channel, so trees nest up to the configured depth bound.
//
// # Handles
//
// Application code never holds a node pointer; it holds a Handle, a
// generation-checked index into the Tree's arena. Operations on a handle
// whose channel was released fail instead of corrupting a reused slot.
package mixer
