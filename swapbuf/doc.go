// SPDX-License-Identifier: EPL-2.0

// Package swapbuf provides a lock-free single-writer, multi-reader
// exchange of fixed-length arrays, built from two double-buffered rows and
// atomic counters. See Buffer for the publication protocol and its
// (deliberate, documented) best-effort writer behaviour.
package swapbuf
