// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrNotSeekable is returned by Rewind when the input reader cannot seek.
var ErrNotSeekable = errors.New("underlying reader cannot seek")
