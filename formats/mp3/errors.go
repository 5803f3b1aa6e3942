// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

// ErrNotSeekable is returned by Rewind when the decoder cannot seek.
var ErrNotSeekable = errors.New("decoder cannot seek")
