// SPDX-License-Identifier: EPL-2.0

package fx

import "errors"

var (
	ErrFrameSize = errors.New("frame size must be a power of two")
)
