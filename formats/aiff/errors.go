// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	ErrNotAiffFile           = errors.New("not an AIFF file")
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
	ErrNotSeekable           = errors.New("underlying reader cannot seek")
)
