// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize  = errors.New("dst size must be multiple of channels")
	ErrZeroSampleRate  = errors.New("sample rate must be greater than zero")
	ErrBadChannelCount = errors.New("only mono and stereo sources are supported")
	ErrEmptySource     = errors.New("source contains no samples")
	ErrPartialFrame    = errors.New("sample data does not align to whole frames")
)
