// SPDX-License-Identifier: EPL-2.0

package audmix

import "errors"

var (
	ErrDuplicateName = errors.New("mix channel name already in use")
	ErrUnknownName   = errors.New("no mix channel with that name")
	ErrInvalidSource = errors.New("source is nil or not decoded stereo")
	ErrNotRewindable = errors.New("source cannot rewind; looping unsupported")
	ErrTreeFull      = errors.New("mix tree rejected the channel")
	ErrBadPitch      = errors.New("pitch must be greater than zero")
	ErrBadConfig     = errors.New("config fields must not be negative")
)
