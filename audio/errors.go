// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrEmptyAudio        = errors.New("audio contains no samples")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrStalledSource     = errors.New("source stopped producing samples without EOF")
)
