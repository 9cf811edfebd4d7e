// SPDX-License-Identifier: EPL-2.0

// Package errdefs defines the two error kinds surfaced by dataset builds.
//
// A ConfigError means the requested build cannot be satisfied by the
// configuration or the tables it names; an InputError means a file the build
// depends on is missing, unreadable or malformed. Neither is retried.
//
//	if errors.Is(err, errdefs.ErrConfig) {
//	    // fix the configuration
//	}
package errdefs

import (
	"errors"
	"fmt"
)

var (
	ErrConfig = errors.New("config error")
	ErrInput  = errors.New("input error")
)

// Configf returns an error wrapping ErrConfig.
func Configf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

// Inputf returns an error wrapping ErrInput.
func Inputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInput, fmt.Sprintf(format, args...))
}

// Input wraps cause as an InputError about path. Both ErrInput and cause
// remain visible to errors.Is.
func Input(path string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrInput, path, cause)
}

// IsConfig reports whether err is a ConfigError.
func IsConfig(err error) bool { return errors.Is(err, ErrConfig) }

// IsInput reports whether err is an InputError.
func IsInput(err error) bool { return errors.Is(err, ErrInput) }
