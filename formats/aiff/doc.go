// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes big-endian AIFF PCM through github.com/go-audio/aiff.
package aiff
