// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III through github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit little-endian stereo, so every Source from
// this package reports two channels, including for mono files.
package mp3
