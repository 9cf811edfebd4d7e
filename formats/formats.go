// SPDX-License-Identifier: EPL-2.0

// Package formats wires the per-container decoders into an audio.Registry.
package formats

import (
	"github.com/ik5/aedset/audio"
	"github.com/ik5/aedset/formats/aiff"
	"github.com/ik5/aedset/formats/mp3"
	"github.com/ik5/aedset/formats/vorbis"
	"github.com/ik5/aedset/formats/wav"
)

// NewRegistry returns a registry with every bundled decoder, keyed by the
// file extensions it accepts.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	return reg
}
