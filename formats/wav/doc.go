// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes RIFF/WAVE PCM audio through
// github.com/go-audio/wav.
//
// Integer PCM at 8, 16, 24 and 32 bits is decoded to float32 in [-1, 1]:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// WriteFloat32 writes float samples back as 16-bit PCM.
package wav
