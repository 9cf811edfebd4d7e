// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/aedset/utils"
)

// WriteFloat32 writes interleaved float samples as 16-bit PCM WAV.
// The encoder patches the header on close, hence io.WriteSeeker.
func WriteFloat32(w io.WriteSeeker, sampleRate, channels int, samples []float32) error {
	if channels <= 0 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedWavLayout, channels)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(utils.Float32ToInt16(s))
	}

	enc := gowav.NewEncoder(w, sampleRate, 16, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}
