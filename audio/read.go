// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxIdleReads bounds consecutive empty reads without EOF.
const maxIdleReads = 64

// ReadAll drains src and returns every interleaved sample it produced.
// bufSize <= 0 falls back to src.BufSize(), then 4096.
func ReadAll(src Source, bufSize int) ([]float32, error) {
	if bufSize <= 0 {
		bufSize = src.BufSize()
	}
	if bufSize <= 0 {
		bufSize = 4096
	}
	if ch := src.Channels(); ch > 1 && bufSize%ch != 0 {
		bufSize += ch - bufSize%ch
	}

	out := make([]float32, 0, src.SampleRate()*src.Channels())
	buf := make([]float32, bufSize)
	idle := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
		if n > 0 {
			idle = 0
			continue
		}
		idle++
		if idle >= maxIdleReads {
			return nil, ErrStalledSource
		}
	}

	return out, nil
}

// ReadMono drains src through a MonoMixer.
func ReadMono(src Source, bufSize int) ([]float32, error) {
	return ReadAll(NewMonoMixer(src), bufSize)
}
