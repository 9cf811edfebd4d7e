// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/aedset/audio"
)

// go-mp3 output layout
const (
	outputChannels = 2
	bytesPerSample = 2
)

var ErrNotMP3File = errors.New("not an MP3 stream")

// pcmReader is the subset of gomp3.Decoder used by source, for testing.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec     pcmReader
	buf     []byte
	pending int // bytes carried over from a read that split a sample
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return outputChannels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerSample }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		grown := make([]byte, need)
		copy(grown, s.buf[:s.pending])
		s.buf = grown
	}
	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf[s.pending:])
	n += s.pending
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("reading mp3: %w", err)
	}

	samples := n / bytesPerSample
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[bytesPerSample*i:]))
		dst[i] = float32(v) / 32768.0
	}

	s.pending = n - samples*bytesPerSample
	copy(s.buf, s.buf[samples*bytesPerSample:n])

	if errors.Is(err, io.EOF) {
		return samples, io.EOF
	}
	return samples, nil
}

// Decoder decodes MPEG-1 Layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return &source{
		dec: dec,
		buf: make([]byte, 8192),
	}, nil
}
