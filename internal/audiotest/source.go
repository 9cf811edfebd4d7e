// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds synthetic sources and file fixtures for tests.
package audiotest

import (
	"io"
	"math"
)

// MockSource generates interleaved samples from a waveform function.
// It satisfies audio.Source without importing it.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) float32
	closed       bool
}

// NewMockSource returns a source of totalSamples frames.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource generates zeros.
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 { return 0 })
}

// NewSineSource generates the same sine on every channel.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		return Sine(sample, sampleRate, frequency, 1)
	})
}

// NewConstantSource generates value on every channel.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 { return value })
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}

// Sine returns sample i of a sine of the given frequency and amplitude.
func Sine(i, sampleRate int, frequency float64, amplitude float32) float32 {
	t := float64(i) / float64(sampleRate)
	return amplitude * float32(math.Sin(2*math.Pi*frequency*t))
}

// Tone returns n mono samples of a sine.
func Tone(n, sampleRate int, frequency float64, amplitude float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = Sine(i, sampleRate, frequency, amplitude)
	}
	return out
}

// Burst returns lead zeros, a tone of n samples, then tail zeros.
func Burst(lead, n, tail, sampleRate int, frequency float64) []float32 {
	out := make([]float32, lead+n+tail)
	copy(out[lead:], Tone(n, sampleRate, frequency, 0.8))
	return out
}
