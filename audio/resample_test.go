// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/aedset/internal/audiotest"
)

func TestResample_Lengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		n       int
		srcRate int
		dstRate int
		want    int
	}{
		{name: "same rate", n: 1000, srcRate: 16000, dstRate: 16000, want: 1000},
		{name: "44.1k to 16k", n: 44100, srcRate: 44100, dstRate: 16000, want: 16000},
		{name: "8k to 16k", n: 8000, srcRate: 8000, dstRate: 16000, want: 16000},
		{name: "48k to 16k", n: 4800, srcRate: 48000, dstRate: 16000, want: 1600},
		{name: "tiny input keeps one sample", n: 1, srcRate: 48000, dstRate: 8000, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resample(audiotest.Tone(tt.n, tt.srcRate, 440, 0.5), tt.srcRate, tt.dstRate)
			if err != nil {
				t.Fatalf("Resample() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestResample_PreservesTone(t *testing.T) {
	t.Parallel()

	in := audiotest.Tone(44100, 44100, 440, 0.5)
	out, err := Resample(in, 44100, 16000)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}

	// compare against the ideal tone away from the edges
	for i := 200; i < len(out)-200; i++ {
		want := audiotest.Sine(i, 16000, 440, 0.5)
		if math.Abs(float64(out[i]-want)) > 0.02 {
			t.Fatalf("out[%d] = %v, want ≈%v", i, out[i], want)
		}
	}
}

func TestResample_AttenuatesAboveNyquist(t *testing.T) {
	t.Parallel()

	// 7 kHz is above the 4 kHz Nyquist limit of an 8 kHz output
	in := audiotest.Tone(48000, 48000, 7000, 0.8)
	out, err := Resample(in, 48000, 8000)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}

	var energy float64
	for _, v := range out[100 : len(out)-100] {
		energy += float64(v) * float64(v)
	}
	rms := math.Sqrt(energy / float64(len(out)-200))
	if rms > 0.05 {
		t.Errorf("aliased rms = %v, want < 0.05", rms)
	}
}

func TestResample_InvalidRate(t *testing.T) {
	t.Parallel()

	if _, err := Resample([]float32{1}, 0, 16000); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("Resample() error = %v, want ErrInvalidSampleRate", err)
	}
}
