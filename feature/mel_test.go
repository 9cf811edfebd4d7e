// SPDX-License-Identifier: EPL-2.0

package feature

import (
	"math"
	"testing"
)

func TestHzToMel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hz   float64
		htk  bool
		want float64
	}{
		{0, false, 0},
		{500, false, 7.5},
		{1000, false, 15},
		{6400, false, 42},
		{0, true, 0},
		{700, true, 2595 * math.Log10(2)},
	}

	for _, tt := range tests {
		if got := HzToMel(tt.hz, tt.htk); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("HzToMel(%v, %v) = %v, want %v", tt.hz, tt.htk, got, tt.want)
		}
	}
}

func TestMelToHz_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, htk := range []bool{false, true} {
		for _, hz := range []float64{20, 440, 999, 1000, 2500, 7500} {
			got := MelToHz(HzToMel(hz, htk), htk)
			if math.Abs(got-hz) > 1e-6 {
				t.Errorf("MelToHz(HzToMel(%v)) = %v, htk=%v", hz, got, htk)
			}
		}
	}
}

func TestNewFilterbank_Shape(t *testing.T) {
	t.Parallel()

	fb := NewFilterbank(16000, 1024, 64, 20, 7500, false, "")
	if fb.NumMels() != 64 {
		t.Fatalf("NumMels() = %d, want 64", fb.NumMels())
	}

	prevPeak := -1
	for m, w := range fb.Weights {
		if len(w) != 513 {
			t.Fatalf("len(Weights[%d]) = %d, want 513", m, len(w))
		}
		peak, peakVal := 0, 0.0
		for k, v := range w {
			if v < 0 || v > 1 {
				t.Fatalf("Weights[%d][%d] = %v, want in [0, 1]", m, k, v)
			}
			if v > peakVal {
				peak, peakVal = k, v
			}
		}
		if peakVal == 0 {
			t.Fatalf("filter %d is empty", m)
		}
		if peak < prevPeak {
			t.Errorf("filter %d peaks at bin %d, before filter %d at %d", m, peak, m-1, prevPeak)
		}
		prevPeak = peak
	}

	// nothing above fmax
	for m, w := range fb.Weights {
		for k := 481; k < len(w); k++ { // 481 * 15.625 Hz > 7500 Hz
			if w[k] != 0 {
				t.Errorf("Weights[%d][%d] = %v above fmax", m, k, w[k])
			}
		}
	}
}

func TestNewFilterbank_SlaneyNorm(t *testing.T) {
	t.Parallel()

	plain := NewFilterbank(16000, 1024, 40, 0, 8000, false, "")
	normed := NewFilterbank(16000, 1024, 40, 0, 8000, false, "slaney")

	// normalization scales each filter by a constant that shrinks as
	// filters widen
	var prevScale float64
	for m := range plain.Weights {
		var scale float64
		for k, v := range plain.Weights[m] {
			if v > 0 {
				scale = normed.Weights[m][k] / v
				break
			}
		}
		if scale <= 0 {
			t.Fatalf("filter %d has no scale", m)
		}
		if m > 0 && scale > prevScale*(1+1e-9) {
			t.Errorf("scale[%d] = %v > scale[%d] = %v", m, scale, m-1, prevScale)
		}
		prevScale = scale
	}
}

func TestFilterbank_Apply(t *testing.T) {
	t.Parallel()

	fb := NewFilterbank(16000, 512, 8, 0, 8000, false, "")
	spectrum := make([]float64, 257)
	for k := range spectrum {
		spectrum[k] = 1
	}

	dst := make([]float32, 8*3)
	fb.Apply(spectrum, dst[1:], 3)

	for m, w := range fb.Weights {
		var want float64
		for _, v := range w {
			want += v
		}
		if got := float64(dst[1+m*3]); math.Abs(got-want) > 1e-4 {
			t.Errorf("band %d = %v, want %v", m, got, want)
		}
		if dst[m*3] != 0 {
			t.Errorf("dst[%d] written outside stride", m*3)
		}
	}
}
