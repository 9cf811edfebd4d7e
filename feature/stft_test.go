// SPDX-License-Identifier: EPL-2.0

package feature

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/mjibson/go-dsp/fft"
)

func TestReflectIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		i, n, want int
	}{
		{0, 4, 0},
		{3, 4, 3},
		{-1, 4, 1},
		{-2, 4, 2},
		{-3, 4, 3},
		{-4, 4, 2},
		{4, 4, 2},
		{5, 4, 1},
		{6, 4, 0},
		{-5, 1, 0},
	}

	for _, tt := range tests {
		if got := reflectIndex(tt.i, tt.n); got != tt.want {
			t.Errorf("reflectIndex(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestPadSignal(t *testing.T) {
	t.Parallel()

	y := []float32{1, 2, 3, 4}
	tests := []struct {
		mode string
		want []float64
	}{
		{"constant", []float64{0, 0, 1, 2, 3, 4, 0, 0}},
		{"reflect", []float64{3, 2, 1, 2, 3, 4, 3, 2}},
		{"edge", []float64{1, 1, 1, 2, 3, 4, 4, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			t.Parallel()
			if got := padSignal(y, 2, tt.mode); !slices.Equal(got, tt.want) {
				t.Errorf("padSignal(%q) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestPeriodicWindow(t *testing.T) {
	t.Parallel()

	fn, err := windowFunc("hann")
	if err != nil {
		t.Fatal(err)
	}
	w := periodicWindow(fn, 8, 12)

	if len(w) != 12 {
		t.Fatalf("len = %d, want 12", len(w))
	}
	for _, i := range []int{0, 1, 10, 11} {
		if w[i] != 0 {
			t.Errorf("w[%d] = %v, want 0 (padding)", i, w[i])
		}
	}
	// periodic hann of length 8 starts at 0 and peaks at index 4
	if math.Abs(w[2]) > 1e-12 {
		t.Errorf("w[2] = %v, want 0", w[2])
	}
	if math.Abs(w[6]-1) > 1e-12 {
		t.Errorf("w[6] = %v, want 1", w[6])
	}
}

func TestSTFT_FrameCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		center bool
		n      int
		want   int
	}{
		{"centered one second", true, 16000, 32},
		{"plain one second", false, 16000, 30},
		{"plain short input", false, 100, 1},
		{"centered empty", true, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			cfg.Center = tt.center
			s, err := newSTFT(cfg)
			if err != nil {
				t.Fatal(err)
			}
			if got := s.frameCount(tt.n); got != tt.want {
				t.Errorf("frameCount(%d) = %d, want %d", tt.n, got, tt.want)
			}

			spec := s.melPower(make([]float32, tt.n), NewFilterbank(16000, cfg.NFFT, 4, 0, 8000, false, ""))
			if spec.Frames != tt.want {
				t.Errorf("Frames = %d, want %d", spec.Frames, tt.want)
			}
		})
	}
}

// identityBank passes FFT bins through unchanged.
func identityBank(bins int) *Filterbank {
	fb := &Filterbank{Weights: make([][]float64, bins), sparse: make([]sparseFilter, bins)}
	for k := range bins {
		fb.Weights[k] = make([]float64, bins)
		fb.Weights[k][k] = 1
		fb.sparse[k] = sparseFilter{start: k, coeffs: []float64{1}}
	}
	return fb
}

func TestSTFT_MatchesReferenceFFT(t *testing.T) {
	t.Parallel()

	const n = 256
	rng := rand.New(rand.NewPCG(1, 2))
	y := make([]float32, n)
	ref := make([]float64, n)
	for i := range y {
		y[i] = float32(rng.Float64()*2 - 1)
		ref[i] = float64(y[i])
	}

	cfg := DefaultConfig()
	cfg.NFFT, cfg.WindowLength, cfg.HopLength = n, n, n
	cfg.Window = "rectangular"
	cfg.Center = false
	cfg.Power = 1

	s, err := newSTFT(cfg)
	if err != nil {
		t.Fatal(err)
	}
	spec := s.melPower(y, identityBank(n/2+1))
	if spec.Frames != 1 {
		t.Fatalf("Frames = %d, want 1", spec.Frames)
	}

	want := fft.FFTReal(ref)
	for k := range n/2 + 1 {
		w := cmplx.Abs(want[k])
		if got := float64(spec.At(k, 0)); math.Abs(got-w) > 1e-3*math.Max(1, w) {
			t.Errorf("bin %d = %v, want %v", k, got, w)
		}
	}
}

func TestSTFT_PowerTwoIsSquare(t *testing.T) {
	t.Parallel()

	y := make([]float32, 512)
	for i := range y {
		y[i] = float32(math.Sin(2 * math.Pi * 1000 * float64(i) / 16000))
	}

	cfg := DefaultConfig()
	cfg.NFFT, cfg.WindowLength, cfg.HopLength = 512, 512, 512
	cfg.Center = false

	cfg.Power = 1
	s1, _ := newSTFT(cfg)
	cfg.Power = 2
	s2, _ := newSTFT(cfg)

	fb := identityBank(257)
	mag := s1.melPower(y, fb)
	pow := s2.melPower(y, fb)

	for k := range 257 {
		m := float64(mag.At(k, 0))
		if got := float64(pow.At(k, 0)); math.Abs(got-m*m) > 1e-3*math.Max(1, m*m) {
			t.Errorf("bin %d power = %v, want %v", k, got, m*m)
		}
	}
}
