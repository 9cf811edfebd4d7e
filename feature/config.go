// SPDX-License-Identifier: EPL-2.0

package feature

import (
	"math"

	"github.com/ik5/aedset/errdefs"
)

// Config holds the log-mel and patching parameters. A dataset must be built
// with one Config throughout; models are calibrated to its scaling.
type Config struct {
	PatchLength int     // frames per patch
	Overlap     float64 // fraction of a patch shared with the next one, in [0, 1)

	NFFT         int
	HopLength    int
	WindowLength int    // 0 means NFFT
	Window       string // hann, hamming, blackman, bartlett, rectangular
	Center       bool
	PadMode      string // constant, reflect, edge; used when Center is set
	Power        float64

	NMels int
	FMin  float64
	FMax  float64 // <= 0 means rate/2
	Norm  string  // "slaney" or ""
	HTK   bool

	ToDB             bool
	IncludeLastPatch bool
}

// DefaultConfig returns 64-band patches of 50 frames at 10% overlap.
func DefaultConfig() Config {
	return Config{
		PatchLength:  50,
		Overlap:      0.1,
		NFFT:         1024,
		HopLength:    512,
		WindowLength: 1024,
		Window:       "hann",
		Center:       true,
		PadMode:      "constant",
		Power:        2.0,
		NMels:        64,
		FMin:         20,
		FMax:         7500,
	}
}

// Stride is the frame step between consecutive patch starts.
func (c Config) Stride() int {
	return int(math.Round(float64(c.PatchLength) * (1 - c.Overlap)))
}

func (c Config) windowLength() int {
	if c.WindowLength <= 0 {
		return c.NFFT
	}
	return c.WindowLength
}

// MaxFrequency resolves FMax against the sample rate.
func (c Config) MaxFrequency(rate int) float64 {
	if c.FMax <= 0 {
		return float64(rate) / 2
	}
	return c.FMax
}

// Validate checks the configuration for a given sample rate.
func (c Config) Validate(rate int) error {
	switch {
	case rate <= 0:
		return errdefs.Configf("sample rate must be positive, got %d", rate)
	case c.PatchLength <= 0:
		return errdefs.Configf("patch length must be positive, got %d", c.PatchLength)
	case c.Overlap < 0 || c.Overlap >= 1:
		return errdefs.Configf("overlap must be in [0, 1), got %v", c.Overlap)
	case c.Stride() < 1:
		return errdefs.Configf("overlap %v leaves no stride for patch length %d", c.Overlap, c.PatchLength)
	case c.NFFT <= 0 || c.HopLength <= 0:
		return errdefs.Configf("n_fft and hop length must be positive (%d, %d)", c.NFFT, c.HopLength)
	case c.windowLength() > c.NFFT:
		return errdefs.Configf("window length %d exceeds n_fft %d", c.windowLength(), c.NFFT)
	case c.Power <= 0:
		return errdefs.Configf("power must be positive, got %v", c.Power)
	case c.NMels <= 0:
		return errdefs.Configf("n_mels must be positive, got %d", c.NMels)
	case c.FMin < 0:
		return errdefs.Configf("fmin must not be negative, got %v", c.FMin)
	case c.MaxFrequency(rate) > float64(rate)/2:
		return errdefs.Configf("fmax %v exceeds Nyquist frequency %v", c.FMax, float64(rate)/2)
	case c.FMin >= c.MaxFrequency(rate):
		return errdefs.Configf("fmin %v must be below fmax %v", c.FMin, c.MaxFrequency(rate))
	}

	if _, err := windowFunc(c.Window); err != nil {
		return err
	}
	switch c.PadMode {
	case "", "constant", "reflect", "edge":
	default:
		return errdefs.Configf("unknown pad mode %q", c.PadMode)
	}
	switch c.Norm {
	case "", "slaney":
	default:
		return errdefs.Configf("unknown mel norm %q", c.Norm)
	}

	return nil
}
