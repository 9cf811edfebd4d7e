// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/ik5/aedset/errdefs"
)

// LoaderConfig controls how clips are reformatted after decoding.
// Lengths are in seconds; FrameLength and HopLength are in samples at
// TargetRate and drive silence detection.
type LoaderConfig struct {
	TargetRate     int
	MinLength      float64
	MaxLength      float64
	TopDB          float64 // <= 0 disables silence trimming
	FrameLength    int
	HopLength      int
	TrimLastSecond bool
}

// DefaultLoaderConfig matches the reference preprocessing for 16 kHz models.
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		TargetRate:  16000,
		MinLength:   1,
		MaxLength:   10,
		TopDB:       60,
		FrameLength: 3200,
		HopLength:   3200,
	}
}

// Validate reports inconsistent settings as a ConfigError.
func (c LoaderConfig) Validate() error {
	switch {
	case c.TargetRate <= 0:
		return errdefs.Configf("target rate must be positive, got %d", c.TargetRate)
	case c.MinLength < 0 || c.MaxLength < 0:
		return errdefs.Configf("clip lengths must not be negative (min %v, max %v)", c.MinLength, c.MaxLength)
	case c.MaxLength > 0 && c.MinLength > c.MaxLength:
		return errdefs.Configf("min length %v exceeds max length %v", c.MinLength, c.MaxLength)
	case c.TopDB > 0 && (c.FrameLength <= 0 || c.HopLength <= 0):
		return errdefs.Configf("silence trimming needs positive frame and hop lengths (%d, %d)", c.FrameLength, c.HopLength)
	}
	return nil
}

// Waveform is a mono clip at Rate Hz.
type Waveform struct {
	Samples []float32
	Rate    int
}

// Seconds is the clip duration.
func (w Waveform) Seconds() float64 {
	if w.Rate == 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.Rate)
}

// Loader decodes files through a Registry and reformats them to LoaderConfig.
type Loader struct {
	cfg      LoaderConfig
	registry *Registry
}

// NewLoader validates cfg and returns a loader reading through registry.
func NewLoader(cfg LoaderConfig, registry *Registry) (*Loader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, errdefs.Configf("loader needs a decoder registry")
	}
	return &Loader{cfg: cfg, registry: registry}, nil
}

// Config returns the loader settings.
func (l *Loader) Config() LoaderConfig { return l.cfg }

// Load decodes path to mono and applies Reformat. Missing, unreadable,
// undecodable or empty files are InputErrors.
func (l *Loader) Load(path string) (Waveform, error) {
	dec, ok := l.registry.ForPath(path)
	if !ok {
		return Waveform{}, errdefs.Input(path, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path)))
	}

	f, err := os.Open(path)
	if err != nil {
		return Waveform{}, errdefs.Input(path, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return Waveform{}, errdefs.Input(path, err)
	}
	defer src.Close()

	rate := src.SampleRate()
	if rate <= 0 {
		return Waveform{}, errdefs.Input(path, ErrInvalidSampleRate)
	}

	samples, err := ReadMono(src, 0)
	if err != nil {
		return Waveform{}, errdefs.Input(path, err)
	}
	if len(samples) == 0 {
		return Waveform{}, errdefs.Input(path, ErrEmptyAudio)
	}

	return l.Reformat(samples, rate)
}

// Reformat resamples mono samples to the target rate, trims silence, then
// enforces the length bounds.
func (l *Loader) Reformat(samples []float32, rate int) (Waveform, error) {
	if len(samples) == 0 {
		return Waveform{}, fmt.Errorf("%w: %w", errdefs.ErrInput, ErrEmptyAudio)
	}

	y, err := Resample(samples, rate, l.cfg.TargetRate)
	if err != nil {
		return Waveform{}, fmt.Errorf("%w: resampling: %w", errdefs.ErrInput, err)
	}
	target := l.cfg.TargetRate

	if l.cfg.TopDB > 0 {
		if trimmed := TrimSilence(y, l.cfg.TopDB, l.cfg.FrameLength, l.cfg.HopLength); len(trimmed) > 0 {
			y = trimmed
		}
	}

	if minN := seconds(l.cfg.MinLength, target); len(y) < minN {
		y = tile(y, minN)
	}
	if l.cfg.MaxLength > 0 {
		if maxN := seconds(l.cfg.MaxLength, target); len(y) > maxN {
			y = y[:maxN]
		}
	}

	if l.cfg.TrimLastSecond {
		whole := len(y) / target * target
		if whole == 0 {
			y = tile(y, target)
		} else {
			y = y[:whole]
		}
	}

	return Waveform{Samples: y, Rate: target}, nil
}

func seconds(s float64, rate int) int {
	return int(math.Round(s * float64(rate)))
}

// tile repeats y end to end and truncates to n samples.
func tile(y []float32, n int) []float32 {
	out := make([]float32, n)
	for off := 0; off < n; off += len(y) {
		copy(out[off:], y)
	}
	return out
}
