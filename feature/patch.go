// SPDX-License-Identifier: EPL-2.0

package feature

import (
	"iter"

	"github.com/ik5/aedset/utils"
)

const (
	dbAmin    = 1e-10
	dbTopDB   = 80.0
	logOffset = 1e-4
)

// Patch is one fixed-size window of a spectrogram, mel-major.
type Patch struct {
	NMels  int
	Length int
	Data   []float32
}

// At returns the value for mel band m at frame t within the patch.
func (p Patch) At(m, t int) float32 {
	return p.Data[m*p.Length+t]
}

// PatchSet is the ordered patch sequence of one clip. Patches are cut
// from the scaled spectrogram on demand, so iterating is repeatable.
type PatchSet struct {
	spec    Spectrogram
	length  int
	offsets []int
}

// Len is the number of patches.
func (s *PatchSet) Len() int { return len(s.offsets) }

// Offsets returns the starting frame of each patch.
func (s *PatchSet) Offsets() []int {
	return append([]int(nil), s.offsets...)
}

// Spectrogram returns the scaled spectrogram the patches are cut from,
// already padded when the clip was shorter than one patch.
func (s *PatchSet) Spectrogram() Spectrogram { return s.spec }

// At copies patch i.
func (s *PatchSet) At(i int) Patch {
	p := Patch{NMels: s.spec.NMels, Length: s.length, Data: make([]float32, s.spec.NMels*s.length)}
	s.copyPatch(p.Data, s.offsets[i])
	return p
}

// All yields patches in temporal order.
func (s *PatchSet) All() iter.Seq2[int, Patch] {
	return func(yield func(int, Patch) bool) {
		for i := range s.offsets {
			if !yield(i, s.At(i)) {
				return
			}
		}
	}
}

// AppendTo appends every patch, mel-major, to dst.
func (s *PatchSet) AppendTo(dst []float32) []float32 {
	size := s.spec.NMels * s.length
	for _, off := range s.offsets {
		n := len(dst)
		dst = append(dst, make([]float32, size)...)
		s.copyPatch(dst[n:], off)
	}
	return dst
}

func (s *PatchSet) copyPatch(dst []float32, offset int) {
	for m := range s.spec.NMels {
		row := s.spec.Data[m*s.spec.Frames:]
		copy(dst[m*s.length:(m+1)*s.length], row[offset:offset+s.length])
	}
}

// patchOffsets lists patch start frames over a spectrogram of frames
// columns. Spectrograms no longer than one patch produce a single offset.
func patchOffsets(frames, length, stride int, includeLast bool) []int {
	if frames <= length {
		return []int{0}
	}
	var out []int
	for off := 0; off+length <= frames; off += stride {
		out = append(out, off)
	}
	if includeLast && out[len(out)-1]+length < frames {
		out = append(out, frames-length)
	}
	return out
}

// padFrames right-pads every mel row to length frames by repeating the
// last value.
func padFrames(spec Spectrogram, length int) Spectrogram {
	out := Spectrogram{NMels: spec.NMels, Frames: length, Data: make([]float32, spec.NMels*length)}
	for m := range spec.NMels {
		src := spec.Data[m*spec.Frames : (m+1)*spec.Frames]
		dst := out.Data[m*length : (m+1)*length]
		n := copy(dst, src)
		if n == 0 {
			continue
		}
		for t := n; t < length; t++ {
			dst[t] = src[n-1]
		}
	}
	return out
}

// Extractor turns waveforms at a fixed sample rate into patch sets. It
// reuses FFT scratch space and must not be shared across goroutines.
type Extractor struct {
	cfg  Config
	rate int
	stft *stft
	fb   *Filterbank
}

// NewExtractor validates cfg against rate and precomputes the window and
// the mel filterbank.
func NewExtractor(cfg Config, rate int) (*Extractor, error) {
	if err := cfg.Validate(rate); err != nil {
		return nil, err
	}
	st, err := newSTFT(cfg)
	if err != nil {
		return nil, err
	}
	return &Extractor{
		cfg:  cfg,
		rate: rate,
		stft: st,
		fb:   NewFilterbank(rate, cfg.NFFT, cfg.NMels, cfg.FMin, cfg.MaxFrequency(rate), cfg.HTK, cfg.Norm),
	}, nil
}

// Config returns the extractor's configuration.
func (e *Extractor) Config() Config { return e.cfg }

// Rate is the sample rate the extractor expects.
func (e *Extractor) Rate() int { return e.rate }

// Frames is the spectrogram width produced for n samples.
func (e *Extractor) Frames(n int) int { return e.stft.frameCount(n) }

// MelSpectrogram computes the scaled mel spectrogram of y. With ToDB the
// power is converted to decibels relative to the clip maximum, otherwise
// the natural log of power plus a small offset is taken.
func (e *Extractor) MelSpectrogram(y []float32) Spectrogram {
	spec := e.stft.melPower(y, e.fb)
	if e.cfg.ToDB {
		utils.PowerToDB(spec.Data, dbAmin, dbTopDB)
	} else {
		utils.LogOffset(spec.Data, logOffset)
	}
	return spec
}

// Extract computes the patch set of one clip.
func (e *Extractor) Extract(y []float32) *PatchSet {
	spec := e.MelSpectrogram(y)
	if spec.Frames < e.cfg.PatchLength {
		spec = padFrames(spec, e.cfg.PatchLength)
	}
	return &PatchSet{
		spec:    spec,
		length:  e.cfg.PatchLength,
		offsets: patchOffsets(spec.Frames, e.cfg.PatchLength, e.cfg.Stride(), e.cfg.IncludeLastPatch),
	}
}
