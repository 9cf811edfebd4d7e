// SPDX-License-Identifier: EPL-2.0

package feature

import "math"

// Slaney mel scale constants: linear below 1 kHz, logarithmic above.
const (
	slaneyStep   = 200.0 / 3
	slaneyMinHz  = 1000.0
	slaneyMinMel = slaneyMinHz / slaneyStep
)

var slaneyLogStep = math.Log(6.4) / 27.0

// HzToMel converts a frequency to mels on the HTK or Slaney scale.
func HzToMel(hz float64, htk bool) float64 {
	if htk {
		return 2595.0 * math.Log10(1.0+hz/700.0)
	}
	if hz < slaneyMinHz {
		return hz / slaneyStep
	}
	return slaneyMinMel + math.Log(hz/slaneyMinHz)/slaneyLogStep
}

// MelToHz is the inverse of HzToMel.
func MelToHz(mel float64, htk bool) float64 {
	if htk {
		return 700.0 * (math.Pow(10, mel/2595.0) - 1.0)
	}
	if mel < slaneyMinMel {
		return mel * slaneyStep
	}
	return slaneyMinHz * math.Exp(slaneyLogStep*(mel-slaneyMinMel))
}

// sparseFilter stores only the non-zero range of a triangular filter.
type sparseFilter struct {
	start  int
	coeffs []float64
}

// Filterbank is a set of triangular mel filters over FFT bins.
type Filterbank struct {
	Weights [][]float64 // [nMels][nFFT/2+1]
	sparse  []sparseFilter
}

// NewFilterbank builds nMels triangular filters spaced evenly in mels
// between fmin and fmax. With norm "slaney" each filter is scaled to unit
// area in Hz.
func NewFilterbank(rate, nFFT, nMels int, fmin, fmax float64, htk bool, norm string) *Filterbank {
	nBins := nFFT/2 + 1

	fftFreqs := make([]float64, nBins)
	for k := range fftFreqs {
		fftFreqs[k] = float64(k) * float64(rate) / float64(nFFT)
	}

	lo, hi := HzToMel(fmin, htk), HzToMel(fmax, htk)
	melHz := make([]float64, nMels+2)
	for i := range melHz {
		melHz[i] = MelToHz(lo+(hi-lo)*float64(i)/float64(nMels+1), htk)
	}

	weights := make([][]float64, nMels)
	for m := range weights {
		weights[m] = make([]float64, nBins)
		left, center, right := melHz[m], melHz[m+1], melHz[m+2]

		scale := 1.0
		if norm == "slaney" {
			scale = 2.0 / (right - left)
		}

		for k, f := range fftFreqs {
			lower := (f - left) / (center - left)
			upper := (right - f) / (right - center)
			if w := math.Min(lower, upper); w > 0 {
				weights[m][k] = w * scale
			}
		}
	}

	fb := &Filterbank{Weights: weights, sparse: make([]sparseFilter, nMels)}
	for m, w := range weights {
		start, end := -1, 0
		for k, v := range w {
			if v != 0 {
				if start < 0 {
					start = k
				}
				end = k + 1
			}
		}
		if start >= 0 {
			fb.sparse[m] = sparseFilter{start: start, coeffs: w[start:end]}
		}
	}

	return fb
}

// NumMels is the number of filters.
func (fb *Filterbank) NumMels() int { return len(fb.Weights) }

// Apply projects one spectrum frame onto the filters, writing dst[m*stride].
func (fb *Filterbank) Apply(spectrum []float64, dst []float32, stride int) {
	for m, sf := range fb.sparse {
		var sum float64
		for j, c := range sf.coeffs {
			sum += spectrum[sf.start+j] * c
		}
		dst[m*stride] = float32(sum)
	}
}
