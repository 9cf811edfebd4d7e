// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"

	"github.com/ik5/aedset/utils"
	"github.com/mjibson/go-dsp/window"
)

// lowPassHalfTaps is the one-sided length of the anti-aliasing FIR.
const lowPassHalfTaps = 32

// Resample converts mono samples from srcRate to dstRate with Catmull-Rom
// interpolation. When downsampling, the input first goes through a
// Hann-windowed sinc low-pass at the destination Nyquist frequency.
// The output holds round(len(samples) * dstRate / srcRate) samples.
func Resample(samples []float32, srcRate, dstRate int) ([]float32, error) {
	if srcRate <= 0 || dstRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if srcRate == dstRate || len(samples) == 0 {
		out := make([]float32, len(samples))
		copy(out, samples)
		return out, nil
	}

	in := samples
	if dstRate < srcRate {
		in = lowPass(samples, float64(dstRate)/float64(srcRate))
	}

	n := int(math.Round(float64(len(samples)) * float64(dstRate) / float64(srcRate)))
	if n < 1 {
		n = 1
	}

	ratio := float64(srcRate) / float64(dstRate)
	last := len(in) - 1
	at := func(i int) float32 {
		if i < 0 {
			return in[0]
		}
		if i > last {
			return in[last]
		}
		return in[i]
	}

	out := make([]float32, n)
	for j := range out {
		pos := float64(j) * ratio
		i := int(pos)
		frac := float32(pos - float64(i))
		out[j] = utils.CubicInterpolate(at(i-1), at(i), at(i+1), at(i+2), frac)
	}

	return out, nil
}

// lowPass filters x with cutoff given as a fraction of the Nyquist frequency.
// Taps are normalized to unity DC gain.
func lowPass(x []float32, cutoff float64) []float32 {
	taps := 2*lowPassHalfTaps + 1
	win := window.Hann(taps)

	h := make([]float64, taps)
	var sum float64
	for k := range h {
		t := float64(k - lowPassHalfTaps)
		h[k] = cutoff * utils.Sinc(cutoff*t) * win[k]
		sum += h[k]
	}
	for k := range h {
		h[k] /= sum
	}

	out := make([]float32, len(x))
	for i := range x {
		lo := max(0, lowPassHalfTaps-i)
		hi := min(taps, len(x)-i+lowPassHalfTaps)

		var acc float64
		for k := lo; k < hi; k++ {
			acc += h[k] * float64(x[i+k-lowPassHalfTaps])
		}
		out[i] = float32(acc)
	}

	return out
}
