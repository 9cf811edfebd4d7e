// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// Interval is a half-open [Start, End) range of sample indices.
type Interval struct {
	Start, End int
}

// NonSilentIntervals splits y into regions whose short-time energy is within
// topDB decibels of the loudest frame. Frames are frameLength samples wide,
// centered on multiples of hopLength, with zero padding at both ends.
// A signal with no energy at all is returned as a single interval.
func NonSilentIntervals(y []float32, topDB float64, frameLength, hopLength int) []Interval {
	if len(y) == 0 {
		return nil
	}

	mse := frameEnergy(y, frameLength, hopLength)

	ref := 0.0
	for _, e := range mse {
		ref = math.Max(ref, e)
	}
	const amin = 1e-10
	refDB := 10 * math.Log10(math.Max(amin, ref))

	var (
		out    []Interval
		inside bool
		start  int
	)
	for f, e := range mse {
		loud := 10*math.Log10(math.Max(amin, e))-refDB > -topDB
		switch {
		case loud && !inside:
			start, inside = f, true
		case !loud && inside:
			out = append(out, frameInterval(start, f, hopLength, len(y)))
			inside = false
		}
	}
	if inside {
		out = append(out, frameInterval(start, len(mse), hopLength, len(y)))
	}

	return out
}

func frameInterval(startFrame, endFrame, hop, n int) Interval {
	return Interval{
		Start: min(startFrame*hop, n),
		End:   min(endFrame*hop, n),
	}
}

// frameEnergy returns the mean squared amplitude of each centered frame.
func frameEnergy(y []float32, frameLength, hopLength int) []float64 {
	half := frameLength / 2
	padded := len(y) + 2*half

	frames := 1
	if padded >= frameLength {
		frames = 1 + (padded-frameLength)/hopLength
	}

	// prefix[i] is the sum of squares of y[:i]
	prefix := make([]float64, len(y)+1)
	for i, v := range y {
		prefix[i+1] = prefix[i] + float64(v)*float64(v)
	}

	out := make([]float64, frames)
	for f := range out {
		lo := f*hopLength - half
		hi := lo + frameLength
		lo = min(max(lo, 0), len(y))
		hi = min(max(hi, 0), len(y))
		out[f] = (prefix[hi] - prefix[lo]) / float64(frameLength)
	}

	return out
}

// TrimSilence concatenates the non-silent regions of y in order.
func TrimSilence(y []float32, topDB float64, frameLength, hopLength int) []float32 {
	intervals := NonSilentIntervals(y, topDB, frameLength, hopLength)

	total := 0
	for _, iv := range intervals {
		total += iv.End - iv.Start
	}
	if total == len(y) {
		return y
	}

	out := make([]float32, 0, total)
	for _, iv := range intervals {
		out = append(out, y[iv.Start:iv.End]...)
	}
	return out
}
