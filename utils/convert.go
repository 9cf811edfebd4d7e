// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1.0 from overflowing
	return int16(x * 32767.0)
}

// PowerToDB converts power values in place to 10*log10(x/ref) with
// ref = max(x). Values are floored at amin before the logarithm and, when
// topDB > 0, clipped to no less than topDB below the peak.
func PowerToDB(x []float32, amin, topDB float64) {
	if len(x) == 0 {
		return
	}

	ref := amin
	for _, v := range x {
		if float64(v) > ref {
			ref = float64(v)
		}
	}
	refDB := 10 * math.Log10(ref)

	peak := math.Inf(-1)
	for i, v := range x {
		db := 10*math.Log10(math.Max(amin, float64(v))) - refDB
		x[i] = float32(db)
		if db > peak {
			peak = db
		}
	}

	if topDB <= 0 {
		return
	}
	floor := float32(peak - topDB)
	for i, v := range x {
		if v < floor {
			x[i] = floor
		}
	}
}

// LogOffset replaces x in place with log(x + offset).
func LogOffset(x []float32, offset float64) {
	for i, v := range x {
		x[i] = float32(math.Log(float64(v) + offset))
	}
}
