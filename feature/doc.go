// SPDX-License-Identifier: EPL-2.0

// Package feature computes log-mel spectrograms and cuts them into
// fixed-size patches.
//
// An Extractor is bound to one Config and one sample rate:
//
//	ex, err := feature.NewExtractor(feature.DefaultConfig(), 16000)
//	if err != nil {
//	    return err
//	}
//	patches := ex.Extract(w.Samples)
//	for i, p := range patches.All() {
//	    ...
//	}
//
// The spectrogram is framed with a periodic window, transformed with a real
// FFT, raised to Power and projected onto NMels triangular mel filters
// (Slaney or HTK scale). With ToDB set the result is in decibels relative
// to the clip maximum, clipped 80 dB below the peak; otherwise it is
// log(x + 1e-4).
//
// Patches of PatchLength frames start every round(PatchLength*(1-Overlap))
// frames. IncludeLastPatch adds one patch ending on the final frame when
// the regular stride leaves frames uncovered. Clips shorter than one patch
// are padded on the right with each band's last value.
package feature
