// SPDX-License-Identifier: EPL-2.0

// Package audio turns audio files into fixed-rate mono waveforms.
//
// It contains the decoding pipeline primitives and the clip loader built on
// top of them:
//   - Source and Decoder interfaces, and a Registry keyed by file extension
//   - MonoMixer for channel averaging
//   - Resample for sample rate conversion
//   - TrimSilence and NonSilentIntervals for energy based silence removal
//   - Loader, which chains all of the above and enforces length bounds
//
// # Loading clips
//
//	loader, err := audio.NewLoader(audio.DefaultLoaderConfig(), formats.NewRegistry())
//	if err != nil {
//	    return err
//	}
//	w, err := loader.Load("audio/dog/1-100032-A-0.wav")
//
// Load applies, in order: decode to mono, resample to TargetRate, drop
// silent regions, tile to MinLength, truncate to MaxLength and, when
// TrimLastSecond is set, truncate to a whole number of seconds.
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0]. Sources return io.EOF when finished.
//
// # Errors
//
// Loader failures wrap errdefs.ErrInput together with the underlying cause,
// so both are visible to errors.Is:
//
//	if errors.Is(err, errdefs.ErrInput) && errors.Is(err, fs.ErrNotExist) {
//	    // the CSV references a file that is not on disk
//	}
package audio
