// SPDX-License-Identifier: EPL-2.0

// Package aedset builds audio event detection datasets from labelled clip
// collections.
//
// A build reads ESC-10, a custom ESC style collection or FSD50K, turns every
// clip into fixed-size log-mel patches and serves them as batched tensors for
// training, validation, quantization and test.
//
// # Quick Start
//
//	cfg, err := config.Load("user_config.yaml")
//	if err != nil {
//	    return err
//	}
//	logger, _ := logging.New("aedset", cfg.General.LogLevel)
//
//	sets, err := aedset.BuildDatasets(ctx, cfg, logger)
//	if err != nil {
//	    return err
//	}
//	for b := range sets.Train.Batches() {
//	    // b.Patches is (B, n_mels, patch_length), b.Labels is (B, K)
//	}
//
// # Pipeline
//
// Each build runs the same stages:
//   - planner picks the tables for every split and freezes one label space
//   - audio.Loader decodes, resamples, trims silence and bounds clip length
//   - feature.Extractor computes the mel spectrogram and cuts patches
//   - dataset.Assembler stacks the patches and labels into a Stream
//
// # Supported Formats
//
// Clips may be WAV (8, 16, 24 and 32-bit PCM), AIFF, MP3 or Ogg Vorbis. The
// formats package registers the decoders under their file extensions.
//
// # Validation Clip Ids
//
// Validation and test streams carry the row index of the clip behind every
// patch, so that patch predictions can be grouped into clip predictions.
// These streams are never shuffled.
//
// # Errors
//
// Failures are either configuration errors (errdefs.ErrConfig) or input
// errors (errdefs.ErrInput). A single unreadable clip aborts the build.
package aedset
