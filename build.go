// SPDX-License-Identifier: EPL-2.0

package aedset

import (
	"context"

	"github.com/ik5/aedset/audio"
	"github.com/ik5/aedset/config"
	"github.com/ik5/aedset/dataset"
	"github.com/ik5/aedset/feature"
	"github.com/ik5/aedset/formats"
	"github.com/ik5/aedset/logging"
	"github.com/ik5/aedset/planner"
)

// NewAssembler returns an assembler using every registered audio format
// and the loader and feature settings of cfg.
func NewAssembler(cfg config.Config, logger logging.Logger) (*dataset.Assembler, error) {
	loader, err := audio.NewLoader(cfg.Loader(), formats.NewRegistry())
	if err != nil {
		return nil, err
	}
	ex, err := feature.NewExtractor(cfg.Feature(), cfg.Preprocessing.TargetRate)
	if err != nil {
		return nil, err
	}
	return &dataset.Assembler{Loader: loader, Extractor: ex, Logger: logger}, nil
}

// BuildDatasets plans the splits described by cfg and assembles them.
func BuildDatasets(ctx context.Context, cfg config.Config, logger logging.Logger) (*planner.Datasets, error) {
	logger = logging.OrNop(logger)

	plan, err := planner.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	a, err := NewAssembler(cfg, logger)
	if err != nil {
		return nil, err
	}

	return planner.Build(ctx, plan, a, planner.BuildOptions{
		BatchSize:     cfg.Training.BatchSize,
		Shuffle:       cfg.Dataset.Shuffle,
		Cache:         cfg.Dataset.ToCache,
		ExpandLastDim: cfg.Dataset.ExpandLastDim,
		Seed:          cfg.Dataset.Seed,
	})
}

// Preview loads one clip the way a build would and returns the waveform
// and its patches.
func Preview(cfg config.Config, path string) (audio.Waveform, *feature.PatchSet, error) {
	a, err := NewAssembler(cfg, nil)
	if err != nil {
		return audio.Waveform{}, nil, err
	}
	w, err := a.Loader.Load(path)
	if err != nil {
		return audio.Waveform{}, nil, err
	}
	return w, a.Extractor.Extract(w.Samples), nil
}
