// SPDX-License-Identifier: EPL-2.0

package planner

import (
	"context"
	"fmt"

	"github.com/ik5/aedset/dataset"
	"github.com/ik5/aedset/labels"
)

// BuildOptions are the stream settings shared by all splits.
type BuildOptions struct {
	BatchSize     int
	Shuffle       bool
	Cache         bool
	ExpandLastDim bool
	Seed          uint64
}

// Datasets holds one stream per planned split. Validation and test
// streams carry clip ids; Quant and Test are nil when not planned.
type Datasets struct {
	Space *labels.Space
	Train *dataset.Stream
	Valid *dataset.Stream
	Quant *dataset.Stream
	Test  *dataset.Stream
}

// Build assembles every split of plan. Only the training stream is
// shuffled.
func Build(ctx context.Context, plan *Plan, a *dataset.Assembler, opts BuildOptions) (*Datasets, error) {
	base := dataset.Options{
		BatchSize:     opts.BatchSize,
		Cache:         opts.Cache,
		ExpandLastDim: opts.ExpandLastDim,
		Seed:          opts.Seed,
		FileExtension: plan.FileExtension,
	}

	assemble := func(s *Split, shuffle, clipIDs bool) (*dataset.Stream, error) {
		if s == nil {
			return nil, nil
		}
		o := base
		o.Shuffle = shuffle
		o.ReturnClipIDs = clipIDs
		stream, err := a.Assemble(ctx, s.Table, s.AudioRoot, plan.Space, o)
		if err != nil {
			return nil, fmt.Errorf("%s set: %w", s.Name, err)
		}
		return stream, nil
	}

	out := &Datasets{Space: plan.Space}
	var err error
	if out.Train, err = assemble(&plan.Train, opts.Shuffle, false); err != nil {
		return nil, err
	}
	if out.Valid, err = assemble(&plan.Valid, false, true); err != nil {
		return nil, err
	}
	if out.Quant, err = assemble(plan.Quant, false, false); err != nil {
		return nil, err
	}
	if out.Test, err = assemble(plan.Test, false, true); err != nil {
		return nil, err
	}
	return out, nil
}
