// SPDX-License-Identifier: EPL-2.0

// Package dataset turns clip tables into batched patch streams.
//
// Assemble loads every clip of a table in row order, cuts it into patches
// and stacks them into one dense tensor. The resulting Stream yields
// (patches, labels) batches:
//
//	a := &dataset.Assembler{Loader: loader, Extractor: ex, Logger: logger}
//	s, err := a.Assemble(ctx, table, "ESC-50/audio", space, dataset.Options{
//	    BatchSize: 64,
//	    Shuffle:   true,
//	    Seed:      133,
//	})
//	for b := range s.Batches() {
//	    train(b.Patches, b.Labels)
//	}
//
// With ReturnClipIDs the stream also carries, for every patch, the row
// index of the clip it came from. Those ids are positional, so such a
// stream is never shuffled.
//
// A Stream is meant for a single consumer.
package dataset
