// SPDX-License-Identifier: EPL-2.0

// Package cliptable holds the ordered clip lists that datasets are built
// from.
//
// A Table is a column store: filenames, interned category symbols and the
// optional fold, label and machine id columns. Tables are immutable; every
// operation returns a new table that shares the symbol set of its input.
//
// Tables are read from ESC style CSV files (filename, category, optional
// fold) or from FSD50K ground truth files (fname, labels, mids):
//
//	t, err := cliptable.LoadESC("meta/esc50.csv")
//	if err != nil {
//	    return err
//	}
//	train := t.Filter(func(r cliptable.Row) bool { return r.Fold != 5 })
//
// ComposeGarbage folds out-of-distribution categories into a single
// "other" class. All randomness comes from an explicit *rand.Rand.
package cliptable
