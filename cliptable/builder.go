// SPDX-License-Identifier: EPL-2.0

package cliptable

import "slices"

// Builder accumulates rows into a Table, dropping repeated filenames.
// The first occurrence of a filename wins.
type Builder struct {
	t    *Table
	seen map[string]struct{}
	dups int
}

// NewBuilder starts a table with the given optional columns.
func NewBuilder(cols Columns) *Builder {
	return NewBuilderWithSymbols(cols, NewSymbols())
}

// NewBuilderWithSymbols starts a table interning into syms.
func NewBuilderWithSymbols(cols Columns, syms *Symbols) *Builder {
	return &Builder{
		t:    &Table{cols: cols, syms: syms},
		seen: make(map[string]struct{}),
	}
}

// Add appends r and reports whether it was kept.
func (b *Builder) Add(r Row) bool {
	if _, ok := b.seen[r.Filename]; ok {
		b.dups++
		return false
	}
	b.seen[r.Filename] = struct{}{}

	t := b.t
	t.filenames = append(t.filenames, r.Filename)
	t.category = append(t.category, t.syms.Intern(r.Category))
	if t.Has(ColFold) {
		t.fold = append(t.fold, r.Fold)
	}
	if t.Has(ColLabels) {
		t.labels = append(t.labels, slices.Clone(r.Labels))
		t.mids = append(t.mids, slices.Clone(r.MIDs))
	}
	return true
}

// Build returns the table. The builder must not be used afterwards.
func (b *Builder) Build() *Table {
	t := b.t
	t.dups = b.dups
	b.t = nil
	return t
}
