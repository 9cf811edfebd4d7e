// SPDX-License-Identifier: EPL-2.0

package cliptable

import (
	"iter"
	"slices"
)

// Columns flags the optional columns a table carries.
type Columns uint8

const (
	ColFold Columns = 1 << iota
	ColLabels
)

// Row is one clip record.
type Row struct {
	Filename string
	Category string
	Fold     int      // 0 when the table has no fold column
	Labels   []string // FSD50K leaf names
	MIDs     []string // AudioSet machine ids, parallel to Labels
}

// Table is an ordered, immutable list of clips.
type Table struct {
	cols      Columns
	syms      *Symbols
	filenames []string
	category  []Symbol
	fold      []int
	labels    [][]string
	mids      [][]string
	dups      int
}

// Len is the number of rows.
func (t *Table) Len() int { return len(t.filenames) }

// Columns reports the optional columns present.
func (t *Table) Columns() Columns { return t.cols }

// Has reports whether the table carries column c.
func (t *Table) Has(c Columns) bool { return t.cols&c != 0 }

// Duplicates is the number of rows a Builder dropped for repeating a
// filename. Tables derived by other operations report zero.
func (t *Table) Duplicates() int { return t.dups }

// Symbols returns the table's symbol set.
func (t *Table) Symbols() *Symbols { return t.syms }

// Filename returns row i's filename.
func (t *Table) Filename(i int) string { return t.filenames[i] }

// Category returns row i's category.
func (t *Table) Category(i int) string { return t.syms.Name(t.category[i]) }

// CategorySymbol returns row i's interned category.
func (t *Table) CategorySymbol(i int) Symbol { return t.category[i] }

// Row returns a copy of row i.
func (t *Table) Row(i int) Row {
	r := Row{Filename: t.filenames[i], Category: t.Category(i)}
	if t.Has(ColFold) {
		r.Fold = t.fold[i]
	}
	if t.Has(ColLabels) {
		r.Labels = slices.Clone(t.labels[i])
		r.MIDs = slices.Clone(t.mids[i])
	}
	return r
}

// Rows yields rows in order.
func (t *Table) Rows() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i := range t.filenames {
			if !yield(i, t.Row(i)) {
				return
			}
		}
	}
}

func (t *Table) empty() *Table {
	return &Table{cols: t.cols, syms: t.syms}
}

func (t *Table) appendFrom(src *Table, i int) {
	t.filenames = append(t.filenames, src.filenames[i])
	if src.syms == t.syms {
		t.category = append(t.category, src.category[i])
	} else {
		t.category = append(t.category, t.syms.Intern(src.Category(i)))
	}
	if t.Has(ColFold) {
		fold := 0
		if src.Has(ColFold) {
			fold = src.fold[i]
		}
		t.fold = append(t.fold, fold)
	}
	if t.Has(ColLabels) {
		var l, m []string
		if src.Has(ColLabels) {
			l, m = src.labels[i], src.mids[i]
		}
		t.labels = append(t.labels, l)
		t.mids = append(t.mids, m)
	}
}
