// SPDX-License-Identifier: EPL-2.0

package cliptable

import (
	"math"
	"math/rand/v2"
	"slices"
)

// Filter keeps the rows for which keep returns true, in order.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := t.empty()
	for i, r := range t.Rows() {
		if keep(r) {
			out.appendFrom(t, i)
		}
	}
	return out
}

// FilterCategories keeps rows whose category is one of names.
func (t *Table) FilterCategories(names []string) *Table {
	want := make(map[Symbol]struct{}, len(names))
	for _, n := range names {
		if id, ok := t.syms.Lookup(n); ok {
			want[id] = struct{}{}
		}
	}
	out := t.empty()
	for i, id := range t.category {
		if _, ok := want[id]; ok {
			out.appendFrom(t, i)
		}
	}
	return out
}

// Select returns the rows at idx, in the order given. Indices may repeat.
func (t *Table) Select(idx []int) *Table {
	out := t.empty()
	for _, i := range idx {
		out.appendFrom(t, i)
	}
	return out
}

// Concat appends tables in order. Columns are the union of the inputs'
// columns and rows are not deduplicated.
func Concat(tables ...*Table) *Table {
	if len(tables) == 0 {
		return NewBuilder(0).Build()
	}
	out := tables[0].empty()
	for _, t := range tables[1:] {
		out.cols |= t.cols
	}
	for _, t := range tables {
		for i := range t.Len() {
			out.appendFrom(t, i)
		}
	}
	return out
}

// Project returns the table restricted to the optional columns in cols.
func (t *Table) Project(cols Columns) *Table {
	out := &Table{cols: t.cols & cols, syms: t.syms}
	for i := range t.Len() {
		out.appendFrom(t, i)
	}
	return out
}

// Categories returns the distinct categories present, sorted.
func (t *Table) Categories() []string {
	seen := make(map[Symbol]struct{})
	var out []string
	for _, id := range t.category {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, t.syms.Name(id))
		}
	}
	slices.Sort(out)
	return out
}

// CountByCategory counts rows per category.
func (t *Table) CountByCategory() map[string]int {
	out := make(map[string]int)
	for i := range t.category {
		out[t.Category(i)]++
	}
	return out
}

// Relabel rewrites every row's category to fn(row).
func (t *Table) Relabel(fn func(Row) string) *Table {
	out := t.empty()
	for i, r := range t.Rows() {
		out.appendFrom(t, i)
		out.category[i] = out.syms.Intern(fn(r))
	}
	return out
}

// MapLabels rewrites every row's label and machine id lists. The result
// carries the labels column.
func (t *Table) MapLabels(fn func(Row) (labels, mids []string)) *Table {
	out := t.empty()
	out.cols |= ColLabels
	for i, r := range t.Rows() {
		out.appendFrom(t, i)
		out.labels[i], out.mids[i] = fn(r)
	}
	return out
}

// StratifiedSplit moves round(frac*n) rows of every category into the
// second table. Both tables keep the input row order.
func (t *Table) StratifiedSplit(frac float64, rng *rand.Rand) (rest, split *Table) {
	byCat := make(map[string][]int)
	for i := range t.category {
		c := t.Category(i)
		byCat[c] = append(byCat[c], i)
	}

	picked := make([]bool, t.Len())
	for _, c := range t.Categories() {
		idx := byCat[c]
		n := int(math.Round(frac * float64(len(idx))))
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		for _, i := range idx[:n] {
			picked[i] = true
		}
	}

	var a, b []int
	for i, p := range picked {
		if p {
			b = append(b, i)
		} else {
			a = append(a, i)
		}
	}
	return t.Select(a), t.Select(b)
}

// Sample draws round(frac*n) distinct rows, keeping input order.
func (t *Table) Sample(frac float64, rng *rand.Rand) *Table {
	n := int(math.Round(frac * float64(t.Len())))
	idx := rng.Perm(t.Len())[:n]
	slices.Sort(idx)
	return t.Select(idx)
}

// Shuffle returns the rows in random order.
func (t *Table) Shuffle(rng *rand.Rand) *Table {
	return t.Select(rng.Perm(t.Len()))
}
