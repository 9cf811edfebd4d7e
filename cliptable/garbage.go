// SPDX-License-Identifier: EPL-2.0

package cliptable

import (
	"math/rand/v2"
	"slices"
)

// Garbage is the category given to out-of-distribution clips.
const Garbage = "other"

// ComposeGarbage keeps every row whose category is in keep and adds, for
// each other category in sorted order, nPerOther rows drawn with
// replacement and relabeled Garbage. When nPerOther <= 0 it becomes
// ceil(in-distribution rows / out-of-distribution categories). The number
// actually used is returned.
func ComposeGarbage(t *Table, keep []string, nPerOther int, rng *rand.Rand, shuffle bool) (*Table, int) {
	inDist := t.FilterCategories(keep)

	var ood []string
	for _, c := range t.Categories() {
		if !slices.Contains(keep, c) {
			ood = append(ood, c)
		}
	}
	if len(ood) == 0 {
		return inDist, 0
	}

	if nPerOther <= 0 {
		nPerOther = (inDist.Len() + len(ood) - 1) / len(ood)
	}

	byCat := make(map[string][]int)
	for i := range t.category {
		c := t.Category(i)
		byCat[c] = append(byCat[c], i)
	}

	var sampled []int
	for _, c := range ood {
		rows := byCat[c]
		for range nPerOther {
			sampled = append(sampled, rows[rng.IntN(len(rows))])
		}
	}
	others := t.Select(sampled).Relabel(func(Row) string { return Garbage })

	out := Concat(inDist, others)
	if shuffle {
		out = out.Shuffle(rng)
	}
	return out, nPerOther
}
