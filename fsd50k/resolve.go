// SPDX-License-Identifier: EPL-2.0

package fsd50k

import (
	"slices"

	"github.com/ik5/aedset/cliptable"
)

// Unsmear removes from each row every label whose machine id is a proper
// ancestor of another label on the same row. Labels with ids unknown to
// the ontology are kept.
func Unsmear(t *cliptable.Table, ont *Ontology) *cliptable.Table {
	return t.MapLabels(func(r cliptable.Row) ([]string, []string) {
		var labels, mids []string
		for j, id := range r.MIDs {
			general := false
			for k, other := range r.MIDs {
				if k != j && ont.IsAncestor(id, other) {
					general = true
					break
				}
			}
			if !general {
				labels = append(labels, r.Labels[j])
				mids = append(mids, id)
			}
		}
		return labels, mids
	})
}

// ProjectMonolabel gives every row a single category. The first entry of
// classNames present on the row wins. Rows with no preferred label are
// dropped when onlyKeepMonolabel is set and otherwise keep their first
// label. Rows without labels are dropped. The result is in ESC layout;
// the number of dropped rows is returned.
func ProjectMonolabel(t *cliptable.Table, classNames []string, onlyKeepMonolabel bool) (*cliptable.Table, int) {
	pick := func(r cliptable.Row) (string, bool) {
		return monolabel(r.Labels, classNames, onlyKeepMonolabel)
	}

	kept := t.Filter(func(r cliptable.Row) bool {
		_, ok := pick(r)
		return ok
	})
	out := kept.Relabel(func(r cliptable.Row) string {
		c, _ := pick(r)
		return c
	})
	return out.Project(0), t.Len() - kept.Len()
}

func monolabel(labels, preferred []string, onlyKeepMonolabel bool) (string, bool) {
	for _, p := range preferred {
		if slices.Contains(labels, p) {
			return p, true
		}
	}
	if onlyKeepMonolabel || len(labels) == 0 {
		return "", false
	}
	return labels[0], true
}
