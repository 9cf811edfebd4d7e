// SPDX-License-Identifier: EPL-2.0

package fsd50k

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ik5/aedset/errdefs"
)

// Concept is one AudioSet ontology node.
type Concept struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ChildIDs []string `json:"child_ids"`
}

// Ontology indexes AudioSet concepts and their transitive parents.
type Ontology struct {
	concepts  map[string]Concept
	parents   map[string][]string
	ancestors map[string]map[string]struct{}
}

// LoadOntology reads ontology JSON from path.
func LoadOntology(path string) (*Ontology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errdefs.Input(path, err)
	}
	defer f.Close()

	ont, err := ReadOntology(f)
	if err != nil {
		return nil, errdefs.Input(path, err)
	}
	return ont, nil
}

// ReadOntology decodes a JSON array of concepts.
func ReadOntology(r io.Reader) (*Ontology, error) {
	var concepts []Concept
	if err := json.NewDecoder(r).Decode(&concepts); err != nil {
		return nil, errdefs.Inputf("malformed ontology: %v", err)
	}
	return NewOntology(concepts)
}

// NewOntology indexes concepts and computes each one's ancestor set.
func NewOntology(concepts []Concept) (*Ontology, error) {
	o := &Ontology{
		concepts:  make(map[string]Concept, len(concepts)),
		parents:   make(map[string][]string),
		ancestors: make(map[string]map[string]struct{}, len(concepts)),
	}
	for _, c := range concepts {
		if c.ID == "" {
			return nil, errdefs.Inputf("ontology concept %q has no id", c.Name)
		}
		o.concepts[c.ID] = c
		for _, child := range c.ChildIDs {
			o.parents[child] = append(o.parents[child], c.ID)
		}
	}

	for id := range o.concepts {
		o.ancestors[id] = o.closure(id)
	}
	return o, nil
}

// closure walks parent edges breadth first; cycles terminate on the
// visited set.
func (o *Ontology) closure(id string) map[string]struct{} {
	seen := make(map[string]struct{})
	queue := append([]string(nil), o.parents[id]...)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if _, ok := seen[p]; ok || p == id {
			continue
		}
		seen[p] = struct{}{}
		queue = append(queue, o.parents[p]...)
	}
	return seen
}

// Len is the number of concepts.
func (o *Ontology) Len() int { return len(o.concepts) }

// Name returns the display name of id.
func (o *Ontology) Name(id string) (string, bool) {
	c, ok := o.concepts[id]
	return c.Name, ok
}

// IsAncestor reports whether a is a proper ancestor of id.
func (o *Ontology) IsAncestor(a, id string) bool {
	_, ok := o.ancestors[id][a]
	return ok
}
