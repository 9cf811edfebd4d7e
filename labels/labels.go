// SPDX-License-Identifier: EPL-2.0

// Package labels maps class names to integer indices and indicator
// vectors.
//
// A Space is built once per dataset build from the categories that survive
// filtering, and shared by every split. Class order is alphabetical; the
// garbage class "other" sorts like any other name.
package labels

import (
	"slices"
	"strings"

	"github.com/ik5/aedset/errdefs"
)

// Space is a frozen, sorted set of class names.
type Space struct {
	names []string
	index map[string]int
}

// Build returns the space over present. Every requested class must be
// present; present may add classes such as "other".
func Build(requested, present []string) (*Space, error) {
	if len(requested) == 0 {
		return nil, errdefs.Configf("no classes requested")
	}

	names := slices.Clone(present)
	slices.Sort(names)
	names = slices.Compact(names)

	var missing []string
	for _, r := range requested {
		if _, ok := slices.BinarySearch(names, r); !ok {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return nil, errdefs.Configf("classes not found: %s", strings.Join(missing, ", "))
	}

	s := &Space{names: names, index: make(map[string]int, len(names))}
	for i, n := range names {
		s.index[n] = i
	}
	return s, nil
}

// K is the number of classes.
func (s *Space) K() int { return len(s.names) }

// Names returns the class names in index order.
func (s *Space) Names() []string { return slices.Clone(s.names) }

// IndexOf returns the index of name.
func (s *Space) IndexOf(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// OneHot returns a K-wide indicator for name.
func (s *Space) OneHot(name string) ([]float32, error) {
	v := make([]float32, s.K())
	if err := s.PutOneHot(v, name); err != nil {
		return nil, err
	}
	return v, nil
}

// PutOneHot writes the indicator for name into dst, which must hold K
// values and is cleared first.
func (s *Space) PutOneHot(dst []float32, name string) error {
	i, ok := s.index[name]
	if !ok {
		return errdefs.Configf("class %q is not in the label space", name)
	}
	clear(dst[:s.K()])
	dst[i] = 1
	return nil
}
