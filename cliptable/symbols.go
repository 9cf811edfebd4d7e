// SPDX-License-Identifier: EPL-2.0

package cliptable

// Symbol is an interned category name.
type Symbol int32

// Symbols interns category strings. It is append-only.
type Symbols struct {
	names []string
	ids   map[string]Symbol
}

// NewSymbols returns an empty symbol set.
func NewSymbols() *Symbols {
	return &Symbols{ids: make(map[string]Symbol)}
}

// Intern returns the symbol for name, adding it if needed.
func (s *Symbols) Intern(name string) Symbol {
	if id, ok := s.ids[name]; ok {
		return id
	}
	id := Symbol(len(s.names))
	s.names = append(s.names, name)
	s.ids[name] = id
	return id
}

// Lookup returns the symbol for name without adding it.
func (s *Symbols) Lookup(name string) (Symbol, bool) {
	id, ok := s.ids[name]
	return id, ok
}

// Name returns the string behind id.
func (s *Symbols) Name(id Symbol) string { return s.names[id] }

// Len is the number of interned names.
func (s *Symbols) Len() int { return len(s.names) }
