package index

import "sort"

// ExactIndex maps a lowercased full name to every entry carrying that
// name. Same-named entries in different locations coexist in insertion
// order; Put never overwrites.
type ExactIndex struct {
	names map[string][]*Entry
}

// NewExactIndex returns an empty exact-name index.
func NewExactIndex() *ExactIndex {
	return &ExactIndex{names: make(map[string][]*Entry)}
}

// Put appends entry under the name key.
func (x *ExactIndex) Put(name string, entry *Entry) {
	x.names[name] = append(x.names[name], entry)
}

// Get returns the entries whose name is exactly name, or nil.
func (x *ExactIndex) Get(name string) []*Entry {
	return x.names[name]
}

// Names returns every indexed name in sorted order. The substring
// fallback iterates this, which keeps its candidate order stable across
// runs.
func (x *ExactIndex) Names() []string {
	keys := make([]string, 0, len(x.names))
	for name := range x.names {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of distinct names.
func (x *ExactIndex) Len() int {
	return len(x.names)
}
