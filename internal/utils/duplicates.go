package utils

// IdentityFilter tracks identity keys that were already produced so
// callers can merge candidate streams while keeping first-seen order.
type IdentityFilter struct {
	seenKeys map[string]bool
}

// NewIdentityFilter creates an empty filter.
func NewIdentityFilter() *IdentityFilter {
	return &IdentityFilter{seenKeys: make(map[string]bool)}
}

// ShouldInclude checks if a key should be included in results (not a duplicate)
// Returns true on first sight and marks the key as seen.
func (f *IdentityFilter) ShouldInclude(key string) bool {
	if f.seenKeys[key] {
		return false
	}
	f.seenKeys[key] = true
	return true
}

// Len returns the number of distinct keys seen so far.
func (f *IdentityFilter) Len() int {
	return len(f.seenKeys)
}
