// Package index implements the in-memory filename search core: a trie
// for prefix lookups, an exact name table and an inverted word index,
// combined behind one SearchIndex with relevance ranking.
//
// Names are matched case-insensitively and an entry's identity is its
// lowercased absolute path, so the same file never appears twice no
// matter how many lookup strategies produce it. The index is built once
// and queried many times; see pkg/catalog for the lifecycle wrapper
// that makes the swap safe under concurrent readers.
package index

// ISearcher is the read/write surface of the search core. SearchIndex
// is the only implementation; the interface exists so the server and
// the interactive prompt can be tested against small fakes.
type ISearcher interface {
	// Add indexes a single entry, idempotently by path.
	Add(entry *Entry)
	// AddPath stats and indexes path, reporting whether it was added.
	AddPath(path string) bool
	// Search returns up to maxResults ranked matches for query.
	Search(query string, maxResults int) []*Entry
	// TotalIndexed returns the number of distinct indexed paths.
	TotalIndexed() int
	// Stats reports internal structure sizes.
	Stats() map[string]int
}
