package index

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pathserve/pathserve/internal/utils"
)

const (
	// DefaultMaxResults caps how many entries a search returns.
	DefaultMaxResults = 50
	// DefaultMinTokenLength is the length at or below which name tokens
	// are discarded by the word index.
	DefaultMinTokenLength = 2
	// DefaultMaxNameBonus is the name length the shortness bonus counts
	// down from.
	DefaultMaxNameBonus = 30
)

// DefaultCommonDirs returns the parent directory names that attract the
// ranking bonus when no override is configured.
func DefaultCommonDirs() []string {
	return []string{"documents", "desktop", "downloads"}
}

// Options configures a SearchIndex. Zero values fall back to the
// package defaults, so Options{} behaves exactly like New().
type Options struct {
	MaxResults     int
	MinTokenLength int
	MaxNameBonus   int
	CommonDirs     []string
}

// SearchIndex combines the trie, the exact name table and the word
// index behind a single add/search surface. It is not safe for
// concurrent mutation; build it fully, then share it for reads.
type SearchIndex struct {
	trie  *Trie
	exact *ExactIndex
	words *WordIndex

	indexed    map[string]bool
	totalItems int

	maxResults   int
	minTokenLen  int
	maxNameBonus int
	commonDirs   []string
}

// New returns a SearchIndex with the package defaults.
func New() *SearchIndex {
	return NewWithOptions(Options{})
}

// NewWithOptions returns a SearchIndex configured by opts.
func NewWithOptions(opts Options) *SearchIndex {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.MinTokenLength <= 0 {
		opts.MinTokenLength = DefaultMinTokenLength
	}
	if opts.MaxNameBonus <= 0 {
		opts.MaxNameBonus = DefaultMaxNameBonus
	}
	if len(opts.CommonDirs) == 0 {
		opts.CommonDirs = DefaultCommonDirs()
	}

	commonDirs := make([]string, len(opts.CommonDirs))
	for i, dir := range opts.CommonDirs {
		commonDirs[i] = strings.ToLower(dir)
	}

	return &SearchIndex{
		trie:         NewTrie(),
		exact:        NewExactIndex(),
		words:        NewWordIndex(opts.MinTokenLength),
		indexed:      make(map[string]bool),
		maxResults:   opts.MaxResults,
		minTokenLen:  opts.MinTokenLength,
		maxNameBonus: opts.MaxNameBonus,
		commonDirs:   commonDirs,
	}
}

// Add indexes entry under its name in all three structures. Adding the
// same path twice is a no-op, so rescans never inflate the index.
func (si *SearchIndex) Add(entry *Entry) {
	if entry.Name == "" {
		log.Fatalf("entry with empty name: %q", entry.Path)
	}

	key := entry.Key()
	if si.indexed[key] {
		return
	}

	name := entry.LowerName()
	si.trie.Insert(name, entry)
	si.exact.Put(name, entry)
	si.words.Index(name, entry)

	si.indexed[key] = true
	si.totalItems++
}

// AddPath stats path and indexes it. Files that vanish between
// discovery and indexing are skipped; the return value reports whether
// the entry made it in.
func (si *SearchIndex) AddPath(path string) bool {
	entry, err := EntryFromPath(path)
	if err != nil {
		log.Debugf("skipping vanished path %q: %v", path, err)
		return false
	}
	si.Add(entry)
	return true
}

// Search runs the query through exact, prefix, word and substring
// lookups in that order, deduplicates across them, ranks and truncates.
// An empty or whitespace query returns nil.
func (si *SearchIndex) Search(query string, maxResults int) []*Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	if maxResults <= 0 {
		maxResults = si.maxResults
	}

	seen := utils.NewIdentityFilter()
	var results []*Entry
	collect := func(e *Entry) {
		if seen.ShouldInclude(e.Key()) {
			results = append(results, e)
		}
	}

	for _, e := range si.exact.Get(query) {
		collect(e)
	}

	for _, e := range si.trie.SearchPrefix(query, maxResults*2) {
		collect(e)
	}

	for _, tok := range Tokenize(query, si.minTokenLen) {
		for _, e := range si.words.Lookup(tok) {
			collect(e)
		}
	}

	if len(results) < maxResults {
		for _, name := range si.exact.Names() {
			if strings.Contains(name, query) {
				for _, e := range si.exact.Get(name) {
					collect(e)
				}
			}
		}
	}

	si.sortByRelevance(results, query)
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// TotalIndexed returns how many distinct paths the index holds.
func (si *SearchIndex) TotalIndexed() int {
	return si.totalItems
}

// Stats reports internal sizes for diagnostics.
func (si *SearchIndex) Stats() map[string]int {
	return map[string]int{
		"totalIndexed": si.totalItems,
		"trieNodes":    si.trie.Nodes(),
		"exactNames":   si.exact.Len(),
		"wordTokens":   si.words.Len(),
	}
}
