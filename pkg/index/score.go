package index

import (
	"path/filepath"
	"sort"
	"strings"
)

// Match tiers are mutually exclusive per entry. The name length bonus
// and the common directory bonus stack on top of whichever tier hit.
const (
	exactMatchScore  = 100
	prefixMatchScore = 80
	containsScore    = 50
	commonDirBonus   = 10
)

// score computes the relevance of e against an already lowercased query.
func (si *SearchIndex) score(e *Entry, query string) int {
	name := e.LowerName()

	total := 0
	switch {
	case name == query:
		total = exactMatchScore
	case strings.HasPrefix(name, query):
		total = prefixMatchScore
	case strings.Contains(name, query):
		total = containsScore
	}

	if bonus := si.maxNameBonus - len(name); bonus > 0 {
		total += bonus
	}

	parent := strings.ToLower(filepath.Base(filepath.Dir(e.Path)))
	for _, common := range si.commonDirs {
		if strings.Contains(parent, common) {
			total += commonDirBonus
			break
		}
	}

	return total
}

// sortByRelevance orders entries by descending score. Ties fall back to
// ascending identity key so equal-scored results keep a stable order
// across runs.
func (si *SearchIndex) sortByRelevance(entries []*Entry, query string) {
	scores := make(map[string]int, len(entries))
	for _, e := range entries {
		scores[e.Key()] = si.score(e, query)
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := scores[entries[i].Key()], scores[entries[j].Key()]
		if a != b {
			return a > b
		}
		return entries[i].Key() < entries[j].Key()
	})
}

// Score exposes the ranking function for a single entry, mainly so
// callers can display per-result relevance next to search output.
func (si *SearchIndex) Score(e *Entry, query string) int {
	return si.score(e, strings.ToLower(strings.TrimSpace(query)))
}
