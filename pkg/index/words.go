package index

import (
	"strings"

	"github.com/pathserve/pathserve/internal/utils"
)

// WordIndex is an inverted index from a name token to the set of entries
// whose name contains that token. Sets are keyed by entry identity, so
// an entry indexed under several tokens stays a single member per set.
type WordIndex struct {
	minTokenLength int
	tokens         map[string]map[string]*Entry
}

// NewWordIndex returns an empty inverted index. Tokens of
// minTokenLength or fewer characters are discarded during indexing.
func NewWordIndex(minTokenLength int) *WordIndex {
	return &WordIndex{
		minTokenLength: minTokenLength,
		tokens:         make(map[string]map[string]*Entry),
	}
}

// Tokenize splits s on dots, underscores, hyphens and whitespace and
// drops tokens of minLen or fewer characters. Queries are split the same
// way, so token order never matters between a name and a query.
func Tokenize(s string, minLen int) []string {
	var tokens []string
	for _, tok := range strings.FieldsFunc(s, utils.IsTokenSeparator) {
		if len(tok) > minLen {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Index records entry under every token of the lowercased name.
func (w *WordIndex) Index(name string, entry *Entry) {
	for _, tok := range Tokenize(name, w.minTokenLength) {
		set, ok := w.tokens[tok]
		if !ok {
			set = make(map[string]*Entry)
			w.tokens[tok] = set
		}
		set[entry.Key()] = entry
	}
}

// Lookup returns the identity-keyed entry set for token, or nil.
func (w *WordIndex) Lookup(token string) map[string]*Entry {
	return w.tokens[token]
}

// Len returns the number of distinct tokens.
func (w *WordIndex) Len() int {
	return len(w.tokens)
}
