package index

import (
	"strings"

	"github.com/pathserve/pathserve/internal/utils"
)

// trieNode maps one rune to each child and accumulates every entry whose
// name passes through it. The list may repeat an entry when identical
// names are inserted for it; retrieval dedups by identity, first seen
// wins.
type trieNode struct {
	children map[rune]*trieNode
	entries  []*Entry
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// Trie is a prefix tree over lowercased names. Every node owns the full
// list of entries sharing its prefix, so retrieval costs the prefix walk
// plus the result copy; memory grows with name length times insertions,
// which is the accepted trade for that lookup.
type Trie struct {
	root      *trieNode
	nodeCount int
}

// NewTrie returns an empty prefix tree.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

// Insert descends one node per rune of the lowercased name, creating
// nodes as needed, and appends entry at every node visited. The root
// holds nothing: an empty prefix matches no entries.
func (t *Trie) Insert(name string, entry *Entry) {
	node := t.root
	for _, r := range strings.ToLower(name) {
		child, ok := node.children[r]
		if !ok {
			child = newTrieNode()
			node.children[r] = child
			t.nodeCount++
		}
		node = child
		node.entries = append(node.entries, entry)
	}
}

// SearchPrefix returns up to limit entries whose name starts with prefix,
// case-insensitive, deduplicated by identity in first-seen order. A rune
// with no matching child ends the walk immediately with no results.
// limit <= 0 returns every match.
func (t *Trie) SearchPrefix(prefix string, limit int) []*Entry {
	node := t.root
	for _, r := range strings.ToLower(prefix) {
		child, ok := node.children[r]
		if !ok {
			return nil
		}
		node = child
	}

	seen := utils.NewIdentityFilter()
	results := make([]*Entry, 0, len(node.entries))
	for _, e := range node.entries {
		if !seen.ShouldInclude(e.Key()) {
			continue
		}
		results = append(results, e)
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results
}

// Nodes returns the number of allocated nodes, excluding the root.
func (t *Trie) Nodes() int {
	return t.nodeCount
}
