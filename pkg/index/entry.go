package index

import (
	"os"
	"path/filepath"
	"strings"
)

// Entry is one indexed filesystem object. Name keeps its original casing
// for display; every key derived from it is lowercased. Entries are
// immutable once constructed; the index stores references and never
// writes back.
type Entry struct {
	Path  string
	Name  string
	Ext   string
	IsDir bool
}

// NewEntry builds an Entry from a path without touching the filesystem.
func NewEntry(path string, isDir bool) *Entry {
	name := filepath.Base(path)
	return &Entry{
		Path:  path,
		Name:  name,
		Ext:   nameExt(name),
		IsDir: isDir,
	}
}

// EntryFromPath builds an Entry by reading the path's metadata. The path
// vanishing between discovery and this call surfaces as the error.
func EntryFromPath(path string) (*Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	return NewEntry(path, info.IsDir()), nil
}

// Key returns the identity key used for deduplication: the lowercased
// full path.
func (e *Entry) Key() string {
	return strings.ToLower(e.Path)
}

// LowerName returns the lowercased display name.
func (e *Entry) LowerName() string {
	return strings.ToLower(e.Name)
}

// nameExt extracts the lowercased extension. A bare dot-entry like
// ".git" has no extension.
func nameExt(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		return ""
	}
	return strings.ToLower(ext)
}
