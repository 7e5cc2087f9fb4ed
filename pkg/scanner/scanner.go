// Package scanner enumerates filesystem trees and feeds every surviving
// entry into a search index. Priority directories are walked before the
// configured roots so common locations are indexed even when a scan is
// interrupted; the index's idempotent Add absorbs any overlap between
// the two lists.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/pathserve/pathserve/internal/utils"
	"github.com/pathserve/pathserve/pkg/config"
	"github.com/pathserve/pathserve/pkg/index"
)

// ProgressFunc receives the running indexed total and the path that was
// just added. A nil ProgressFunc disables reporting.
type ProgressFunc func(indexed int, path string)

// Stats summarizes a single enumeration pass.
type Stats struct {
	Files   int
	Dirs    int
	Skipped int
	Errors  int
	Elapsed time.Duration
}

// Scanner walks a set of roots, pruning skip directories, hidden
// entries and exclude-pattern matches along the way.
type Scanner struct {
	roots           []string
	priorityDirs    []string
	skipDirs        []string
	excludePatterns []string
	includeHidden   bool
}

// DefaultSkipDirs returns the directory name fragments pruned when the
// config does not override them.
func DefaultSkipDirs() []string {
	return []string{
		"system32", "windows", "programdata", "$recycle",
		"appdata", ".git", "node_modules", "__pycache__",
	}
}

// DefaultPriorityDirs returns the home subdirectories walked first.
func DefaultPriorityDirs() []string {
	return []string{"Documents", "Desktop", "Downloads"}
}

// New builds a Scanner from the [scan] config section. Empty roots fall
// back to the user home directory; relative priority dirs are resolved
// against it. Skip fragments are lowercased once here so the walk never
// re-normalizes.
func New(cfg config.ScanConfig) *Scanner {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("could not resolve home directory: %v", err)
		home = "."
	}

	roots := cfg.Roots
	if len(roots) == 0 {
		roots = []string{home}
	}

	priority := cfg.PriorityDirs
	if priority == nil {
		priority = DefaultPriorityDirs()
	}
	resolved := make([]string, 0, len(priority))
	for _, dir := range priority {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(home, dir)
		}
		resolved = append(resolved, dir)
	}

	skips := cfg.SkipDirs
	if skips == nil {
		skips = DefaultSkipDirs()
	}
	lowered := make([]string, len(skips))
	for i, s := range skips {
		lowered[i] = strings.ToLower(s)
	}

	return &Scanner{
		roots:           roots,
		priorityDirs:    resolved,
		skipDirs:        lowered,
		excludePatterns: cfg.ExcludePatterns,
		includeHidden:   cfg.IncludeHidden,
	}
}

// Roots returns the scan roots in walk order, priority dirs first,
// deduplicated and with missing entries dropped (warned once each).
func (s *Scanner) Roots() []string {
	seen := utils.NewIdentityFilter()
	var roots []string
	for _, root := range append(append([]string{}, s.priorityDirs...), s.roots...) {
		abs, err := filepath.Abs(root)
		if err != nil {
			log.Warnf("unresolvable scan root %q: %v", root, err)
			continue
		}
		if !seen.ShouldInclude(strings.ToLower(abs)) {
			continue
		}
		if !utils.DirExists(abs) {
			log.Warnf("scan root does not exist, skipping: %s", abs)
			continue
		}
		roots = append(roots, abs)
	}
	return roots
}

// Scan walks every root and adds each surviving entry to idx. Per-entry
// failures are counted and skipped, never fatal; the error return is
// reserved for having nothing to walk at all.
func (s *Scanner) Scan(idx index.ISearcher, progress ProgressFunc) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	roots := s.Roots()
	if len(roots) == 0 {
		return stats, fmt.Errorf("no scannable roots configured")
	}

	for _, root := range roots {
		s.walkRoot(root, idx, progress, stats)
	}

	stats.Elapsed = time.Since(start)
	log.Debugf("scan finished: %d files, %d dirs, %d skipped, %d errors in %v",
		stats.Files, stats.Dirs, stats.Skipped, stats.Errors, stats.Elapsed)
	return stats, nil
}

func (s *Scanner) walkRoot(root string, idx index.ISearcher, progress ProgressFunc, stats *Stats) {
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			stats.Errors++
			log.Debugf("walk error at %q: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path != root {
			if d.IsDir() && s.shouldSkipDir(path) {
				stats.Skipped++
				return filepath.SkipDir
			}
			if !s.includeHidden && utils.IsHiddenName(d.Name()) {
				stats.Skipped++
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if s.isExcluded(path) {
				stats.Skipped++
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		// Priority dirs overlap the main roots; the idempotent Add
		// absorbs revisits, counted as skips rather than files.
		before := idx.TotalIndexed()
		idx.Add(index.NewEntry(path, d.IsDir()))
		if idx.TotalIndexed() == before {
			stats.Skipped++
			return nil
		}
		if d.IsDir() {
			stats.Dirs++
		} else {
			stats.Files++
		}
		if progress != nil {
			progress(idx.TotalIndexed(), path)
		}
		return nil
	})
	if err != nil {
		stats.Errors++
		log.Warnf("walk aborted for root %q: %v", root, err)
	}
}

// shouldSkipDir reports whether any skip fragment appears anywhere in
// the lowercased directory path.
func (s *Scanner) shouldSkipDir(path string) bool {
	lower := strings.ToLower(path)
	for _, frag := range s.skipDirs {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// isExcluded matches the slash-normalized path against the configured
// doublestar patterns. Invalid patterns are treated as non-matching.
func (s *Scanner) isExcluded(path string) bool {
	if len(s.excludePatterns) == 0 {
		return false
	}
	slashed := filepath.ToSlash(path)
	for _, pattern := range s.excludePatterns {
		ok, err := doublestar.Match(pattern, slashed)
		if err != nil {
			log.Warnf("invalid exclude pattern %q: %v", pattern, err)
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
