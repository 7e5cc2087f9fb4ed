package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pathserve/pathserve/pkg/config"
	"github.com/pathserve/pathserve/pkg/index"
)

// buildTree creates a small fixture:
//
//	root/
//	  docs/report.pdf
//	  docs/notes.txt
//	  node_modules/dep/index.js
//	  .cache/blob.bin
//	  trace.log
func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	for _, dir := range []string{"docs", filepath.Join("node_modules", "dep"), ".cache"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, file := range []string{
		filepath.Join("docs", "report.pdf"),
		filepath.Join("docs", "notes.txt"),
		filepath.Join("node_modules", "dep", "index.js"),
		filepath.Join(".cache", "blob.bin"),
		"trace.log",
	} {
		if err := os.WriteFile(filepath.Join(root, file), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func scanCfg(root string) config.ScanConfig {
	return config.ScanConfig{
		Roots:        []string{root},
		PriorityDirs: []string{},
		SkipDirs:     []string{},
	}
}

func TestScanIndexesTree(t *testing.T) {
	root := buildTree(t)
	idx := index.New()

	stats, err := New(scanCfg(root)).Scan(idx, nil)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// root, docs, node_modules, dep + 4 visible files (.cache pruned).
	if stats.Dirs != 4 {
		t.Errorf("Dirs = %d, want 4", stats.Dirs)
	}
	if stats.Files != 4 {
		t.Errorf("Files = %d, want 4", stats.Files)
	}
	if results := idx.Search("report", 10); len(results) != 1 {
		t.Errorf("indexed tree should answer for report.pdf, got %d results", len(results))
	}
}

func TestScanSkipDirs(t *testing.T) {
	root := buildTree(t)
	idx := index.New()

	cfg := scanCfg(root)
	cfg.SkipDirs = []string{"node_modules"}
	if _, err := New(cfg).Scan(idx, nil); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if results := idx.Search("index.js", 10); len(results) != 0 {
		t.Errorf("node_modules content should be pruned, found %d results", len(results))
	}
	if results := idx.Search("report", 10); len(results) != 1 {
		t.Errorf("other trees must survive the prune, got %d results", len(results))
	}
}

func TestScanHiddenEntries(t *testing.T) {
	root := buildTree(t)

	hidden := index.New()
	if _, err := New(scanCfg(root)).Scan(hidden, nil); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if results := hidden.Search("blob", 10); len(results) != 0 {
		t.Errorf("dot directories should be pruned by default")
	}

	shown := index.New()
	cfg := scanCfg(root)
	cfg.IncludeHidden = true
	if _, err := New(cfg).Scan(shown, nil); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if results := shown.Search("blob", 10); len(results) != 1 {
		t.Errorf("include_hidden should surface dot-dir contents, got %d results", len(results))
	}
}

func TestScanExcludePatterns(t *testing.T) {
	root := buildTree(t)
	idx := index.New()

	cfg := scanCfg(root)
	cfg.ExcludePatterns = []string{"**/*.log"}
	stats, err := New(cfg).Scan(idx, nil)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if results := idx.Search("trace", 10); len(results) != 0 {
		t.Errorf("*.log should be excluded, found %d results", len(results))
	}
	if stats.Skipped == 0 {
		t.Errorf("exclusions should be counted as skips")
	}
}

func TestScanMissingRoot(t *testing.T) {
	idx := index.New()

	cfg := config.ScanConfig{
		Roots:        []string{filepath.Join(t.TempDir(), "gone")},
		PriorityDirs: []string{},
	}
	if _, err := New(cfg).Scan(idx, nil); err == nil {
		t.Errorf("scan with no existing roots should fail")
	}

	// A missing root beside a valid one is only a warning.
	root := buildTree(t)
	cfg.Roots = append(cfg.Roots, root)
	if _, err := New(cfg).Scan(idx, nil); err != nil {
		t.Errorf("valid root should carry the scan: %v", err)
	}
}

func TestScanPriorityDirsFirstAndDeduplicated(t *testing.T) {
	root := buildTree(t)
	idx := index.New()

	cfg := scanCfg(root)
	cfg.PriorityDirs = []string{filepath.Join(root, "docs")}

	var first string
	progress := func(indexed int, path string) {
		if first == "" {
			first = path
		}
	}
	stats, err := New(cfg).Scan(idx, progress)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if filepath.Base(first) != "docs" {
		t.Errorf("priority dir should be walked first, first add was %q", first)
	}
	// The docs subtree is revisited under the main root and absorbed.
	if stats.Skipped == 0 {
		t.Errorf("revisited priority entries should count as skips")
	}
	if got := idx.Search("report", 10); len(got) != 1 {
		t.Errorf("overlap must not duplicate entries, got %d", len(got))
	}
}

func TestRootsDeduplicatesAndDropsMissing(t *testing.T) {
	root := buildTree(t)

	cfg := config.ScanConfig{
		Roots:        []string{root, root, filepath.Join(root, "absent")},
		PriorityDirs: []string{},
	}
	roots := New(cfg).Roots()
	if len(roots) != 1 {
		t.Errorf("Roots() = %v, want exactly one resolved root", roots)
	}
}
