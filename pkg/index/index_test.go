package index

import (
	"os"
	"path/filepath"
	"testing"
)

func buildScenario(t *testing.T) *SearchIndex {
	t.Helper()
	si := New()
	si.Add(NewEntry("/a/report.pdf", false))
	si.Add(NewEntry("/a/report_final.pdf", false))
	si.Add(NewEntry("/b/photo.jpg", false))
	return si
}

func TestAddIsIdempotent(t *testing.T) {
	si := New()
	si.Add(NewEntry("/docs/notes.txt", false))
	si.Add(NewEntry("/docs/notes.txt", false))
	// Identity is the lowercased path, so case variants are the same file.
	si.Add(NewEntry("/Docs/Notes.TXT", false))

	if got := si.TotalIndexed(); got != 1 {
		t.Fatalf("TotalIndexed() = %d, want 1", got)
	}
	if results := si.Search("notes", 10); len(results) != 1 {
		t.Errorf("expected a single result after duplicate adds, got %d", len(results))
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	si := buildScenario(t)

	for _, q := range []string{"", "   ", "\t\n"} {
		if results := si.Search(q, 10); len(results) != 0 {
			t.Errorf("Search(%q) returned %d results, want none", q, len(results))
		}
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	si := New()
	si.Add(NewEntry("/docs/Annual_Report.PDF", false))

	for _, q := range []string{"annual", "ANNUAL", "AnNuAl_RePoRt.pdf"} {
		if results := si.Search(q, 10); len(results) != 1 {
			t.Errorf("Search(%q) returned %d results, want 1", q, len(results))
		}
	}
}

func TestSearchPrefixScenario(t *testing.T) {
	si := buildScenario(t)

	results := si.Search("rep", 10)
	if len(results) != 2 {
		t.Fatalf("Search(%q) returned %d results, want 2", "rep", len(results))
	}
	for _, e := range results {
		if e.Name == "photo.jpg" {
			t.Errorf("photo.jpg should not match prefix %q", "rep")
		}
	}

	// The shorter name wins the tie between the two prefix matches.
	if results[0].Name != "report.pdf" {
		t.Errorf("expected report.pdf first, got %q", results[0].Name)
	}
}

func TestSearchNoDuplicatesAcrossStrategies(t *testing.T) {
	si := New()
	// Matches exact, prefix, word and substring lookups all at once.
	si.Add(NewEntry("/docs/report", false))

	results := si.Search("report", 10)
	if len(results) != 1 {
		t.Fatalf("entry reachable via every strategy must appear once, got %d", len(results))
	}
}

func TestSearchWordOrderIndependent(t *testing.T) {
	si := New()
	si.Add(NewEntry("/docs/the_great_internship.pdf", false))

	first := si.Search("internship the", 10)
	second := si.Search("the internship", 10)

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("word queries should match regardless of order: %d / %d",
			len(first), len(second))
	}
	if first[0].Key() != second[0].Key() {
		t.Errorf("both orders should find the same entry")
	}
}

func TestSearchSubstringFallbackGate(t *testing.T) {
	si := New()
	si.Add(NewEntry("/x/abc.txt", false))
	si.Add(NewEntry("/x/xabc.txt", false))

	// With room to spare the substring pass picks up the non-prefix hit.
	if results := si.Search("abc", 10); len(results) != 2 {
		t.Errorf("expected substring fallback to widen results to 2, got %d", len(results))
	}

	// Once earlier stages fill the budget the fallback is skipped.
	results := si.Search("abc", 1)
	if len(results) != 1 {
		t.Fatalf("Search(%q, 1) returned %d results, want 1", "abc", len(results))
	}
	if results[0].Name != "abc.txt" {
		t.Errorf("prefix match should win the single slot, got %q", results[0].Name)
	}
}

func TestSearchTruncatesToLimit(t *testing.T) {
	si := New()
	for _, p := range []string{
		"/x/log_one.txt", "/x/log_two.txt", "/x/log_three.txt",
		"/x/log_four.txt", "/x/log_five.txt",
	} {
		si.Add(NewEntry(p, false))
	}

	if results := si.Search("log", 3); len(results) != 3 {
		t.Errorf("Search with limit 3 returned %d results", len(results))
	}

	// A non-positive limit falls back to the configured default.
	if results := si.Search("log", 0); len(results) != 5 {
		t.Errorf("Search with limit 0 returned %d results, want all 5", len(results))
	}
}

func TestAddPath(t *testing.T) {
	si := New()

	dir := t.TempDir()
	real := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(real, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !si.AddPath(real) {
		t.Errorf("AddPath(%q) = false, want true", real)
	}
	if si.AddPath(filepath.Join(dir, "vanished.txt")) {
		t.Errorf("AddPath of a missing file should report false")
	}
	if got := si.TotalIndexed(); got != 1 {
		t.Errorf("TotalIndexed() = %d, want 1", got)
	}
}

func TestStats(t *testing.T) {
	si := buildScenario(t)

	stats := si.Stats()
	if stats["totalIndexed"] != 3 {
		t.Errorf("totalIndexed = %d, want 3", stats["totalIndexed"])
	}
	if stats["trieNodes"] == 0 {
		t.Errorf("trieNodes should be non-zero after inserts")
	}
	if stats["exactNames"] != 3 {
		t.Errorf("exactNames = %d, want 3", stats["exactNames"])
	}
	if stats["wordTokens"] == 0 {
		t.Errorf("wordTokens should be non-zero after inserts")
	}
}
