// Package cli handles cmd line input and searches for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"

	"github.com/pathserve/pathserve/internal/utils"
	"github.com/pathserve/pathserve/pkg/catalog"
	"github.com/pathserve/pathserve/pkg/index"
)

var (
	nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	dirStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	pathStyle = lipgloss.NewStyle().Faint(true)
)

// InputHandler processes user input from stdin, providing ranked path
// results. Plain input searches the catalog; lines starting with a
// colon run management and file commands.
type InputHandler struct {
	cat            *catalog.Catalog
	minQueryLength int
	maxQueryLength int
	displayLimit   int
	showScores     bool
	requestCount   int

	// lastResults backs the numbered :open/:rename commands.
	lastResults []*index.Entry
	lastQuery   string
	fileOps     fileActions
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(cat *catalog.Catalog, minLength, maxLength, limit int, showScores bool) *InputHandler {
	return &InputHandler{
		cat:            cat,
		minQueryLength: minLength,
		maxQueryLength: maxLength,
		displayLimit:   limit,
		showScores:     showScores,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to the handleInput() for processing.
// Loop terminates on :quit or when reading from stdin fails
func (h *InputHandler) Start() error {
	log.Print("PathServe CLI [BETA]")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a name to search, :help for commands (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := h.handleCommand(line); quit {
				return nil
			}
			continue
		}
		h.handleInput(line)
	}
}

// handleInput processes a single query against the catalog.
// It validates the query's length, times the search, and prints the
// ranked results with container markers and dimmed locations.
func (h *InputHandler) handleInput(query string) {
	h.requestCount++

	if len(query) < h.minQueryLength {
		log.Errorf("Query too short: %s", query)
		return
	}

	if len(query) > h.maxQueryLength {
		log.Errorf("Query too long: %s", query)
		return
	}

	start := time.Now()
	log.Debug("Processing request for", "query", query)

	results := h.cat.Search(query, 0)

	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for query '%s'", elapsed, query)

	if len(results) == 0 {
		log.Warnf("No results found for query: '%s'", query)
		return
	}

	h.lastResults = results
	h.lastQuery = query

	shown := results
	if len(shown) > h.displayLimit {
		shown = shown[:h.displayLimit]
	}

	log.Printf("Found %d results for query '%s':", len(results), query)
	for i, e := range shown {
		name := nameStyle.Render(e.Name)
		if e.IsDir {
			name = dirStyle.Render(e.Name + "/")
		}
		line := fmt.Sprintf("%2d. %-50s %s", i+1, name, pathStyle.Render(e.Path))
		if h.showScores {
			line = fmt.Sprintf("%s (score: %d)", line, h.cat.Score(e, query))
		}
		log.Print(line)
	}
	if len(results) > len(shown) {
		log.Printf("    ... and %d more (raise display_limit to see them)", len(results)-len(shown))
	}
}

// handleCommand runs one colon command. Returns true to quit the loop.
func (h *InputHandler) handleCommand(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		h.printHelp()
	case ":stats":
		h.printStats()
	case ":rescan":
		h.rescan()
	case ":open":
		h.openResult(fields[1:])
	case ":rename":
		h.renameResult(fields[1:])
	case ":undo":
		if undone, err := h.fileOps.undoRename(); err != nil {
			log.Errorf("Undo failed: %v", err)
		} else {
			log.Printf("Restored %s", undone)
		}
	case ":mkdir":
		h.makeEntry(fields[1:], true)
	case ":touch":
		h.makeEntry(fields[1:], false)
	case ":ls":
		h.listDir(fields[1:])
	default:
		log.Errorf("Unknown command: %s (try :help)", fields[0])
	}
	return false
}

func (h *InputHandler) printHelp() {
	log.Print("Plain input searches the index. Commands:")
	log.Print("  :stats             index totals and build info")
	log.Print("  :rescan            rebuild the index from disk")
	log.Print("  :open N            open result N with the system opener")
	log.Print("  :rename N NAME     rename result N (no spaces in NAME)")
	log.Print("  :undo              revert the last rename")
	log.Print("  :mkdir PATH        create a directory")
	log.Print("  :touch PATH        create an empty file")
	log.Print("  :ls [PATH]         list a directory, containers first")
	log.Print("  :quit              exit")
}

func (h *InputHandler) printStats() {
	if !h.cat.Ready() {
		log.Warn("Index has not been built yet")
		return
	}
	stats := h.cat.Stats()
	log.Printf("Indexed entries: %s", utils.FormatWithCommas(h.cat.TotalIndexed()))
	log.Printf("Trie nodes: %s, exact names: %s, word tokens: %s",
		utils.FormatWithCommas(stats["trieNodes"]),
		utils.FormatWithCommas(stats["exactNames"]),
		utils.FormatWithCommas(stats["wordTokens"]))
	log.Printf("Last scan: %s files, %s dirs, %d skipped, %d errors",
		utils.FormatWithCommas(stats["scanFiles"]),
		utils.FormatWithCommas(stats["scanDirs"]),
		stats["scanSkipped"], stats["scanErrors"])
	log.Printf("Built %s ago in %dms",
		time.Since(h.cat.LastBuilt()).Round(time.Second), stats["buildMs"])
}

func (h *InputHandler) rescan() {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("indexing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(65*time.Millisecond),
	)
	err := h.cat.Build(func(indexed int, path string) {
		_ = bar.Set(indexed)
	})
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Errorf("Rescan failed: %v", err)
		return
	}
	// Result numbers point into the old snapshot; drop them.
	h.lastResults = nil
	log.Printf("Rescan complete: %s entries in %v",
		utils.FormatWithCommas(h.cat.TotalIndexed()), h.cat.BuildTime().Round(time.Millisecond))
}

// resultArg resolves a 1-based result number from the last search.
func (h *InputHandler) resultArg(args []string) (*index.Entry, bool) {
	if len(h.lastResults) == 0 {
		log.Error("No results to act on; search first")
		return nil, false
	}
	if len(args) < 1 {
		log.Error("Missing result number")
		return nil, false
	}
	var n int
	if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil || n < 1 || n > len(h.lastResults) {
		log.Errorf("Result number must be 1..%d", len(h.lastResults))
		return nil, false
	}
	return h.lastResults[n-1], true
}

func (h *InputHandler) openResult(args []string) {
	entry, ok := h.resultArg(args)
	if !ok {
		return
	}
	if err := h.fileOps.open(entry.Path); err != nil {
		log.Errorf("Open failed: %v", err)
		return
	}
	log.Printf("Opened %s", entry.Path)
}

func (h *InputHandler) renameResult(args []string) {
	entry, ok := h.resultArg(args)
	if !ok {
		return
	}
	if len(args) < 2 {
		log.Error("Usage: :rename N NEWNAME")
		return
	}
	newPath, err := h.fileOps.rename(entry.Path, args[1])
	if err != nil {
		log.Errorf("Rename failed: %v", err)
		return
	}
	log.Printf("Renamed to %s (:undo to revert, :rescan to refresh the index)", newPath)
}

func (h *InputHandler) makeEntry(args []string, asDir bool) {
	if len(args) < 1 {
		log.Error("Missing path")
		return
	}
	var err error
	if asDir {
		err = h.fileOps.mkdir(args[0])
	} else {
		err = h.fileOps.touch(args[0])
	}
	if err != nil {
		log.Errorf("Create failed: %v", err)
		return
	}
	log.Printf("Created %s (:rescan to index it)", args[0])
}

func (h *InputHandler) listDir(args []string) {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	entries, err := h.fileOps.list(target)
	if err != nil {
		log.Errorf("List failed: %v", err)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			log.Print(dirStyle.Render(e.Name() + "/"))
		} else {
			log.Print(nameStyle.Render(e.Name()))
		}
	}
}
