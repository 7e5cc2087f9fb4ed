// Copyright 2026 The PathServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the filename search server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

PathServe provides fast name-based file lookup over an in-memory index
combining a prefix trie, an exact name table and an inverted word index
with relevance ranking. It can operate as a MessagePack IPC server for
integration with launchers and editors, or as a CLI application for
testing and debugging.

The index is built once at startup by walking the configured roots and
is queried many times after; rebuilds are explicit (the :rescan command
or the "rebuild" IPC action) and publish a fresh snapshot atomically so
readers never see a half-built index.

# Usage

Start the server with default settings:

	pserve

Index a specific tree and enable debug mode:

	pserve -root /srv/share -d

Run in CLI mode for interactive testing:

	pserve -c -limit 10

With no -root the user home directory is walked, common locations
(Documents, Desktop, Downloads) first.

# Configuration

Runtime configuration is managed through a TOML file that supports
ranking parameters, scan settings, and CLI defaults:

	[search]
	max_results = 50
	min_token_length = 2
	max_name_bonus = 30
	common_dirs = ["documents", "desktop", "downloads"]

	[scan]
	roots = []
	skip_dirs = ["system32", "windows", ".git", "node_modules"]
	include_hidden = false

The config file is automatically created with defaults if it doesn't exist.
Server mode reloads configuration on request without restart.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Search requests
are processed synchronously with microsecond timing information included in
responses.

Send a search request:

	{"id": "req1", "q": "report", "l": 20}

Receive entries with position ranking:

	{"id": "req1", "s": [{"p": "/home/u/docs/report.pdf", "n": "report.pdf", "r": 1}], "c": 1, "t": 85}

Index management requests allow runtime inspection and rebuilds:

	{"id": "idx1", "action": "get_stats"}
	{"id": "idx2", "action": "rebuild"}

# Server Mode

The default mode starts a MessagePack IPC server that processes search
requests from stdin and writes responses to stdout. This design enables
integration with launchers and other applications through process
communication.

	srv := server.NewServer(cat, config, configPath)
	err := srv.Start()

The server automatically handles request parsing, validation, and response
formatting. It includes request bounds from the [server] config section,
configuration reloading, and synchronous rebuilds for long-running sessions.

# CLI Mode

CLI mode provides an interactive interface for testing and debugging the
search functionality. It reads queries from stdin and displays ranked
results with their locations; colon commands expose stats, rescans and
small file operations (:open, :rename, :undo, :mkdir, :touch, :ls).

	inputHandler := cli.NewInputHandler(cat, minLen, maxLen, limit, showScores)
	err := inputHandler.Start()

This mode is primarily intended for development and testing new features
before deploying to server mode. It runs the same validation and ranking
logic as the server but with human-readable output.

# Search Engine

The core functionality is provided by the index package, which layers
exact, prefix, word and substring lookups over one entry set and ranks
matches by name relevance.

	idx := index.New()
	idx.Add(index.NewEntry("/home/u/docs/report.pdf", false))
	results := idx.Search("report", 20)

The catalog package owns the build-then-publish lifecycle and the scanner
package feeds it from the filesystem, pruning system and hidden trees.

# Command Line Flags

The following flags control application behavior:

	-version
	    Show current version
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-config string
	    Path to a TOML config file (default: per-user config dir)
	-root string
	    Comma-separated scan roots (overrides [scan] roots)
	-limit int
	    Number of results to display in CLI mode (default from config)
	-qmin int
	    Minimum query length
	-qmax int
	    Maximum query length
	-no-results-cap
	    Disable the CLI display truncation (DBG only)

The application automatically resolves config paths relative to the user
config directory with executable-relative fallbacks, supporting both
development and production deployments.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"

	"github.com/pathserve/pathserve/internal/cli"
	"github.com/pathserve/pathserve/internal/utils"
	"github.com/pathserve/pathserve/pkg/catalog"
	"github.com/pathserve/pathserve/pkg/config"
	"github.com/pathserve/pathserve/pkg/index"
	"github.com/pathserve/pathserve/pkg/scanner"
	"github.com/pathserve/pathserve/pkg/server"
)

const (
	Version = "0.9.0-beta"
	AppName = "pathserve"
	gh      = "https://github.com/pathserve/pathserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configFlag := flag.String("config", "", "Path to a TOML config file")
	rootFlag := flag.String("root", "", "Comma-separated scan roots (overrides config)")
	limit := flag.Int("limit", defaultConfig.CLI.DisplayLimit, "Number of results to display")
	minQuery := flag.Int("qmin", defaultConfig.Server.MinQuery, "Minimum query length (1 < n <= qmax)")
	maxQuery := flag.Int("qmax", defaultConfig.Server.MaxQuery, "Maximum query length")
	noResultsCap := flag.Bool("no-results-cap", false, "Disable CLI display truncation (DBG only) - prints every ranked result")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()

		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["version"] = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})

		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ PathServe ] Serves really fast filename lookups!")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")
		logger.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	// Initialize path resolver for robust path handling
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
		log.Print("Either env is not set or system is not supported")
		os.Exit(1)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	configPath := *configFlag
	if configPath == "" {
		if resolved, resolveErr := pathResolver.GetConfigPath("config.toml"); resolveErr == nil {
			configPath = resolved
		}
	}
	log.Debugf("Using config file: (%s)", configPath)

	appConfig, err := config.InitConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}

	if *rootFlag != "" {
		var roots []string
		for _, root := range strings.Split(*rootFlag, ",") {
			if root = strings.TrimSpace(root); root != "" {
				roots = append(roots, root)
			}
		}
		appConfig.Scan.Roots = roots
		// Explicit roots take the walk alone; home shortcuts stay out.
		appConfig.Scan.PriorityDirs = []string{}
	}

	sc := scanner.New(appConfig.Scan)
	cat := catalog.New(sc, index.Options{
		MaxResults:     appConfig.Search.MaxResults,
		MinTokenLength: appConfig.Search.MinTokenLength,
		MaxNameBonus:   appConfig.Search.MaxNameBonus,
		CommonDirs:     appConfig.Search.CommonDirs,
	})

	log.Debugf("Init catalog: roots=%v", appConfig.Scan.Roots)
	if *cliMode {
		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("indexing"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionThrottle(65*time.Millisecond),
		)
		err = cat.Build(func(indexed int, path string) {
			_ = bar.Set(indexed)
		})
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	} else {
		err = cat.Build(nil)
	}
	if err != nil {
		log.Fatalf("Failed to build index: %v", err)
		os.Exit(1)
	}
	log.Debugf("Indexed %d entries in %v", cat.TotalIndexed(), cat.BuildTime())

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		displayLimit := *limit
		if *noResultsCap {
			displayLimit = 1 << 30
		}
		log.Debug("Input info:",
			"minQuery", *minQuery,
			"maxQuery", *maxQuery,
			"limit", displayLimit)

		inputHandler := cli.NewInputHandler(cat, *minQuery, *maxQuery, displayLimit, appConfig.CLI.ShowScores)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(cat, appConfig, configPath)

	showStartupInfo(cat.TotalIndexed())

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(totalIndexed int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" PathServe ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("indexed entries: ( %d )", totalIndexed)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
