// Copyright 2025 The WordRank Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the weighted autocomplete server and CLI [DBG] application.

WordRank loads a weighted word list and answers "which k words starting with
this prefix weigh the most" queries. Three interchangeable indexes are
available: a sorted array searched with binary search, a trie pruned by the
heaviest weight below each node, and a patricia trie scanned in full.

# Usage

Start the msgpack server with the configured dictionary:

	wordrank

Use a different dictionary and index with debug logging:

	wordrank -dict data/cities.txt -kind binary -d

Run in CLI mode for interactive testing:

	wordrank -c -limit 5 -prmin 1

Build every index and compare their answers before serving:

	wordrank -verify

# Dictionaries

Text files hold one "weight<TAB>word" entry per line, optionally preceded by
an entry count line. Binary files (.bin) hold a little endian int32 count
followed by length-prefixed words and float64 weights.

# Configuration

Runtime configuration is a TOML file, created with defaults on first run:

	[index]
	kind = "trie"
	dictionary = "data/words.txt"
	verify = false

	[server]
	max_limit = 64
	default_limit = 10
	max_prefix = 60

	[cli]
	default_limit = 10
	min_prefix = 0
	max_prefix = 60
	no_filter = false

	[log]
	level = "warn"
	timestamp = false

Flags override the file.

# IPC Protocol

The server reads MessagePack requests from stdin and writes responses to
stdout. Logs go to stderr.

	{"id": "r1", "p": "be", "l": 2}
	{"id": "r1", "s": [{"w": "bell", "v": 4, "r": 1}, {"w": "bat", "v": 2, "r": 2}], "c": 2, "t": 12}

	{"id": "r2", "op": "weight", "p": "bell"}
	{"id": "r2", "w": "bell", "v": 4}
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordrank/internal/cli"
	"github.com/bastiangx/wordrank/internal/logger"
	"github.com/bastiangx/wordrank/internal/utils"
	"github.com/bastiangx/wordrank/pkg/autocomplete"
	"github.com/bastiangx/wordrank/pkg/config"
	"github.com/bastiangx/wordrank/pkg/dictionary"
	"github.com/bastiangx/wordrank/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "wordrank"
	gh      = "https://github.com/bastiangx/wordrank"
)

// verifySamples caps how many prefixes -verify compares.
const verifySamples = 200

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

// main wires flags, config, the dictionary and the chosen index, then hands
// over to the server or the CLI.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a custom config.toml")
	dictPath := flag.String("dict", "", "Dictionary file (.txt, .tsv or .bin), overrides config")
	kindName := flag.String("kind", "", "Index kind: binary, trie or patricia, overrides config")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", 0, "Number of suggestions to return in CLI mode (default from config)")
	minPrefix := flag.Int("prmin", -1, "Minimum prefix length in CLI mode (default from config)")
	maxPrefix := flag.Int("prmax", 0, "Maximum prefix length in CLI mode (default from config)")
	noFilter := flag.Bool("no-filter", false, "Disable input filtering in CLI mode (DBG only)")
	verify := flag.Bool("verify", false, "Build every index kind and cross-check their answers")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, loadedFrom, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlags(cfg, *dictPath, *kindName, *limit, *minPrefix, *maxPrefix, *noFilter, *verify)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config (%s): %v", loadedFrom, err)
	}
	if !*debugMode {
		if err := logger.Configure(cfg.Log.Level, cfg.Log.Timestamp); err != nil {
			log.Fatalf("Invalid log level: %v", err)
		}
	}
	log.Debugf("Using config file: (%s)", loadedFrom)

	kind, _ := autocomplete.ParseKind(cfg.Index.Kind)
	ac, err := buildIndex(cfg, kind)
	if err != nil {
		log.Fatalf("Failed to build %s index: %v", kind, err)
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", cfg.CLI.MinPrefix,
			"maxPrefix", cfg.CLI.MaxPrefix,
			"limit", cfg.CLI.DefaultLimit,
			"noFilter", cfg.CLI.NoFilter)

		inputHandler := cli.NewInputHandler(ac, cfg.CLI.MinPrefix, cfg.CLI.MaxPrefix, cfg.CLI.DefaultLimit, cfg.CLI.NoFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(ac, string(kind), cfg.Server, os.Stdin, os.Stdout)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(cfg *config.Config, dict, kind string, limit, minPrefix, maxPrefix int, noFilter, verify bool) {
	if dict != "" {
		cfg.Index.Dictionary = dict
	}
	if kind != "" {
		cfg.Index.Kind = kind
	}
	if limit > 0 {
		cfg.CLI.DefaultLimit = limit
	}
	if minPrefix >= 0 {
		cfg.CLI.MinPrefix = minPrefix
	}
	if maxPrefix > 0 {
		cfg.CLI.MaxPrefix = maxPrefix
	}
	cfg.CLI.NoFilter = cfg.CLI.NoFilter || noFilter
	cfg.Index.Verify = cfg.Index.Verify || verify
}

// buildIndex loads the dictionary and builds the configured index. With
// verify set every kind is built and compared first.
func buildIndex(cfg *config.Config, kind autocomplete.Kind) (autocomplete.Autocompletor, error) {
	path, err := utils.ResolveFile(cfg.Index.Dictionary)
	if err != nil {
		return nil, err
	}
	dict, err := dictionary.Load(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d entries from %s", dict.Len(), path)

	if !cfg.Index.Verify {
		return autocomplete.New(kind, dict.Words, dict.Weights)
	}

	built, err := autocomplete.BuildAll(context.Background(), autocomplete.Kinds, dict.Words, dict.Weights)
	if err != nil {
		return nil, err
	}
	prefixes := autocomplete.SamplePrefixes(dict.Words, verifySamples)
	if err := autocomplete.CrossCheck(built, prefixes, cfg.Server.DefaultLimit); err != nil {
		return nil, err
	}
	log.Infof("Verified %d index kinds on %d prefixes", len(built), len(prefixes))

	for _, b := range built {
		if b.Kind == kind {
			return b.Index, nil
		}
	}
	return nil, fmt.Errorf("index kind %s was not built", kind)
}

// printVersion shows a small styled banner.
func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ WordRank ] Weighted prefix completions", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}
