package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/misbah7172/Custom-Browser/internal/api"
	"github.com/misbah7172/Custom-Browser/internal/browser"
	"github.com/misbah7172/Custom-Browser/internal/config"
	"github.com/misbah7172/Custom-Browser/internal/db"
	"github.com/misbah7172/Custom-Browser/internal/firewall"
	"github.com/misbah7172/Custom-Browser/internal/recorder"
	"github.com/misbah7172/Custom-Browser/internal/ui"
)

const prompt = "browser> "

func main() {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}

	// Parse command line flags
	dbPath := flag.String("db", cfg.DBPath, "Path to SQLite database file")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	incognito := flag.Bool("incognito", cfg.Incognito, "Browse without recording visits")
	flag.Parse()

	cfg.DBPath = *dbPath
	cfg.LogLevel = *logLevel
	cfg.Incognito = *incognito
	if err := cfg.Validate(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}

	database, err := db.New(cfg.DBPath)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Failed to initialize database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	logger, closeLog := newFileLogger(cfg)
	defer closeLog()

	// Incognito sessions still use the blocklist, bookmarks and settings,
	// only the visit log is left alone
	var visits recorder.VisitStore = database
	if cfg.Incognito {
		visits = recorder.Discard
	}

	fw := firewall.New(database, logger)
	rec, err := recorder.New(visits, fw, api.NewDNSResolver(cfg.ResolveTimeout, logger), logger)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Failed to open visit log: %v", err))
		os.Exit(1)
	}

	pages := api.NewPageFetcher(cfg.FetchTimeout, cfg.UserAgent, logger)
	var fetcher browser.Fetcher = pages
	if isTerminal(os.Stdout) {
		fetcher = newSpinnerFetcher(pages)
	}

	ctrl := browser.NewController(fw, rec, fetcher, logger)
	ctrl.SetSearchURL(cfg.SearchURL)
	if err := ctrl.SetProfile(database); err != nil {
		ui.PrintWarning(fmt.Sprintf("Saved settings not loaded: %v", err))
	}

	if logger != nil {
		logger.Info("Browser started", "db", cfg.DBPath, "searchURL", cfg.SearchURL, "incognito", cfg.Incognito)
	}

	fmt.Println(ui.RenderWelcome(cfg.DBPath, cfg.Incognito))
	repl(&shell{ctrl: ctrl, cfg: cfg, logger: logger})
	ui.PrintInfo("Browser closed. Goodbye!")
}

// newFileLogger writes logs next to the database so they never mix with the prompt.
// Logging is disabled when the file cannot be opened.
func newFileLogger(cfg *config.Config) (*log.Logger, func()) {
	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		ui.PrintWarning(fmt.Sprintf("Logging disabled: %v", err))
		return nil, func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "BROWSER",
		Level:           cfg.Level(),
	})
	return logger, func() { f.Close() }
}

// repl reads commands until exit or end of input.
// Ctrl+C cancels the running command instead of quitting.
func repl(sh *shell) {
	var (
		mu     sync.Mutex
		cancel context.CancelFunc
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	go func() {
		for range sigCh {
			mu.Lock()
			if cancel != nil {
				cancel()
			} else {
				fmt.Println()
				ui.PrintInfo("Keyboard interrupt received. Type 'exit' to quit.")
				fmt.Print(prompt)
			}
			mu.Unlock()
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			fmt.Println()
			return
		}

		ctx, stop := context.WithCancel(context.Background())
		mu.Lock()
		cancel = stop
		mu.Unlock()

		quit := sh.run(ctx, browser.ParseCommand(scanner.Text()))

		mu.Lock()
		cancel = nil
		mu.Unlock()
		stop()

		if quit {
			return
		}
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
