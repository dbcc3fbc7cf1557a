package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/misbah7172/Custom-Browser/internal/browser"
	"github.com/misbah7172/Custom-Browser/internal/config"
	"github.com/misbah7172/Custom-Browser/internal/db"
	"github.com/misbah7172/Custom-Browser/internal/models"
	"github.com/misbah7172/Custom-Browser/internal/navigator"
	"github.com/misbah7172/Custom-Browser/internal/recorder"
	"github.com/misbah7172/Custom-Browser/internal/ui"
)

// shell executes prompt commands against a controller
type shell struct {
	ctrl   *browser.Controller
	cfg    *config.Config
	logger *log.Logger
}

// run executes one command and reports whether the browser should exit
func (s *shell) run(ctx context.Context, cmd browser.Command) bool {
	switch cmd.Name {
	case "":
	case "open":
		s.open(ctx, cmd.Arg)
	case "back":
		s.move(s.ctrl.Back, "Going back to", "No previous page in history")
	case "forward":
		s.move(s.ctrl.Forward, "Going forward to", "No next page in history")
	case "current":
		if visit, ok := s.ctrl.Current(); ok {
			fmt.Println(ui.RenderCurrent(visit))
		} else {
			ui.PrintInfo("No page open")
		}
	case "session":
		fmt.Println(ui.RenderSession(s.ctrl.Session()))
	case "history":
		visits, err := s.ctrl.History()
		if err != nil {
			s.fail("history", err)
			return false
		}
		fmt.Println(ui.RenderVisits("Browsing History", visits))
	case "visits":
		s.visits(cmd.Arg)
	case "stats":
		stats, total, err := s.ctrl.SiteStats()
		if err != nil {
			s.fail("stats", err)
			return false
		}
		fmt.Println(ui.RenderStats(stats, total))
	case "block":
		s.block(cmd)
	case "unblock":
		s.unblock(cmd)
	case "blocklist":
		entries, err := s.ctrl.Blocklist()
		if err != nil {
			s.fail("blocklist", err)
			return false
		}
		fmt.Println(ui.RenderBlocklist(entries))
	case "bookmark":
		s.bookmark(cmd.Arg)
	case "unbookmark":
		s.unbookmark(cmd.Arg)
	case "bookmarks":
		bookmarks, err := s.ctrl.Bookmarks()
		if err != nil {
			s.fail("bookmarks", err)
			return false
		}
		fmt.Println(ui.RenderBookmarks(bookmarks))
	case "goto":
		s.gotoBookmark(ctx, cmd.Arg)
	case "settings":
		s.settings()
	case "set":
		s.set(cmd)
	case "unset":
		s.unset(cmd.Arg)
	case "clear":
		s.clear()
	case "help":
		fmt.Println(ui.RenderHelp())
	case "exit", "quit":
		return true
	default:
		ui.PrintError(fmt.Sprintf("Unknown command: %s", cmd.Name))
		ui.PrintInfo("Type 'open [url]' to navigate, 'help' for commands, or 'exit' to quit")
	}
	return false
}

func (s *shell) open(ctx context.Context, input string) {
	if input == "" {
		var err error
		if input, err = ui.PromptForURL(); err != nil {
			s.promptFailed(err)
			return
		}
	}

	page, err := s.ctrl.Open(ctx, input)
	if err != nil {
		s.fail("open", err)
		return
	}
	s.showPage(page)
}

func (s *shell) gotoBookmark(ctx context.Context, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		ui.PrintError(fmt.Sprintf("goto takes a bookmark number, got %q", arg))
		return
	}
	page, err := s.ctrl.OpenBookmark(ctx, n)
	if err != nil {
		s.fail("goto", err)
		return
	}
	s.showPage(page)
}

func (s *shell) showPage(page browser.Page) {
	if page.Blocked {
		ui.PrintError(fmt.Sprintf("Access blocked: %s is blocked by firewall settings", page.Domain))
		return
	}

	if page.Fetch.Err != nil {
		ui.PrintWarning(fmt.Sprintf("Could not load page: %v", page.Fetch.Err))
	}
	for _, w := range page.Warnings {
		var resErr *recorder.ResolutionError
		var storeErr *db.StorageError
		switch {
		case errors.As(w, &resErr):
			ui.PrintWarning(fmt.Sprintf("Could not resolve domain: %s", resErr.Domain))
		case errors.As(w, &storeErr):
			ui.PrintWarning(fmt.Sprintf("Visit not saved: %v", storeErr))
		default:
			ui.PrintWarning(w.Error())
		}
	}
	fmt.Print(ui.RenderPage(*page.Visit, page.Fetch))
}

func (s *shell) move(step func() (models.VisitRecord, error), verb, none string) {
	visit, err := step()
	if errors.Is(err, navigator.ErrNoHistory) {
		ui.PrintInfo(none)
		return
	}
	if err != nil {
		s.fail("navigate", err)
		return
	}
	ui.PrintInfo(fmt.Sprintf("%s: %s", verb, visit.URL))
	fmt.Println(ui.RenderCurrent(visit))
}

func (s *shell) visits(arg string) {
	limit := s.cfg.VisitLimit
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			ui.PrintError(fmt.Sprintf("visits takes a non-negative count, got %q", arg))
			return
		}
		limit = n
	}

	visits, err := s.ctrl.Visits(limit)
	if err != nil {
		s.fail("visits", err)
		return
	}
	fmt.Println(ui.RenderVisits("Recent Website Visits", visits))
}

func (s *shell) block(cmd browser.Command) {
	domain, reason := cmd.Split()
	if domain == "" {
		var err error
		if domain, err = ui.PromptForDomain("block"); err != nil {
			s.promptFailed(err)
			return
		}
	}

	blocked, err := s.ctrl.Block(domain, reason)
	if err != nil {
		s.fail("block", err)
		return
	}
	ui.PrintSuccess(fmt.Sprintf("Domain '%s' has been blocked", blocked))
}

func (s *shell) unblock(cmd browser.Command) {
	domain, _ := cmd.Split()
	if domain == "" {
		var err error
		if domain, err = ui.PromptForDomain("unblock"); err != nil {
			s.promptFailed(err)
			return
		}
	}

	unblocked, was, err := s.ctrl.Unblock(domain)
	if err != nil {
		s.fail("unblock", err)
		return
	}
	if !was {
		ui.PrintWarning(fmt.Sprintf("Domain '%s' was not in the blocklist", unblocked))
		return
	}
	ui.PrintSuccess(fmt.Sprintf("Domain '%s' has been unblocked", unblocked))
}

func (s *shell) bookmark(title string) {
	b, err := s.ctrl.Bookmark(title)
	if errors.Is(err, browser.ErrNoCurrentPage) {
		ui.PrintInfo("Open a page before bookmarking it")
		return
	}
	if err != nil {
		s.fail("bookmark", err)
		return
	}
	ui.PrintSuccess(fmt.Sprintf("Bookmarked %s", b.TitleOr(b.URL)))
}

func (s *shell) unbookmark(ref string) {
	removed, err := s.ctrl.Unbookmark(ref)
	switch {
	case errors.Is(err, browser.ErrNoCurrentPage):
		ui.PrintInfo("No page open. Give a bookmark number or URL")
	case errors.Is(err, browser.ErrNoBookmark):
		ui.PrintWarning(err.Error())
	case err != nil:
		s.fail("unbookmark", err)
	default:
		ui.PrintSuccess(fmt.Sprintf("Removed bookmark %s", removed))
	}
}

func (s *shell) settings() {
	settings, err := s.ctrl.Settings()
	if err != nil {
		s.fail("settings", err)
		return
	}
	fmt.Println(ui.RenderSettings(settings))
}

func (s *shell) set(cmd browser.Command) {
	key, value := cmd.Split()
	if key == "" || value == "" {
		ui.PrintError(fmt.Sprintf("Usage: set <key> <value>, keys: %s", strings.Join(browser.SettingKeys(), ", ")))
		return
	}

	stored, err := s.ctrl.Set(key, value)
	if err != nil {
		s.fail("set", err)
		return
	}
	ui.PrintSuccess(fmt.Sprintf("%s = %s", key, stored))
}

func (s *shell) unset(key string) {
	if key == "" {
		ui.PrintError(fmt.Sprintf("Usage: unset <key>, keys: %s", strings.Join(browser.SettingKeys(), ", ")))
		return
	}
	if err := s.ctrl.Unset(key); err != nil {
		s.fail("unset", err)
		return
	}
	ui.PrintSuccess(fmt.Sprintf("%s reset to default", key))
}

func (s *shell) clear() {
	visits, err := s.ctrl.History()
	if err != nil {
		s.fail("clear", err)
		return
	}
	if len(visits) == 0 {
		ui.PrintInfo("No visit history available")
		return
	}

	ok, err := ui.ConfirmClearHistory(len(visits))
	if err != nil {
		s.fail("clear", err)
		return
	}
	if !ok {
		ui.PrintInfo("Visit log kept")
		return
	}

	n, err := s.ctrl.ClearHistory()
	if err != nil {
		s.fail("clear", err)
		return
	}
	ui.PrintSuccess(fmt.Sprintf("Deleted %d visits", n))
}

func (s *shell) fail(command string, err error) {
	if s.logger != nil {
		s.logger.Error("Command failed", "command", command, "err", err)
	}
	ui.PrintError(err.Error())
}

func (s *shell) promptFailed(err error) {
	if errors.Is(err, ui.ErrPromptCancelled) {
		ui.PrintInfo("Cancelled")
		return
	}
	ui.PrintError(err.Error())
}
