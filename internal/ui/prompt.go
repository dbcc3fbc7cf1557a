package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/misbah7172/Custom-Browser/internal/hostname"
)

// ErrPromptCancelled is returned when the user aborts a prompt
var ErrPromptCancelled = errors.New("prompt cancelled")

// sanitizeInput removes null bytes and other invisible control characters from input
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return -1
		}
		return r
	}, s)
}

func runForm(form *huh.Form) error {
	if err := form.WithTheme(NewAppTheme()).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrPromptCancelled
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

// PromptForURL asks for an address or search terms when `open` has no argument
func PromptForURL() (string, error) {
	var input string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Open").
				Description("A URL, a domain, or words to search for").
				Placeholder("example.com").
				Value(&input).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("nothing to open")
					}
					return nil
				}),
		),
	)

	if err := runForm(form); err != nil {
		return "", err
	}
	return strings.TrimSpace(sanitizeInput(input)), nil
}

// PromptForDomain asks for a domain when `block` or `unblock` has no argument.
// action is the verb shown in the title.
func PromptForDomain(action string) (string, error) {
	var input string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Domain to %s", action)).
				Description("A bare domain or any URL on it").
				Placeholder("example.com").
				Value(&input).
				Validate(func(s string) error {
					_, err := hostname.Extract(sanitizeInput(s))
					return err
				}),
		),
	)

	if err := runForm(form); err != nil {
		return "", err
	}
	return strings.TrimSpace(sanitizeInput(input)), nil
}

// ConfirmClearHistory asks before wiping the durable visit log
func ConfirmClearHistory(count int) (bool, error) {
	var confirm bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete all %d recorded visits?", count)).
				Description("The visit log cannot be restored. The blocklist is kept.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&confirm),
		),
	)

	if err := runForm(form); err != nil {
		if errors.Is(err, ErrPromptCancelled) {
			return false, nil
		}
		return false, err
	}
	return confirm, nil
}
