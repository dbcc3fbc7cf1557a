package browser

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultSearchURL is used when no search template is configured
const DefaultSearchURL = "https://www.google.com/search?q=%s"

// PrepareURL turns user input into a URL to navigate to.
// http and https URLs are kept as typed. Input containing a space or no dot
// is treated as search terms and placed into searchTemplate (a %s format).
// Anything else is assumed to be a host and gets an http:// prefix.
func PrepareURL(input, searchTemplate string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	lower := strings.ToLower(input)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return input
	}

	if strings.Contains(input, " ") || !strings.Contains(input, ".") {
		if searchTemplate == "" {
			searchTemplate = DefaultSearchURL
		}
		return fmt.Sprintf(searchTemplate, url.QueryEscape(input))
	}

	return "http://" + input
}

// Command is one parsed line from the prompt
type Command struct {
	Name string // lower-cased first word
	Arg  string // everything after the first word, trimmed
}

// ParseCommand splits a prompt line into a command name and its argument
func ParseCommand(line string) Command {
	first, rest := splitFirst(line)
	return Command{Name: strings.ToLower(first), Arg: rest}
}

// Split returns the first word of the argument and the remainder,
// e.g. the domain and the reason of `block example.com spam site`.
func (c Command) Split() (string, string) {
	return splitFirst(c.Arg)
}

func splitFirst(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}
