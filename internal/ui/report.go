package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/misbah7172/Custom-Browser/internal/models"
)

// TimeLayout is how visit times are shown to the user
const TimeLayout = "2006-01-02 15:04:05"

// Command help, in the order shown by `help`
var commandHelp = [][2]string{
	{"open [url]", "Navigate to a URL, a domain or search terms"},
	{"back", "Go back in the session"},
	{"forward", "Go forward in the session"},
	{"current", "Show the current page"},
	{"session", "Show this session's pages"},
	{"history", "Show every recorded visit"},
	{"visits [n]", "Show the last n visits with addresses"},
	{"stats", "Visits per site"},
	{"block [domain] [reason]", "Block a domain"},
	{"unblock [domain]", "Unblock a domain"},
	{"blocklist", "Show blocked domains"},
	{"bookmark [title]", "Bookmark the current page"},
	{"unbookmark [n|url]", "Remove a bookmark, the current page by default"},
	{"bookmarks", "Show bookmarks"},
	{"goto <n>", "Open bookmark n"},
	{"settings", "Show settings"},
	{"set <key> <value>", "Save a setting"},
	{"unset <key>", "Reset a setting to its default"},
	{"clear", "Delete the visit log"},
	{"help", "Show this help"},
	{"exit/quit", "Exit the browser"},
}

// column describes one column of a box-drawn table
type column struct {
	title    string
	maxWidth int
}

// renderTable draws rows in a box. Cells wider than their column are truncated.
// Rows listed in highlight are rendered with SelectedStyle.
//
// This is a CLI report (non-interactive), so the table structure is built with
// string formatting and lipgloss only colors the lines.
func renderTable(cols []column, rows [][]string, highlight map[int]bool) string {
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = utf8.RuneCountInString(c.title)
	}
	for _, row := range rows {
		for i := range cols {
			if n := utf8.RuneCountInString(row[i]); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i, c := range cols {
		if c.maxWidth > 0 && widths[i] > c.maxWidth {
			widths[i] = c.maxWidth
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			cell = truncate(cell, widths[i])
			parts[i] = cell + strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
		}
		return "│ " + strings.Join(parts, " │ ") + " │"
	}

	segments := make([]string, len(widths))
	for i, w := range widths {
		segments[i] = strings.Repeat("─", w+2)
	}

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.title
	}

	var sb strings.Builder
	sb.WriteString(BorderStyle.Render("┌"+strings.Join(segments, "┬")+"┐") + "\n")
	sb.WriteString(HeaderStyle.Render(line(headers)) + "\n")
	sb.WriteString(BorderStyle.Render("├"+strings.Join(segments, "┼")+"┤") + "\n")
	for i, row := range rows {
		text := line(row)
		if highlight[i] {
			sb.WriteString(SelectedStyle.Render(text) + "\n")
		} else {
			sb.WriteString(NormalStyle.Render(text) + "\n")
		}
	}
	sb.WriteString(BorderStyle.Render("└" + strings.Join(segments, "┴") + "┘"))
	return sb.String()
}

// truncate shortens s to width runes, marking the cut with "..."
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(TimeLayout)
}

// RenderWelcome returns the banner shown when the browser starts
func RenderWelcome(dbPath string, incognito bool) string {
	var sb strings.Builder
	sb.WriteString(AccentStyle.Render("CONSOLE WEB BROWSER WITH TRACKING & FIREWALL") + "\n")
	if incognito {
		sb.WriteString(WarningStyle.Render("Incognito: visits are not recorded") + "\n")
	} else {
		sb.WriteString(HintStyle.Render("Visit log: "+dbPath) + "\n")
	}
	sb.WriteString(RenderHelp())
	return sb.String()
}

// RenderHelp returns the command reference
func RenderHelp() string {
	width := 0
	for _, h := range commandHelp {
		if n := len(h[0]); n > width {
			width = n
		}
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Commands:") + "\n")
	for _, h := range commandHelp {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", AccentStyle.Render(fmt.Sprintf("%-*s", width, h[0])), RenderNormal(h[1])))
	}
	sb.WriteString(HintStyle.Render("Input without a dot or with spaces is searched for.") + "\n")
	return sb.String()
}

// RenderPage summarizes a completed navigation
func RenderPage(visit models.VisitRecord, fetch models.FetchOutcome) string {
	var sb strings.Builder
	label := func(k, v string) {
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-10s", k+":")) + " " + RenderNormal(v) + "\n")
	}

	sb.WriteString("\n")
	label("URL", visit.URL)
	label("Title", visit.TitleOr("No title"))
	label("Server IP", visit.AddressOr("unresolved"))
	if visit.Location != nil {
		label("Location", *visit.Location)
	}
	if fetch.StatusCode != 0 {
		label("Status", fmt.Sprintf("%d", fetch.StatusCode))
	}
	if fetch.ContentType != "" && fetch.Title == "" && fetch.OK {
		sb.WriteString(HintStyle.Render(fmt.Sprintf("Content type is %s, not displaying content", fetch.ContentType)) + "\n")
	}

	if len(fetch.Links) > 0 {
		sb.WriteString(TitleStyle.Render("Links on page:") + "\n")
		for i, l := range fetch.Links {
			sb.WriteString(fmt.Sprintf("  %2d. %s: %s\n", i+1, RenderNormal(l.Text), LinkStyle.Render(l.URL)))
		}
		if more := fetch.TotalLinks - len(fetch.Links); more > 0 {
			sb.WriteString(HintStyle.Render(fmt.Sprintf("  ... and %d more links", more)) + "\n")
		}
	}
	return sb.String()
}

// RenderSession lists the session entries with the cursor marked
func RenderSession(entries []models.VisitRecord, position int) string {
	if len(entries) == 0 {
		return HintStyle.Render("No browsing history")
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		marker := ""
		if i == position {
			marker = "<- current"
		}
		rows[i] = []string{fmt.Sprintf("%d", i+1), e.TitleOr("-"), e.URL, marker}
	}

	cols := []column{{"#", 4}, {"Title", 30}, {"URL", 60}, {"", 10}}
	return TitleStyle.Render("Browsing Session") + "\n" + renderTable(cols, rows, map[int]bool{position: true})
}

// RenderVisits lists durable visit records, oldest first
func RenderVisits(title string, visits []models.VisitRecord) string {
	if len(visits) == 0 {
		return HintStyle.Render("No visit history available")
	}

	rows := make([][]string, len(visits))
	for i, v := range visits {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			formatTime(v.Timestamp),
			v.TitleOr("No title"),
			v.URL,
			v.AddressOr("Unknown"),
			v.LocationOr("Unknown"),
		}
	}

	cols := []column{{"#", 5}, {"Time", 19}, {"Title", 30}, {"URL", 50}, {"IP Address", 39}, {"Location", 20}}
	return TitleStyle.Render(title) + "\n" + renderTable(cols, rows, nil)
}

// RenderCurrent shows the page under the session cursor
func RenderCurrent(visit models.VisitRecord) string {
	return LabelStyle.Render("Current URL:") + " " + RenderNormal(visit.URL) +
		HintStyle.Render(fmt.Sprintf("  (%s, %s)", visit.TitleOr("No title"), visit.AddressOr("unresolved")))
}

// RenderBlocklist lists firewall entries
func RenderBlocklist(entries []models.BlockEntry) string {
	if len(entries) == 0 {
		return HintStyle.Render("No domains are currently blocked")
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{fmt.Sprintf("%d", i+1), e.Domain, e.Reason, formatTime(e.BlockedAt)}
	}

	cols := []column{{"#", 4}, {"Domain", 50}, {"Reason", 40}, {"Blocked", 19}}
	return TitleStyle.Render("Blocked Domains") + "\n" + renderTable(cols, rows, nil)
}

// RenderBookmarks lists bookmarks numbered for goto and unbookmark
func RenderBookmarks(bookmarks []models.Bookmark) string {
	if len(bookmarks) == 0 {
		return HintStyle.Render("No bookmarks saved")
	}

	rows := make([][]string, len(bookmarks))
	for i, b := range bookmarks {
		rows[i] = []string{fmt.Sprintf("%d", i+1), b.TitleOr("-"), b.URL, formatTime(b.AddedAt)}
	}

	cols := []column{{"#", 4}, {"Title", 40}, {"URL", 60}, {"Added", 19}}
	return TitleStyle.Render("Bookmarks") + "\n" + renderTable(cols, rows, nil)
}

// RenderSettings lists effective settings. Never-saved settings show as defaults.
func RenderSettings(settings []models.Setting) string {
	rows := make([][]string, len(settings))
	for i, s := range settings {
		value := s.Value
		switch value {
		case "1":
			value = "on"
		case "0":
			value = "off"
		}
		saved := "default"
		if !s.UpdatedAt.IsZero() {
			saved = formatTime(s.UpdatedAt)
		}
		rows[i] = []string{s.Key, value, saved}
	}

	cols := []column{{"Setting", 20}, {"Value", 60}, {"Saved", 19}}
	return TitleStyle.Render("Settings") + "\n" + renderTable(cols, rows, nil)
}

// RenderStats shows visit counts per site, most visited first
func RenderStats(stats []models.SiteStats, totalVisits int) string {
	if len(stats) == 0 {
		return HintStyle.Render("No visit history available")
	}

	rows := make([][]string, len(stats))
	for i, s := range stats {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			s.Site,
			fmt.Sprintf("%d", s.Visits),
			fmt.Sprintf("%.1f%%", s.Percentage),
			formatTime(s.LastVisit),
		}
	}

	cols := []column{{"Rank", 6}, {"Site", 40}, {"Visits", 8}, {"%", 7}, {"Last visit", 19}}
	header := TitleStyle.Render("Visits per Site") + "\n" +
		HintStyle.Render(fmt.Sprintf("%d visits across %d sites", totalVisits, len(stats))) + "\n"
	return header + renderTable(cols, rows, nil)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(SuccessStyle.Render(message))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(ErrorStyle.Render("Error: " + message))
}

// PrintWarning prints a non-fatal problem
func PrintWarning(message string) {
	fmt.Println(WarningStyle.Render("Warning: " + message))
}

// PrintInfo prints a neutral status line
func PrintInfo(message string) {
	fmt.Println(RenderNormal(message))
}

// GenerateMarkdownReport renders the visit log and per-site stats as markdown
func GenerateMarkdownReport(visits []models.VisitRecord, stats []models.SiteStats, generated time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Browsing History\n\n")
	sb.WriteString(fmt.Sprintf("**Total Visits:** %d\n", len(visits)))
	sb.WriteString(fmt.Sprintf("**Sites:** %d\n", len(stats)))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", generated.Format(TimeLayout)))

	sb.WriteString("## Visits per Site\n\n")
	if len(stats) == 0 {
		sb.WriteString("No data\n")
	} else {
		sb.WriteString("| Rank | Site | Visits | % | Last visit |\n")
		sb.WriteString("|------|------|--------|---|------------|\n")
		for i, s := range stats {
			sb.WriteString(fmt.Sprintf("| %d | %s | %d | %.1f%% | %s |\n",
				i+1, s.Site, s.Visits, s.Percentage, formatTime(s.LastVisit)))
		}
	}
	sb.WriteString("\n")

	sb.WriteString("## Visits\n\n")
	if len(visits) == 0 {
		sb.WriteString("No data\n")
		return sb.String()
	}
	sb.WriteString("| # | Time | Title | URL | IP Address |\n")
	sb.WriteString("|---|------|-------|-----|------------|\n")
	for i, v := range visits {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			i+1, formatTime(v.Timestamp), escapeMarkdown(v.TitleOr("-")), v.URL, v.AddressOr("-")))
	}
	return sb.String()
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
