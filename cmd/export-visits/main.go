package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/misbah7172/Custom-Browser/internal/browser"
	"github.com/misbah7172/Custom-Browser/internal/config"
	"github.com/misbah7172/Custom-Browser/internal/db"
	"github.com/misbah7172/Custom-Browser/internal/models"
	"github.com/misbah7172/Custom-Browser/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	dbPath := flag.String("db", cfg.DBPath, "Path to SQLite database")
	outputPath := flag.String("output", "visits.csv", "Output file")
	format := flag.String("format", "", "csv or md (default: from the output extension)")
	backup := flag.Bool("backup", false, "Also write a timestamped copy of the database to the current directory")
	flag.Parse()

	if *format == "" {
		*format = "csv"
		if strings.HasSuffix(strings.ToLower(*outputPath), ".md") {
			*format = "md"
		}
	}
	if *format != "csv" && *format != "md" {
		fmt.Fprintf(os.Stderr, "Unknown format %q, use csv or md\n", *format)
		os.Exit(1)
	}

	database, err := db.New(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if *backup {
		name := db.BackupFilename(*dbPath, time.Now())
		if err := database.Backup(name); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to back up database: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Database backed up to %s\n", name)
	}

	visits, err := database.ListVisits()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to query database: %v\n", err)
		os.Exit(1)
	}

	if *format == "md" {
		stats, _ := browser.ComputeSiteStats(visits)
		report := ui.GenerateMarkdownReport(visits, stats, time.Now())
		if err := os.WriteFile(*outputPath, []byte(report), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write markdown file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d visits to %s\n", len(visits), *outputPath)
		return
	}

	f, err := os.Create(*outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	count, err := writeCSV(f, visits)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write CSV: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d visits to %s\n", count, *outputPath)
}

// writeCSV writes one row per visit, with empty cells for missing values
func writeCSV(out io.Writer, visits []models.VisitRecord) (int, error) {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"id", "visit_time", "url", "title", "ip_address", "location"}); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	count := 0
	for _, v := range visits {
		row := []string{
			fmt.Sprintf("%d", v.ID),
			v.Timestamp.UTC().Format(time.RFC3339Nano),
			v.URL,
			v.TitleOr(""),
			v.AddressOr(""),
			v.LocationOr(""),
		}
		if err := w.Write(row); err != nil {
			return count, fmt.Errorf("failed to write row %d: %w", v.ID, err)
		}
		count++
	}

	w.Flush()
	return count, w.Error()
}
