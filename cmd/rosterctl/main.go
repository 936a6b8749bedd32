package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"roster-backend/chart"
	"roster-backend/config"
	"roster-backend/logger"
	"roster-backend/models"
	"roster-backend/roster"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "rosterctl",
		Short: "Scrape athlete records and render them as pie charts",
		Long: `rosterctl runs the scrape and render steps of the roster backend without
the HTTP server. Scrape output can be fed straight back into render.`,
		SilenceUsage: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging on stderr")

	newLogger := func() zerolog.Logger {
		level := "warn"
		if verbose {
			level = "debug"
		}
		return logger.NewWithWriter(logger.Config{Level: level}, stderr)
	}

	cmd.AddCommand(newScrapeCmd(newLogger), newRenderCmd(newLogger))
	return cmd
}

func newScrapeCmd(newLogger func() zerolog.Logger) *cobra.Command {
	var (
		format   string
		outPath  string
		url      string
		maxPages int
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Fetch the athlete listing and print the records",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "json" && format != "csv" {
				return fmt.Errorf("invalid format: %s (must be 'json' or 'csv')", format)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if url != "" {
				cfg.Fetcher.ListingURL = url
			}
			if maxPages > 0 {
				cfg.Fetcher.MaxPages = maxPages
			}

			athletes, err := roster.NewFetcher(cfg.Fetcher, newLogger()).FetchAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("scraping: %w", err)
			}

			if outPath == "" {
				return writeAthletes(cmd.OutOrStdout(), format, athletes)
			}
			return writeAthletesFile(outPath, format, athletes)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or csv")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")
	cmd.Flags().StringVar(&url, "url", "", "Listing URL the page number is appended to (default from ROSTER_URL)")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "Maximum pages to fetch (default from ROSTER_MAX_PAGES)")
	return cmd
}

// writeAthletesFile writes the records to path. A failed close is reported,
// since buffered data may not have reached the disk.
func writeAthletesFile(path, format string, athletes []models.AthleteRecord) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
	}()
	return writeAthletes(f, format, athletes)
}

func writeAthletes(w io.Writer, format string, athletes []models.AthleteRecord) error {
	if format == "csv" {
		return roster.WriteCSV(w, athletes)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(athletes)
}

func newRenderCmd(newLogger func() zerolog.Logger) *cobra.Command {
	var (
		input   string
		outDir  string
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a JSON or CSV athlete file into the PDF document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("--input is required")
			}

			athletes, err := readAthletes(input)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if outDir != "" {
				cfg.Renderer.Dir = outDir
			}
			if outFile != "" {
				cfg.Renderer.Filename = outFile
			}

			res, err := chart.NewRenderer(cfg.Renderer, newLogger()).Render(athletes)
			if err != nil {
				return fmt.Errorf("rendering: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d pages, %d skipped)\n", res.Path, res.Pages, res.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Athlete file (.json or .csv) (required)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory (default from OUTPUT_DIR)")
	cmd.Flags().StringVar(&outFile, "out-file", "", "Output filename (default from OUTPUT_FILE)")
	return cmd
}

func readAthletes(path string) ([]models.AthleteRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		athletes, err := roster.ParseCSV(f)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return athletes, nil
	}

	var athletes []models.AthleteRecord
	if err := json.NewDecoder(f).Decode(&athletes); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return athletes, nil
}
