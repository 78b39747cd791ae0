package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sisifus/jobflow/internal/analytics"
	"github.com/sisifus/jobflow/internal/cli"
	"github.com/sisifus/jobflow/internal/config"
	"github.com/sisifus/jobflow/internal/model"
	"github.com/sisifus/jobflow/internal/storage"
)

func flowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flow",
		Short: "View application flow reports",
		Long: `Analyze classified emails and report where your applications stand.

Prints a summary to the terminal and optionally exports the full
report as JSON, CSV and an interactive Sankey diagram.`,
		RunE: runFlow,
	}

	cmd.Flags().Bool("export", false, "Write report files to the output directory")
	cmd.Flags().StringP("output-dir", "o", "", "Directory for exported report files")

	_ = viper.BindPFlag("flow.export", cmd.Flags().Lookup("export"))
	_ = viper.BindPFlag("export.output_dir", cmd.Flags().Lookup("output-dir"))

	return cmd
}

func runFlow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	settings := config.LoadSettings()
	export := viper.GetBool("flow.export")

	db, err := storage.NewSQLiteStorage(settings.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	results, err := db.GetAllClassifications(ctx)
	if err != nil {
		return fmt.Errorf("failed to load classifications: %w", err)
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, cli.FormatWarning("No classified emails yet"))
		fmt.Fprintln(os.Stdout, "Run 'jobflow import' and 'jobflow classify' first.")
		return nil
	}

	report := analytics.BuildReport(results, settings.ConfidenceThreshold)
	if earliest, latest, rangeErr := db.GetEmailDateRange(ctx); rangeErr == nil {
		report.EarliestEmail = earliest
		report.LatestEmail = latest
	}

	fmt.Fprintln(os.Stdout, analytics.NewCLIFormatter().FormatSummary(report))

	if !export {
		return nil
	}
	return exportReport(settings.OutputDir, report, results)
}

func exportReport(outputDir string, report *analytics.Report, results []model.Classification) error {
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	writers := []struct {
		write func(*os.File) error
		name  string
	}{
		{name: "analytics.json", write: func(f *os.File) error { return analytics.WriteReportJSON(f, report) }},
		{name: "applications.csv", write: func(f *os.File) error { return analytics.WriteClassificationsCSV(f, results) }},
		{name: "sankey_diagram.html", write: func(f *os.File) error { return analytics.WriteSankeyHTML(f, results) }},
	}

	for _, w := range writers {
		path := filepath.Join(outputDir, w.name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := w.write(f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", path, err)
		}
		slog.Info("Wrote report file", "path", path)
	}

	fmt.Fprintln(os.Stdout, cli.FormatSuccess("Report exported to "+outputDir))
	return nil
}
