package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sisifus/jobflow/internal/cli"
	"github.com/sisifus/jobflow/internal/common"
	"github.com/sisifus/jobflow/internal/config"
	"github.com/sisifus/jobflow/internal/mbox"
	"github.com/sisifus/jobflow/internal/storage"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [mbox files...]",
		Short: "Import emails from mbox archives",
		Long: `Import emails from exported .mbox files (Google Takeout format).

Without arguments, the input directory is searched recursively for
.mbox files. Emails are deduplicated automatically; re-importing the
same archive is safe.`,
		RunE: runImport,
	}

	cmd.Flags().StringP("input-dir", "i", "", "Directory to search for .mbox files")
	cmd.Flags().Bool("dry-run", false, "Parse without saving to the database")

	_ = viper.BindPFlag("import.input_dir", cmd.Flags().Lookup("input-dir"))
	_ = viper.BindPFlag("import.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	settings := config.LoadSettings()
	dryRun := viper.GetBool("import.dry_run")

	files := args
	if len(files) == 0 {
		found, err := mbox.FindMboxFiles(settings.InputDir)
		if err != nil {
			return common.NewUserError(fmt.Sprintf("failed to scan %s", settings.InputDir), err)
		}
		files = found
	}
	if len(files) == 0 {
		slog.Info(cli.FormatWarning(fmt.Sprintf("No .mbox files found in %s", settings.InputDir)))
		slog.Info("Tip: extract your Takeout archive and place the .mbox file(s) in the input folder")
		return common.ErrNoMboxFiles
	}

	var db *storage.SQLiteStorage
	if !dryRun {
		var err error
		db, err = storage.NewSQLiteStorage(settings.DBPath)
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
	}

	importer := mbox.NewImporter(slog.Default())
	totalParsed := 0
	totalSaved := 0
	for _, path := range files {
		started := time.Now()
		slog.Info(cli.FormatInfo("Importing " + path))

		emails, stats, err := importer.ImportFile(ctx, path)
		if err != nil {
			return common.NewUserError(fmt.Sprintf("failed to import %s", path), err)
		}
		totalParsed += stats.Parsed

		if dryRun || len(emails) == 0 {
			continue
		}

		saved, err := db.SaveEmails(ctx, emails)
		if err != nil {
			return fmt.Errorf("failed to save emails from %s: %w", path, err)
		}
		totalSaved += saved

		if err := db.RecordImportRun(ctx, storage.ImportRun{
			SourcePath:   path,
			MessageCount: stats.MessageCount,
			Imported:     saved,
			Skipped:      stats.Skipped + (stats.Parsed - saved),
			StartedAt:    started,
			FinishedAt:   time.Now(),
		}); err != nil {
			common.LogError(err, "Failed to record import run", common.Fields{"file": path})
		}
	}

	if dryRun {
		fmt.Fprintln(os.Stdout, cli.FormatSuccess(fmt.Sprintf("Parsed %d emails (dry run, nothing saved)", totalParsed)))
		return nil
	}

	fmt.Fprintln(os.Stdout, cli.FormatSuccess(fmt.Sprintf(
		"Imported %d emails (%d new) from %d file(s)", totalParsed, totalSaved, len(files))))
	return nil
}
