package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sisifus/jobflow/internal/classification"
	"github.com/sisifus/jobflow/internal/cli"
	"github.com/sisifus/jobflow/internal/common"
	"github.com/sisifus/jobflow/internal/config"
	"github.com/sisifus/jobflow/internal/engine"
	"github.com/sisifus/jobflow/internal/model"
	"github.com/sisifus/jobflow/internal/storage"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify imported emails",
		Long: `Classify imported emails into job-application lifecycle stages.

By default only emails without a stored result are processed. Use
--all to reclassify everything, for example after a rule change.

Classification is deterministic: the same archive always produces the
same results.`,
		RunE: runClassify,
	}

	cmd.Flags().BoolP("all", "a", false, "Reclassify all emails, not just pending ones")
	cmd.Flags().Bool("dry-run", false, "Preview without saving results")
	cmd.Flags().Int("months", 0, "Only classify emails from the last N months")
	cmd.Flags().Int("year", 0, "Only classify emails from the given year")

	_ = viper.BindPFlag("classify.all", cmd.Flags().Lookup("all"))
	_ = viper.BindPFlag("classify.dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("classify.months", cmd.Flags().Lookup("months"))
	_ = viper.BindPFlag("classify.year", cmd.Flags().Lookup("year"))

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	settings := config.LoadSettings()
	reclassifyAll := viper.GetBool("classify.all")
	dryRun := viper.GetBool("classify.dry_run")

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

	emails, err := loadEmails(cmd, db, reclassifyAll)
	if err != nil {
		return err
	}
	emails = filterByDate(emails, viper.GetInt("classify.months"), viper.GetInt("classify.year"), time.Now())
	if len(emails) == 0 {
		fmt.Fprintln(os.Stdout, cli.FormatSuccess("Nothing to classify"))
		return nil
	}

	registry, err := classification.NewRegistry(classification.DefaultDefinitions())
	if err != nil {
		return fmt.Errorf("failed to build pattern registry: %w", err)
	}
	relevance := classification.DefaultRelevanceConfig()
	relevance.PlatformDomains = settings.PlatformDomains
	eng, err := engine.New(registry, engine.Options{
		Relevance:        &relevance,
		GenericProviders: settings.GenericProviders,
		ChunkSize:        settings.ChunkSize,
		BodyScanLimit:    settings.BodyScanLimit,
		Threshold:        settings.ConfidenceThreshold,
	})
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}

	bar := cli.NewProgressBar(os.Stderr, len(emails), "Classifying emails...")
	started := time.Now()
	results, err := eng.ProcessAll(ctx, emails, func(int) {
		_ = bar.Add(1)
	})
	if err != nil {
		return fmt.Errorf("classification aborted: %w", err)
	}

	if !dryRun {
		if err := db.SaveClassifications(ctx, results); err != nil {
			return fmt.Errorf("failed to save results: %w", err)
		}
	}
	common.LogInfo("classification finished", common.Fields{
		"emails":  len(results),
		"elapsed": time.Since(started).Round(time.Millisecond),
		"dry_run": dryRun,
	})

	jobRelated := 0
	highConfidence := 0
	for _, result := range results {
		if result.IsJobRelated {
			jobRelated++
		}
		if result.HighConfidence(eng.Threshold()) {
			highConfidence++
		}
	}

	summary := fmt.Sprintf("Emails processed:  %d\n", len(results)) +
		fmt.Sprintf("Job related:       %d\n", jobRelated) +
		fmt.Sprintf("High confidence:   %d\n", highConfidence) +
		fmt.Sprintf("Time taken:        %s", time.Since(started).Round(time.Millisecond))
	if dryRun {
		summary += "\n(dry run, nothing saved)"
	}
	fmt.Fprintln(os.Stdout, cli.RenderBox("Classification Complete", summary))

	return nil
}

func loadEmails(cmd *cobra.Command, db *storage.SQLiteStorage, all bool) ([]model.Email, error) {
	ctx := cmd.Context()
	if all {
		emails, err := db.GetAllEmails(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load emails: %w", err)
		}
		if len(emails) == 0 {
			return nil, fmt.Errorf("%w: run 'jobflow import' first", common.ErrNoEmails)
		}
		return emails, nil
	}
	emails, err := db.GetEmailsToClassify(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending emails: %w", err)
	}
	return emails, nil
}

// filterByDate keeps emails from the given year and, independently,
// from the last N months. Zero values disable each filter.
func filterByDate(emails []model.Email, months, year int, now time.Time) []model.Email {
	if months <= 0 && year <= 0 {
		return emails
	}
	cutoff := now.AddDate(0, -months, 0)
	kept := make([]model.Email, 0, len(emails))
	for _, email := range emails {
		if year > 0 && email.Date.Year() != year {
			continue
		}
		if months > 0 && email.Date.Before(cutoff) {
			continue
		}
		kept = append(kept, email)
	}
	return kept
}
