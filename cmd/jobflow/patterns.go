package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sisifus/jobflow/internal/classification"
	"github.com/sisifus/jobflow/internal/cli"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List classification patterns",
		Long: `List the built-in classification rules by status.

Statuses are shown in resolution order: when an email matches several
statuses, the one listed first wins.`,
		RunE: runPatterns,
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show individual rule patterns")

	return cmd
}

func runPatterns(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	registry, err := classification.NewRegistry(classification.DefaultDefinitions())
	if err != nil {
		return fmt.Errorf("failed to build pattern registry: %w", err)
	}

	infos := registry.Definitions()
	totalRules := 0
	for _, info := range infos {
		totalRules += info.RuleCount
	}

	fmt.Fprintln(os.Stdout, cli.FormatTitle("Classification patterns"))
	fmt.Fprintf(os.Stdout, "%d statuses, %d rules\n\n", registry.DefinitionCount(), totalRules)

	for _, info := range infos {
		langs := make([]string, 0, len(info.Languages))
		for _, lang := range info.Languages {
			langs = append(langs, string(lang))
		}
		sort.Strings(langs)

		line := fmt.Sprintf("%-16s %3d rules", info.Status, info.RuleCount)
		if len(langs) > 0 {
			line += "  [" + strings.Join(langs, ", ") + "]"
		}
		fmt.Fprintln(os.Stdout, cli.BoldStyle.Render(line))

		if verbose {
			for _, pattern := range info.Patterns {
				fmt.Fprintln(os.Stdout, cli.SubtleStyle.Render("    "+pattern))
			}
		}
	}

	return nil
}
