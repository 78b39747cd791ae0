package analytics

import (
	"fmt"
	"strings"

	"github.com/sisifus/jobflow/internal/cli"
	"github.com/sisifus/jobflow/internal/model"
)

// CLIFormatter renders reports for terminal display.
type CLIFormatter struct{}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{}
}

// FormatSummary creates a high-level summary of the report.
func (f *CLIFormatter) FormatSummary(report *Report) string {
	if report == nil {
		return cli.ErrorStyle.Render("No report available")
	}

	var sections []string
	sections = append(sections, f.formatHeader(report))
	sections = append(sections, f.formatStatusCounts(report))

	if len(report.CompanyCounts) > 0 {
		sections = append(sections, f.formatTopCompanies(report))
	}

	return cli.BoxStyle.Render(strings.Join(sections, "\n\n"))
}

func (f *CLIFormatter) formatHeader(report *Report) string {
	title := cli.TitleStyle.Render(cli.ChartIcon + " Job Application Report")

	lines := []string{
		fmt.Sprintf("Emails analyzed:   %d", report.TotalEmails),
		fmt.Sprintf("Job related:       %d", report.JobRelated),
		fmt.Sprintf("Not job related:   %d", report.NotJobRelated),
		fmt.Sprintf("High confidence:   %d (threshold %.2f)", report.HighConfidence, report.Threshold),
		fmt.Sprintf("Estimated accuracy: %.1f%%", report.Accuracy*100),
	}
	if !report.EarliestEmail.IsZero() && !report.LatestEmail.IsZero() {
		lines = append(lines, fmt.Sprintf("Date range:        %s to %s",
			report.EarliestEmail.Format("2006-01-02"),
			report.LatestEmail.Format("2006-01-02")))
	}

	return title + "\n" + strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatStatusCounts(report *Report) string {
	header := cli.SubtitleStyle.Render("By status")

	var lines []string
	for _, status := range report.OrderedStatuses() {
		count := report.StatusCounts[status]
		label := string(status)
		line := fmt.Sprintf("  %-16s %d", label, count)
		if status == model.StatusNotJobRelated {
			line = cli.SubtleStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return header + "\n" + strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatTopCompanies(report *Report) string {
	header := cli.SubtitleStyle.Render("Top companies")

	var lines []string
	for _, entry := range report.TopCompanies(10) {
		lines = append(lines, fmt.Sprintf("  %-24s %d", entry.Company, entry.Count))
	}

	return header + "\n" + strings.Join(lines, "\n")
}
