package analytics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sisifus/jobflow/internal/model"
)

// WriteReportJSON writes the report as indented JSON.
func WriteReportJSON(w io.Writer, report *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteClassificationsCSV writes one row per classification result.
func WriteClassificationsCSV(w io.Writer, results []model.Classification) error {
	cw := csv.NewWriter(w)

	header := []string{
		"email_id", "status", "company", "confidence",
		"matched_rules", "job_related", "classified_at",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		row := []string{
			result.EmailID,
			string(result.Status),
			result.Company,
			strconv.FormatFloat(result.Confidence, 'f', 2, 64),
			strconv.Itoa(result.MatchedRuleCount),
			strconv.FormatBool(result.IsJobRelated),
			result.ClassifiedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", result.EmailID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
