// Package analytics aggregates classification results into reports
// and export artifacts.
package analytics

import (
	"sort"
	"time"

	"github.com/sisifus/jobflow/internal/model"
)

// Report is an aggregate view over a set of classification results.
type Report struct {
	GeneratedAt    time.Time             `json:"generated_at"`
	EarliestEmail  time.Time             `json:"earliest_email,omitempty"`
	LatestEmail    time.Time             `json:"latest_email,omitempty"`
	StatusCounts   map[model.Status]int  `json:"status_counts"`
	CompanyCounts  map[string]int        `json:"company_counts"`
	TotalEmails    int                   `json:"total_emails"`
	JobRelated     int                   `json:"job_related"`
	NotJobRelated  int                   `json:"not_job_related"`
	HighConfidence int                   `json:"high_confidence"`
	Threshold      float64               `json:"confidence_threshold"`
	Accuracy       float64               `json:"estimated_accuracy"`
}

// BuildReport aggregates results into a report. Accuracy is the share
// of job-related results whose confidence clears the threshold.
func BuildReport(results []model.Classification, threshold float64) *Report {
	report := &Report{
		GeneratedAt:   time.Now(),
		StatusCounts:  make(map[model.Status]int),
		CompanyCounts: make(map[string]int),
		TotalEmails:   len(results),
		Threshold:     threshold,
	}

	for _, result := range results {
		report.StatusCounts[result.Status]++

		if !result.IsJobRelated {
			report.NotJobRelated++
			continue
		}
		report.JobRelated++
		report.CompanyCounts[result.Company]++
		if result.HighConfidence(threshold) {
			report.HighConfidence++
		}
	}

	if report.JobRelated > 0 {
		report.Accuracy = float64(report.HighConfidence) / float64(report.JobRelated)
	}

	return report
}

// CompanyCount pairs a company with its email count.
type CompanyCount struct {
	Company string
	Count   int
}

// TopCompanies returns the n most frequent companies, ties broken by
// name so the order is stable.
func (r *Report) TopCompanies(n int) []CompanyCount {
	counts := make([]CompanyCount, 0, len(r.CompanyCounts))
	for company, count := range r.CompanyCounts {
		counts = append(counts, CompanyCount{Company: company, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Company < counts[j].Company
	})
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// OrderedStatuses returns the statuses present in the report ordered
// by the resolution ladder, most decisive first.
func (r *Report) OrderedStatuses() []model.Status {
	var statuses []model.Status
	for _, status := range model.AllStatuses() {
		if r.StatusCounts[status] > 0 {
			statuses = append(statuses, status)
		}
	}
	if r.StatusCounts[model.StatusNotJobRelated] > 0 {
		statuses = append(statuses, model.StatusNotJobRelated)
	}
	return statuses
}
