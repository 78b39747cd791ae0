package analytics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sisifus/jobflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []model.Classification {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []model.Classification{
		{EmailID: "1", Status: model.StatusApplied, Company: "Acmecorp", Confidence: 0.5, MatchedRuleCount: 1, IsJobRelated: true, ClassifiedAt: now},
		{EmailID: "2", Status: model.StatusConfirmation, Company: "Acmecorp", Confidence: 0.7, MatchedRuleCount: 1, IsJobRelated: true, ClassifiedAt: now},
		{EmailID: "3", Status: model.StatusInterview1, Company: "Globex", Confidence: 0.9, MatchedRuleCount: 2, IsJobRelated: true, ClassifiedAt: now},
		{EmailID: "4", Status: model.StatusRejected, Company: "Globex", Confidence: 1.0, MatchedRuleCount: 3, IsJobRelated: true, ClassifiedAt: now},
		{EmailID: "5", Status: model.StatusNoReply, Company: "Initech", Confidence: 0.0, IsJobRelated: true, ClassifiedAt: now},
		{EmailID: "6", Status: model.StatusNotJobRelated, Company: model.UnknownCompany, Confidence: 0.0, ClassifiedAt: now},
	}
}

func TestBuildReport(t *testing.T) {
	report := BuildReport(sampleResults(), 0.5)

	assert.Equal(t, 6, report.TotalEmails)
	assert.Equal(t, 5, report.JobRelated)
	assert.Equal(t, 1, report.NotJobRelated)

	// Confidence strictly above 0.5: emails 2, 3 and 4.
	assert.Equal(t, 3, report.HighConfidence)
	assert.InDelta(t, 0.6, report.Accuracy, 1e-9)

	assert.Equal(t, 1, report.StatusCounts[model.StatusApplied])
	assert.Equal(t, 1, report.StatusCounts[model.StatusRejected])
	assert.Equal(t, 1, report.StatusCounts[model.StatusNotJobRelated])

	assert.Equal(t, 2, report.CompanyCounts["Acmecorp"])
	assert.Equal(t, 2, report.CompanyCounts["Globex"])
	// not_job_related never enters the company rollup.
	assert.Zero(t, report.CompanyCounts[model.UnknownCompany])
}

func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport(nil, 0.5)

	assert.Zero(t, report.TotalEmails)
	assert.Zero(t, report.Accuracy)
	assert.Empty(t, report.OrderedStatuses())
}

func TestReport_TopCompanies(t *testing.T) {
	report := BuildReport(sampleResults(), 0.5)

	top := report.TopCompanies(2)
	require.Len(t, top, 2)
	// Equal counts break ties alphabetically.
	assert.Equal(t, "Acmecorp", top[0].Company)
	assert.Equal(t, "Globex", top[1].Company)
}

func TestReport_OrderedStatuses(t *testing.T) {
	report := BuildReport(sampleResults(), 0.5)

	statuses := report.OrderedStatuses()
	require.NotEmpty(t, statuses)
	// Ladder precedence: rejected first, not_job_related last.
	assert.Equal(t, model.StatusRejected, statuses[0])
	assert.Equal(t, model.StatusNotJobRelated, statuses[len(statuses)-1])
}

func TestWriteReportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReportJSON(&buf, BuildReport(sampleResults(), 0.5)))

	out := buf.String()
	assert.Contains(t, out, `"total_emails": 6`)
	assert.Contains(t, out, `"estimated_accuracy"`)
	assert.Contains(t, out, `"rejected"`)
}

func TestWriteClassificationsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteClassificationsCSV(&buf, sampleResults()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "email_id,status,company,confidence,matched_rules,job_related,classified_at", lines[0])
	assert.Contains(t, lines[1], "1,applied,Acmecorp,0.50,1,true,")
	assert.Contains(t, lines[6], "not_job_related")
}

func TestBuildSankeyData(t *testing.T) {
	data := BuildSankeyData(sampleResults())

	// One source node plus the furthest status per company:
	// Acmecorp reached confirmation, Globex rejected, Initech no_reply.
	require.Len(t, data.Labels, 4)
	assert.Equal(t, "Applications", data.Labels[0])
	assert.Equal(t, "rejected", data.Labels[1])
	assert.Equal(t, "confirmation", data.Labels[2])
	assert.Equal(t, "no_reply", data.Labels[3])

	for _, src := range data.Sources {
		assert.Zero(t, src)
	}
	total := 0
	for _, v := range data.Values {
		total += v
	}
	assert.Equal(t, 3, total)
}

func TestWriteSankeyHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSankeyHTML(&buf, sampleResults()))

	out := buf.String()
	assert.Contains(t, out, "plotly")
	assert.Contains(t, out, `"labels"`)
	assert.Contains(t, out, "Applications")
}

func TestCLIFormatter_FormatSummary(t *testing.T) {
	f := NewCLIFormatter()

	out := f.FormatSummary(BuildReport(sampleResults(), 0.5))
	assert.Contains(t, out, "Job Application Report")
	assert.Contains(t, out, "rejected")
	assert.Contains(t, out, "Acmecorp")

	assert.Contains(t, f.FormatSummary(nil), "No report")
}
