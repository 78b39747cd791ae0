package analytics

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"sort"

	"github.com/sisifus/jobflow/internal/model"
)

// SankeyData is the node/link structure consumed by the Plotly sankey
// trace.
type SankeyData struct {
	Labels  []string `json:"labels"`
	Sources []int    `json:"sources"`
	Targets []int    `json:"targets"`
	Values  []int    `json:"values"`
}

const applicationsNode = "Applications"

// BuildSankeyData turns classification results into a funnel from
// applications to the furthest status each company reached. Results
// that are not job-related are ignored.
func BuildSankeyData(results []model.Classification) SankeyData {
	// Furthest status per company, by ladder precedence.
	furthest := make(map[string]model.Status)
	for _, result := range results {
		if !result.IsJobRelated {
			continue
		}
		current, ok := furthest[result.Company]
		if !ok {
			furthest[result.Company] = result.Status
			continue
		}
		currentRank, err := current.Rank()
		if err != nil {
			continue
		}
		rank, err := result.Status.Rank()
		if err != nil {
			continue
		}
		if rank < currentRank {
			furthest[result.Company] = result.Status
		}
	}

	counts := make(map[model.Status]int)
	for _, status := range furthest {
		counts[status]++
	}

	data := SankeyData{Labels: []string{applicationsNode}}
	statuses := make([]model.Status, 0, len(counts))
	for status := range counts {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool {
		ri, _ := statuses[i].Rank()
		rj, _ := statuses[j].Rank()
		return ri < rj
	})

	for _, status := range statuses {
		data.Labels = append(data.Labels, string(status))
		data.Sources = append(data.Sources, 0)
		data.Targets = append(data.Targets, len(data.Labels)-1)
		data.Values = append(data.Values, counts[status])
	}

	return data
}

var sankeyTemplate = template.Must(template.New("sankey").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Job Application Flow</title>
  <script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
</head>
<body>
  <div id="sankey" style="width:100%;height:600px;"></div>
  <script>
    const data = {{.Data}};
    Plotly.newPlot("sankey", [{
      type: "sankey",
      orientation: "h",
      node: {
        pad: 15,
        thickness: 20,
        label: data.labels
      },
      link: {
        source: data.sources,
        target: data.targets,
        value: data.values
      }
    }], {title: "Job Application Flow"});
  </script>
</body>
</html>
`))

// WriteSankeyHTML writes a self-contained HTML page visualizing the
// application funnel.
func WriteSankeyHTML(w io.Writer, results []model.Classification) error {
	data := BuildSankeyData(results)

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal sankey data: %w", err)
	}

	err = sankeyTemplate.Execute(w, struct{ Data template.JS }{Data: template.JS(payload)})
	if err != nil {
		return fmt.Errorf("failed to render sankey template: %w", err)
	}
	return nil
}
