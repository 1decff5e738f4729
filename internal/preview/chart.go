package preview

import (
	"fmt"
	"hash/fnv"
	"math"

	"assetlib/pkg/contracts/domain"
)

// periodLabels are the x-axis labels of each date range
var periodLabels = map[string][]string{
	"Last 7 days":  {"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	"Last 30 days": {"Week 1", "Week 2", "Week 3", "Week 4"},
	"Last 90 days": {"Month 1", "Month 2", "Month 3"},
	"Year to date": {"Q1", "Q2", "Q3", "Q4"},
}

// Chart returns the mock chart configuration for the current selection.
// The same selection always yields the same points.
func (s *Selection) Chart() domain.ChartPreview {
	sel := s.current
	chart := domain.ChartPreview{
		Title:     s.layout.Name,
		Kind:      domain.ChartKindUnknown,
		Visual:    sel.Visual,
		KPIID:     sel.KPIID,
		MetricID:  sel.MetricID,
		DateRange: sel.DateRange,
		Affiliate: sel.Affiliate,
		Points:    []domain.ChartPoint{},
	}

	k, ok := s.selectedKPI()
	if !ok {
		return chart
	}
	chart.Title = k.Name
	if sel.MetricID != "" {
		chart.Title = fmt.Sprintf("%s - %s", k.Name, sel.MetricID)
	}
	chart.Kind = domain.VisualKind(sel.Visual)

	for _, label := range periodLabels[sel.DateRange] {
		chart.Points = append(chart.Points, domain.ChartPoint{
			Label: label,
			Value: pointValue(sel.KPIID, sel.MetricID, sel.Affiliate, label),
		})
	}
	return chart
}

// pointValue derives a value in [10, 100) from its inputs
func pointValue(parts ...string) float64 {
	h := fnv.New32a()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	v := 10 + float64(h.Sum32()%9000)/100
	return math.Round(v*100) / 100
}
