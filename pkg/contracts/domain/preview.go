package domain

import "time"

// CloseReason records how a preview modal was dismissed
type CloseReason string

const (
	CloseReasonAction CloseReason = "close"
	CloseReasonEscape CloseReason = "escape"
)

// Valid reports whether r is a known close reason
func (r CloseReason) Valid() bool {
	return r == CloseReasonAction || r == CloseReasonEscape
}

// PreviewSelection is the cascading selection state of a layout preview:
// KPI, then metric and visual of that KPI, plus two independent filters.
type PreviewSelection struct {
	LayoutID  string `json:"layoutId"`
	KPIID     string `json:"kpiId,omitempty"`
	MetricID  string `json:"metricId,omitempty"`
	Visual    string `json:"visual,omitempty"`
	DateRange string `json:"dateRange"`
	Affiliate string `json:"affiliate"`
}

// PreviewOptions are the choices available for the current selection
type PreviewOptions struct {
	KPIs       []KPIOption `json:"kpis"`
	Metrics    []string    `json:"metrics"`
	Visuals    []string    `json:"visuals"`
	DateRanges []string    `json:"dateRanges"`
	Affiliates []string    `json:"affiliates"`
}

// KPIOption is a selectable KPI in the preview modal
type KPIOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PreviewSession is an open preview modal
type PreviewSession struct {
	ID           string           `json:"id"`
	Layout       Layout           `json:"layout"`
	Selection    PreviewSelection `json:"selection"`
	Options      PreviewOptions   `json:"options"`
	ScrollLocked bool             `json:"scrollLocked"`
	OpenedAt     time.Time        `json:"openedAt"`
}

// ChartPoint is one labelled value of a preview chart
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartPreview is the mock chart configuration rendered for a selection
type ChartPreview struct {
	Title     string       `json:"title"`
	Kind      ChartKind    `json:"kind"`
	Visual    string       `json:"visual"`
	KPIID     string       `json:"kpiId"`
	MetricID  string       `json:"metricId"`
	DateRange string       `json:"dateRange"`
	Affiliate string       `json:"affiliate"`
	Points    []ChartPoint `json:"points"`
}
