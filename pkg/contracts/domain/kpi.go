package domain

import "strings"

// KPI represents a key performance indicator definition in the library
type KPI struct {
	ID                     string   `json:"id" validate:"required"`
	Name                   string   `json:"name" validate:"required"`
	BusinessQuestions      []string `json:"businessQuestions"`
	MetricIDs              []string `json:"metricIds"`
	Description            string   `json:"description"`
	Calculation            string   `json:"calculation"`
	VisualsAvailable       []string `json:"visualsAvailable"`
	AffiliateApplicability []string `json:"affiliateApplicability"`
	Areas                  []string `json:"areas"`
	Requested              *bool    `json:"requested,omitempty"`
	Owned                  *bool    `json:"owned,omitempty"`
}

// GetID returns the record id
func (k KPI) GetID() string { return k.ID }

// Clone returns a copy that shares no slices with k
func (k KPI) Clone() KPI {
	c := k
	c.BusinessQuestions = cloneStrings(k.BusinessQuestions)
	c.MetricIDs = cloneStrings(k.MetricIDs)
	c.VisualsAvailable = cloneStrings(k.VisualsAvailable)
	c.AffiliateApplicability = cloneStrings(k.AffiliateApplicability)
	c.Areas = cloneStrings(k.Areas)
	if k.Requested != nil {
		v := *k.Requested
		c.Requested = &v
	}
	if k.Owned != nil {
		v := *k.Owned
		c.Owned = &v
	}
	return c
}

// IsRequested reports whether access to the KPI has been requested
func (k KPI) IsRequested() bool { return k.Requested != nil && *k.Requested }

// IsOwned reports whether the current user owns the KPI
func (k KPI) IsOwned() bool { return k.Owned != nil && *k.Owned }

// FirstMetric returns the first metric id, or "" when the KPI has none
func (k KPI) FirstMetric() string {
	if len(k.MetricIDs) == 0 {
		return ""
	}
	return k.MetricIDs[0]
}

// FirstVisual returns the first available visualization, or "" when none
func (k KPI) FirstVisual() string {
	if len(k.VisualsAvailable) == 0 {
		return ""
	}
	return k.VisualsAvailable[0]
}

// KPIUpdate is a partial update; nil fields are left untouched
type KPIUpdate struct {
	Name                   *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	BusinessQuestions      []string `json:"businessQuestions,omitempty"`
	MetricIDs              []string `json:"metricIds,omitempty"`
	Description            *string  `json:"description,omitempty"`
	Calculation            *string  `json:"calculation,omitempty"`
	VisualsAvailable       []string `json:"visualsAvailable,omitempty"`
	AffiliateApplicability []string `json:"affiliateApplicability,omitempty"`
	Areas                  []string `json:"areas,omitempty"`
	Requested              *bool    `json:"requested,omitempty"`
	Owned                  *bool    `json:"owned,omitempty"`
}

// Apply merges the update into k and returns the result
func (u KPIUpdate) Apply(k KPI) KPI {
	if u.Name != nil {
		k.Name = *u.Name
	}
	if u.BusinessQuestions != nil {
		k.BusinessQuestions = cloneStrings(u.BusinessQuestions)
	}
	if u.MetricIDs != nil {
		k.MetricIDs = cloneStrings(u.MetricIDs)
	}
	if u.Description != nil {
		k.Description = *u.Description
	}
	if u.Calculation != nil {
		k.Calculation = *u.Calculation
	}
	if u.VisualsAvailable != nil {
		k.VisualsAvailable = cloneStrings(u.VisualsAvailable)
	}
	if u.AffiliateApplicability != nil {
		k.AffiliateApplicability = cloneStrings(u.AffiliateApplicability)
	}
	if u.Areas != nil {
		k.Areas = cloneStrings(u.Areas)
	}
	if u.Requested != nil {
		v := *u.Requested
		k.Requested = &v
	}
	if u.Owned != nil {
		v := *u.Owned
		k.Owned = &v
	}
	return k
}

// ChartKind is the chart family a visualization label renders as
type ChartKind string

const (
	ChartKindBar     ChartKind = "bar"
	ChartKindPie     ChartKind = "pie"
	ChartKindLine    ChartKind = "line"
	ChartKindUnknown ChartKind = "unknown"
)

// VisualKind maps a visualization label such as "Trend Line" to its chart family
func VisualKind(visual string) ChartKind {
	switch strings.ToLower(strings.TrimSpace(visual)) {
	case "bar chart":
		return ChartKindBar
	case "pie chart":
		return ChartKindPie
	case "line chart", "trend line":
		return ChartKindLine
	default:
		return ChartKindUnknown
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append(make([]string, 0, len(in)), in...)
}
