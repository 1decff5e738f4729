// Package api contains API contract definitions for the asset library service.
// Version v1 represents the current stable API version.
package api

import (
	"assetlib/pkg/contracts/domain"
)

// Asset API Requests

// ToggleFavoriteRequest toggles an asset's membership in the favorites list
type ToggleFavoriteRequest struct {
	ID   string           `json:"id" validate:"required,notblank,max=128"`
	Type domain.AssetType `json:"type" validate:"required,oneof=kpi layout storyboard"`
}

// Asset returns the referenced asset
func (r ToggleFavoriteRequest) Asset() domain.Asset {
	return domain.Asset{ID: r.ID, Type: r.Type}
}

// KPI API Requests

// UpdateKPIRequest is a partial KPI update
type UpdateKPIRequest struct {
	domain.KPIUpdate
}

// Preview API Requests

// OpenPreviewRequest opens the preview modal for a layout
type OpenPreviewRequest struct {
	LayoutID string `json:"layoutId" validate:"required,notblank,max=128"`
}

// UpdatePreviewRequest changes one or more parts of a preview selection.
// Fields are applied in order: kpi, metric, visual, date range, affiliate.
type UpdatePreviewRequest struct {
	KPIID     *string `json:"kpiId,omitempty" validate:"omitempty,min=1"`
	MetricID  *string `json:"metricId,omitempty" validate:"omitempty,min=1"`
	Visual    *string `json:"visual,omitempty" validate:"omitempty,min=1"`
	DateRange *string `json:"dateRange,omitempty" validate:"omitempty,min=1"`
	Affiliate *string `json:"affiliate,omitempty" validate:"omitempty,min=1"`
}

// Library API Requests

// SearchRequest holds the parsed search query parameters
type SearchRequest struct {
	Query        string     `query:"q" validate:"max=256"`
	Tab          domain.Tab `query:"tab" validate:"omitempty,oneof=featured kpi layouts storyboards"`
	IncludeAreas bool       `query:"areas"`
}

// ClosePreviewRequest holds the parsed close reason of a preview
type ClosePreviewRequest struct {
	Reason domain.CloseReason `query:"reason" validate:"omitempty,oneof=close escape"`
}
