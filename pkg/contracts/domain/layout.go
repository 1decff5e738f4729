package domain

// Layout represents a multi-page dashboard layout built from KPIs
type Layout struct {
	ID              string   `json:"id" validate:"required"`
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description"`
	NumberOfPages   int      `json:"numberOfPages" validate:"min=0"`
	KPIs            []string `json:"kpis"` // KPI ids used by the layout
	PreviewImageURL string   `json:"previewImageUrl,omitempty"`
	CreatedBy       string   `json:"createdBy"`
	CreatedAt       string   `json:"createdAt"`
	Favorite        bool     `json:"favorite"`
	ShareableLink   string   `json:"shareableLink"`
}

// GetID returns the record id
func (l Layout) GetID() string { return l.ID }

// Clone returns a copy that shares no slices with l
func (l Layout) Clone() Layout {
	c := l
	c.KPIs = cloneStrings(l.KPIs)
	return c
}
