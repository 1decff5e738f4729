package domain

// AccessRequestStatus tracks a storyboard access request
type AccessRequestStatus string

const (
	AccessRequestPending  AccessRequestStatus = "pending"
	AccessRequestApproved AccessRequestStatus = "approved"
	AccessRequestDenied   AccessRequestStatus = "denied"
)

// StoryboardFilters are the filters applied to a storyboard's KPIs.
// All fields are optional.
type StoryboardFilters struct {
	TimeRange string `json:"timeRange,omitempty"`
	Region    string `json:"region,omitempty"`
	Segment   string `json:"segment,omitempty"`
}

// Storyboard represents a narrative built on a set of coupled KPIs
type Storyboard struct {
	ID                   string              `json:"id" validate:"required"`
	Name                 string              `json:"name" validate:"required"`
	Description          string              `json:"description"`
	CoupledKPIs          []string            `json:"coupledKPIs"`
	Filters              StoryboardFilters   `json:"filters"`
	ApplicableAffiliates []string            `json:"applicableAffiliates"`
	CreatedBy            string              `json:"createdBy"`
	CreatedAt            string              `json:"createdAt"`
	HasAccess            bool                `json:"hasAccess"`
	AccessRequestStatus  AccessRequestStatus `json:"accessRequestStatus,omitempty"`
}

// GetID returns the record id
func (s Storyboard) GetID() string { return s.ID }

// Clone returns a copy that shares no slices with s
func (s Storyboard) Clone() Storyboard {
	c := s
	c.CoupledKPIs = cloneStrings(s.CoupledKPIs)
	c.ApplicableAffiliates = cloneStrings(s.ApplicableAffiliates)
	return c
}
