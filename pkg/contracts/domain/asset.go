package domain

import "strings"

// AssetType identifies which collection an asset reference points into
type AssetType string

const (
	AssetTypeKPI        AssetType = "kpi"
	AssetTypeLayout     AssetType = "layout"
	AssetTypeStoryboard AssetType = "storyboard"
)

// AssetTypes lists every asset type in search order
var AssetTypes = []AssetType{AssetTypeKPI, AssetTypeLayout, AssetTypeStoryboard}

// Valid reports whether t is a known asset type
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeKPI, AssetTypeLayout, AssetTypeStoryboard:
		return true
	}
	return false
}

// ParseAssetType converts a path or query value into an AssetType
func ParseAssetType(s string) (AssetType, bool) {
	t := AssetType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Asset is a weak (id, type) reference to a KPI, Layout or Storyboard.
// It does not own the record it points to.
type Asset struct {
	ID   string    `json:"id" validate:"required"`
	Type AssetType `json:"type" validate:"required,oneof=kpi layout storyboard"`
}

// Equal compares references by (id, type)
func (a Asset) Equal(other Asset) bool {
	return a.ID == other.ID && a.Type == other.Type
}

// AssetState holds the three ordered reference lists behind the home sections
type AssetState struct {
	Featured  []Asset `json:"featured"`
	Trending  []Asset `json:"trending"`
	Favorites []Asset `json:"favorites"`
}

// Clone returns a deep copy of the state
func (s AssetState) Clone() AssetState {
	return AssetState{
		Featured:  append([]Asset{}, s.Featured...),
		Trending:  append([]Asset{}, s.Trending...),
		Favorites: append([]Asset{}, s.Favorites...),
	}
}

// AssetItem is a resolved asset: the shared reference, the fields every card
// shows, and exactly one populated variant matching Type.
type AssetItem struct {
	Asset
	Name        string      `json:"name"`
	Description string      `json:"description"`
	KPI         *KPI        `json:"kpi,omitempty"`
	Layout      *Layout     `json:"layout,omitempty"`
	Storyboard  *Storyboard `json:"storyboard,omitempty"`
}

// NewKPIItem wraps a KPI as an AssetItem
func NewKPIItem(k KPI) AssetItem {
	return AssetItem{
		Asset:       Asset{ID: k.ID, Type: AssetTypeKPI},
		Name:        k.Name,
		Description: k.Description,
		KPI:         &k,
	}
}

// NewLayoutItem wraps a Layout as an AssetItem
func NewLayoutItem(l Layout) AssetItem {
	return AssetItem{
		Asset:       Asset{ID: l.ID, Type: AssetTypeLayout},
		Name:        l.Name,
		Description: l.Description,
		Layout:      &l,
	}
}

// NewStoryboardItem wraps a Storyboard as an AssetItem
func NewStoryboardItem(s Storyboard) AssetItem {
	return AssetItem{
		Asset:       Asset{ID: s.ID, Type: AssetTypeStoryboard},
		Name:        s.Name,
		Description: s.Description,
		Storyboard:  &s,
	}
}
