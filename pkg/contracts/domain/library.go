package domain

// Tab identifies a tab on the library screen
type Tab string

const (
	TabFeatured    Tab = "featured"
	TabKPI         Tab = "kpi"
	TabLayouts     Tab = "layouts"
	TabStoryboards Tab = "storyboards"
)

// TabInfo is a tab as presented to clients
type TabInfo struct {
	ID    Tab    `json:"id"`
	Label string `json:"label"`
}

// Tabs lists the library tabs in display order
var Tabs = []TabInfo{
	{ID: TabFeatured, Label: "Featured"},
	{ID: TabKPI, Label: "KPI"},
	{ID: TabLayouts, Label: "Layouts"},
	{ID: TabStoryboards, Label: "Storyboards"},
}

// Valid reports whether t is a known tab
func (t Tab) Valid() bool {
	switch t {
	case TabFeatured, TabKPI, TabLayouts, TabStoryboards:
		return true
	}
	return false
}

// AssetType returns the asset type a tab is scoped to.
// The featured tab spans every type and returns ok=false.
func (t Tab) AssetType() (AssetType, bool) {
	switch t {
	case TabKPI:
		return AssetTypeKPI, true
	case TabLayouts:
		return AssetTypeLayout, true
	case TabStoryboards:
		return AssetTypeStoryboard, true
	}
	return "", false
}

// SectionName identifies one of the home sections
type SectionName string

const (
	SectionFeatured  SectionName = "featured"
	SectionTrending  SectionName = "trending"
	SectionFavorites SectionName = "favorites"
)

// SectionNames lists the home sections in display order
var SectionNames = []SectionName{SectionFeatured, SectionTrending, SectionFavorites}

// Valid reports whether n is a known section
func (n SectionName) Valid() bool {
	switch n {
	case SectionFeatured, SectionTrending, SectionFavorites:
		return true
	}
	return false
}

// Title returns the section heading
func (n SectionName) Title() string {
	switch n {
	case SectionFeatured:
		return "Featured"
	case SectionTrending:
		return "Trending"
	case SectionFavorites:
		return "Favorites"
	}
	return ""
}

// Subtitle returns the line shown under the section heading
func (n SectionName) Subtitle() string {
	switch n {
	case SectionFeatured:
		return "Curated top picks from this week"
	case SectionTrending:
		return "Most popular by community"
	case SectionFavorites:
		return "Your saved items"
	}
	return ""
}

// FailureMessage is the fixed user-facing message shown when a section fails to load
func (n SectionName) FailureMessage() string {
	switch n {
	case SectionFeatured:
		return "Failed to load featured items"
	case SectionTrending:
		return "Failed to load trending items"
	case SectionFavorites:
		return "Failed to load favorite items"
	}
	return "Failed to load items"
}

// Section is one home section: its items, or a sticky error message
type Section struct {
	Name     SectionName `json:"name"`
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle"`
	Items    []AssetItem `json:"items"`
	Error    string      `json:"error,omitempty"`
}

// LibraryHome groups the three home sections
type LibraryHome struct {
	Featured  Section `json:"featured"`
	Trending  Section `json:"trending"`
	Favorites Section `json:"favorites"`
}

// KPICard is the card view of a KPI
type KPICard struct {
	KPI
	ShortDescription string      `json:"shortDescription"`
	VisualKinds      []ChartKind `json:"visualKinds"`
	Requestable      bool        `json:"requestable"`
}

// TabContents is the body of a tab for a given query
type TabContents struct {
	Tab         Tab          `json:"tab"`
	Query       string       `json:"query,omitempty"`
	Home        *LibraryHome `json:"home,omitempty"`
	KPIs        []KPICard    `json:"kpis,omitempty"`
	Layouts     []Layout     `json:"layouts,omitempty"`
	Storyboards []Storyboard `json:"storyboards,omitempty"`
}

// SearchResults is the result of a tab-scoped search
type SearchResults struct {
	Query string      `json:"query"`
	Tab   Tab         `json:"tab"`
	Count int         `json:"count"`
	Items []AssetItem `json:"items"`
}

// CatalogSnapshot is a point-in-time copy of every collection
type CatalogSnapshot struct {
	KPIs        []KPI        `json:"kpis"`
	Layouts     []Layout     `json:"layouts"`
	Storyboards []Storyboard `json:"storyboards"`
}
