// Package preview implements the layout preview modal: a cascading selection
// of KPI, metric and visualization with two independent filters, and the
// manager that keeps open previews.
package preview

import (
	"errors"
	"fmt"
	"slices"

	"assetlib/pkg/contracts/domain"
)

var (
	ErrLayoutNotFound     = errors.New("layout not found")
	ErrSessionNotFound    = errors.New("preview session not found")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrInvalidCloseReason = errors.New("invalid close reason")
)

// AllAffiliates is the affiliate filter that applies no restriction
const AllAffiliates = "All"

// DateRanges lists the date range filter options; the first is the default
var DateRanges = []string{"Last 7 days", "Last 30 days", "Last 90 days", "Year to date"}

// Change is a partial selection change. Set fields are applied in order:
// KPI, metric, visual, date range, affiliate.
type Change struct {
	KPIID     *string
	MetricID  *string
	Visual    *string
	DateRange *string
	Affiliate *string
}

// Selection is the state of one open preview. It is not safe for
// concurrent use; Manager serialises access.
type Selection struct {
	layout  domain.Layout
	kpis    []domain.KPI
	current domain.PreviewSelection
}

// Open starts a selection for layout. kpis are the layout's KPIs that
// resolved, in layout order; the first one is selected along with its first
// metric and first visual.
func Open(layout domain.Layout, kpis []domain.KPI) *Selection {
	s := &Selection{
		layout: layout.Clone(),
		kpis:   make([]domain.KPI, 0, len(kpis)),
		current: domain.PreviewSelection{
			LayoutID:  layout.ID,
			DateRange: DateRanges[0],
			Affiliate: AllAffiliates,
		},
	}
	for _, k := range kpis {
		s.kpis = append(s.kpis, k.Clone())
	}
	if len(s.kpis) > 0 {
		s.choose(s.kpis[0])
	}
	return s
}

// Layout returns the previewed layout
func (s *Selection) Layout() domain.Layout { return s.layout.Clone() }

// Current returns the current selection
func (s *Selection) Current() domain.PreviewSelection { return s.current }

// Options returns the choices available for the current selection
func (s *Selection) Options() domain.PreviewOptions {
	opts := domain.PreviewOptions{
		KPIs:       make([]domain.KPIOption, 0, len(s.kpis)),
		Metrics:    []string{},
		Visuals:    []string{},
		DateRanges: slices.Clone(DateRanges),
		Affiliates: s.affiliates(),
	}
	for _, k := range s.kpis {
		opts.KPIs = append(opts.KPIs, domain.KPIOption{ID: k.ID, Name: k.Name})
	}
	if k, ok := s.selectedKPI(); ok {
		opts.Metrics = append(opts.Metrics, k.MetricIDs...)
		opts.Visuals = append(opts.Visuals, k.VisualsAvailable...)
	}
	return opts
}

// SelectKPI switches to another KPI of the layout. Metric and visual reset to
// the new KPI's first values; the filters are kept.
func (s *Selection) SelectKPI(id string) error {
	k, ok := s.kpi(id)
	if !ok {
		return fmt.Errorf("%w: kpi %q is not part of layout %s", ErrInvalidSelection, id, s.layout.ID)
	}
	s.choose(k)
	return nil
}

// SelectMetric picks one of the selected KPI's metrics
func (s *Selection) SelectMetric(id string) error {
	k, ok := s.selectedKPI()
	if !ok || !slices.Contains(k.MetricIDs, id) {
		return fmt.Errorf("%w: metric %q", ErrInvalidSelection, id)
	}
	s.current.MetricID = id
	return nil
}

// SelectVisual picks one of the selected KPI's visualizations
func (s *Selection) SelectVisual(visual string) error {
	k, ok := s.selectedKPI()
	if !ok || !slices.Contains(k.VisualsAvailable, visual) {
		return fmt.Errorf("%w: visual %q", ErrInvalidSelection, visual)
	}
	s.current.Visual = visual
	return nil
}

// SetDateRange sets the date range filter
func (s *Selection) SetDateRange(r string) error {
	if !slices.Contains(DateRanges, r) {
		return fmt.Errorf("%w: date range %q", ErrInvalidSelection, r)
	}
	s.current.DateRange = r
	return nil
}

// SetAffiliate sets the affiliate filter
func (s *Selection) SetAffiliate(a string) error {
	if !slices.Contains(s.affiliates(), a) {
		return fmt.Errorf("%w: affiliate %q", ErrInvalidSelection, a)
	}
	s.current.Affiliate = a
	return nil
}

// Apply applies every set field of c. Either all of them take effect or,
// on the first invalid value, none do.
func (s *Selection) Apply(c Change) error {
	next := *s
	steps := []struct {
		value *string
		set   func(string) error
	}{
		{c.KPIID, next.SelectKPI},
		{c.MetricID, next.SelectMetric},
		{c.Visual, next.SelectVisual},
		{c.DateRange, next.SetDateRange},
		{c.Affiliate, next.SetAffiliate},
	}
	for _, step := range steps {
		if step.value == nil {
			continue
		}
		if err := step.set(*step.value); err != nil {
			return err
		}
	}
	s.current = next.current
	return nil
}

func (s *Selection) choose(k domain.KPI) {
	s.current.KPIID = k.ID
	s.current.MetricID = k.FirstMetric()
	s.current.Visual = k.FirstVisual()
}

func (s *Selection) kpi(id string) (domain.KPI, bool) {
	for _, k := range s.kpis {
		if k.ID == id {
			return k, true
		}
	}
	return domain.KPI{}, false
}

func (s *Selection) selectedKPI() (domain.KPI, bool) {
	if s.current.KPIID == "" {
		return domain.KPI{}, false
	}
	return s.kpi(s.current.KPIID)
}

// affiliates is "All" followed by every affiliate the layout's KPIs apply
// to, in first-seen order.
func (s *Selection) affiliates() []string {
	out := []string{AllAffiliates}
	for _, k := range s.kpis {
		for _, a := range k.AffiliateApplicability {
			if !slices.Contains(out, a) {
				out = append(out, a)
			}
		}
	}
	return out
}
