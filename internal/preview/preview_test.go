package preview

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"assetlib/internal/infrastructure"
	"assetlib/internal/services"
	"assetlib/internal/shared/testutil"
	"assetlib/pkg/contracts/domain"
)

func strPtr(s string) *string { return &s }

func testKPIs() []domain.KPI {
	return []domain.KPI{
		{
			ID:                     "k1",
			Name:                   "First",
			MetricIDs:              []string{"m1a", "m1b"},
			VisualsAvailable:       []string{"Line Chart", "Bar Chart"},
			AffiliateApplicability: []string{"All"},
		},
		{
			ID:                     "k2",
			Name:                   "Second",
			MetricIDs:              []string{"m2a"},
			VisualsAvailable:       []string{"Pie Chart"},
			AffiliateApplicability: []string{"subsidary1", "subsidary2"},
		},
	}
}

func testLayout() domain.Layout {
	return domain.Layout{ID: "l1", Name: "Layout", KPIs: []string{"k1", "k2"}}
}

func TestOpen_SelectsFirstKPI(t *testing.T) {
	s := Open(testLayout(), testKPIs())

	assert.Equal(t, domain.PreviewSelection{
		LayoutID:  "l1",
		KPIID:     "k1",
		MetricID:  "m1a",
		Visual:    "Line Chart",
		DateRange: "Last 7 days",
		Affiliate: "All",
	}, s.Current())

	opts := s.Options()
	assert.Equal(t, []domain.KPIOption{{ID: "k1", Name: "First"}, {ID: "k2", Name: "Second"}}, opts.KPIs)
	assert.Equal(t, []string{"m1a", "m1b"}, opts.Metrics)
	assert.Equal(t, []string{"Line Chart", "Bar Chart"}, opts.Visuals)
	assert.Equal(t, DateRanges, opts.DateRanges)
	assert.Equal(t, []string{"All", "subsidary1", "subsidary2"}, opts.Affiliates)
}

func TestOpen_WithoutKPIs(t *testing.T) {
	s := Open(domain.Layout{ID: "empty", Name: "Empty"}, nil)

	sel := s.Current()
	assert.Empty(t, sel.KPIID)
	assert.Empty(t, sel.MetricID)
	assert.Empty(t, sel.Visual)
	assert.Equal(t, AllAffiliates, sel.Affiliate)

	assert.ErrorIs(t, s.SelectMetric("m1a"), ErrInvalidSelection)
	assert.ErrorIs(t, s.SelectVisual("Line Chart"), ErrInvalidSelection)

	chart := s.Chart()
	assert.Equal(t, "Empty", chart.Title)
	assert.Equal(t, domain.ChartKindUnknown, chart.Kind)
	assert.Empty(t, chart.Points)
}

func TestSelectKPI_ResetsMetricAndVisual(t *testing.T) {
	s := Open(testLayout(), testKPIs())
	require.NoError(t, s.SelectMetric("m1b"))
	require.NoError(t, s.SelectVisual("Bar Chart"))
	require.NoError(t, s.SetDateRange("Year to date"))
	require.NoError(t, s.SetAffiliate("subsidary2"))

	require.NoError(t, s.SelectKPI("k2"))

	sel := s.Current()
	assert.Equal(t, "k2", sel.KPIID)
	assert.Equal(t, "m2a", sel.MetricID)
	assert.Equal(t, "Pie Chart", sel.Visual)
	assert.Equal(t, "Year to date", sel.DateRange, "filters survive a KPI change")
	assert.Equal(t, "subsidary2", sel.Affiliate)

	require.NoError(t, s.SelectKPI("k1"))
	assert.Equal(t, "m1a", s.Current().MetricID)
	assert.Equal(t, "Line Chart", s.Current().Visual)
}

func TestSelection_RejectsForeignValues(t *testing.T) {
	s := Open(testLayout(), testKPIs())
	before := s.Current()

	tests := []struct {
		name string
		err  error
	}{
		{"kpi outside layout", s.SelectKPI("revenue_growth")},
		{"metric of another kpi", s.SelectMetric("m2a")},
		{"visual of another kpi", s.SelectVisual("Pie Chart")},
		{"unknown date range", s.SetDateRange("Last decade")},
		{"unknown affiliate", s.SetAffiliate("subsidary9")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, ErrInvalidSelection)
		})
	}
	assert.Equal(t, before, s.Current())
}

func TestSelection_Apply(t *testing.T) {
	t.Run("applies kpi before metric", func(t *testing.T) {
		s := Open(testLayout(), testKPIs())

		err := s.Apply(Change{KPIID: strPtr("k2"), MetricID: strPtr("m2a"), Affiliate: strPtr("subsidary1")})
		require.NoError(t, err)
		assert.Equal(t, "k2", s.Current().KPIID)
		assert.Equal(t, "subsidary1", s.Current().Affiliate)
	})

	t.Run("is all or nothing", func(t *testing.T) {
		s := Open(testLayout(), testKPIs())
		before := s.Current()

		err := s.Apply(Change{KPIID: strPtr("k2"), Visual: strPtr("Line Chart")})
		assert.ErrorIs(t, err, ErrInvalidSelection)
		assert.Equal(t, before, s.Current())
	})
}

func TestChart(t *testing.T) {
	s := Open(testLayout(), testKPIs())

	chart := s.Chart()
	assert.Equal(t, "First - m1a", chart.Title)
	assert.Equal(t, domain.ChartKindLine, chart.Kind)
	require.Len(t, chart.Points, 7)
	for _, p := range chart.Points {
		assert.GreaterOrEqual(t, p.Value, 10.0)
		assert.Less(t, p.Value, 100.0)
	}
	assert.Equal(t, chart, s.Chart(), "same selection gives the same chart")

	require.NoError(t, s.SetDateRange("Year to date"))
	require.NoError(t, s.SelectVisual("Bar Chart"))
	chart = s.Chart()
	assert.Equal(t, domain.ChartKindBar, chart.Kind)
	assert.Equal(t, []string{"Q1", "Q2", "Q3", "Q4"},
		[]string{chart.Points[0].Label, chart.Points[1].Label, chart.Points[2].Label, chart.Points[3].Label})
}

func newTestManager(t *testing.T, size int) *Manager {
	return newRecordedManager(t, size, nil)
}

func newRecordedManager(t *testing.T, size int, recorder SessionRecorder) *Manager {
	t.Helper()
	cat, _ := testutil.NewCatalog(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	layouts := services.NewLayoutService(cat.Layouts, nil, logger)
	kpis := services.NewKpiService(cat.KPIs, nil, logger)

	m, err := NewManager(size, layouts, kpis, recorder, logger)
	require.NoError(t, err)
	return m
}

func TestManager_Lifecycle(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, 8)

	opened, err := m.Open(ctx, "sales_dashboard")
	require.NoError(t, err)
	assert.NotEmpty(t, opened.ID)
	assert.True(t, opened.ScrollLocked)
	assert.Equal(t, "revenue_growth", opened.Selection.KPIID)
	assert.Equal(t, "total_revenue", opened.Selection.MetricID)
	assert.Equal(t, "Line Chart", opened.Selection.Visual)

	updated, err := m.Update(ctx, opened.ID, Change{KPIID: strPtr("market_share")})
	require.NoError(t, err)
	assert.Equal(t, "sales_volume", updated.Selection.MetricID)
	assert.Equal(t, "Pie Chart", updated.Selection.Visual)

	chart, err := m.Chart(ctx, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ChartKindPie, chart.Kind)

	got, err := m.Get(ctx, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Selection, got.Selection)

	closed, err := m.Close(ctx, opened.ID, domain.CloseReasonEscape)
	require.NoError(t, err)
	assert.False(t, closed.ScrollLocked)
	assert.Equal(t, 0, m.Len())

	_, err = m.Get(ctx, opened.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	reopened, err := m.Open(ctx, "sales_dashboard")
	require.NoError(t, err)
	assert.NotEqual(t, opened.ID, reopened.ID)
	assert.Equal(t, "revenue_growth", reopened.Selection.KPIID, "selections do not persist across opens")
}

func TestManager_Errors(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, 8)

	_, err := m.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrLayoutNotFound)

	_, err = m.Update(ctx, "missing", Change{})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = m.Chart(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	opened, err := m.Open(ctx, "operations_overview")
	require.NoError(t, err)

	_, err = m.Close(ctx, opened.ID, "click-outside")
	assert.ErrorIs(t, err, ErrInvalidCloseReason)
	assert.Equal(t, 1, m.Len())

	_, err = m.Close(ctx, opened.ID, "")
	require.NoError(t, err)
	_, err = m.Close(ctx, opened.ID, domain.CloseReasonAction)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = NewManager(0, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestManager_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, 2)

	first, err := m.Open(ctx, "sales_dashboard")
	require.NoError(t, err)
	second, err := m.Open(ctx, "operations_overview")
	require.NoError(t, err)

	_, err = m.Get(ctx, first.ID)
	require.NoError(t, err)

	_, err = m.Open(ctx, "sales_dashboard")
	require.NoError(t, err)

	assert.Equal(t, 2, m.Len())
	_, err = m.Get(ctx, second.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(ctx, first.ID)
	assert.NoError(t, err)
}

type closeLog struct {
	opened int
	closed []string
}

func (c *closeLog) RecordPreviewOpened(context.Context) { c.opened++ }
func (c *closeLog) RecordPreviewClosed(_ context.Context, reason string) {
	c.closed = append(c.closed, reason)
}

func TestManager_RecordsLifecycle(t *testing.T) {
	ctx := context.Background()
	rec := &closeLog{}
	m := newRecordedManager(t, 1, rec)

	first, err := m.Open(ctx, "sales_dashboard")
	require.NoError(t, err)
	second, err := m.Open(ctx, "operations_overview")
	require.NoError(t, err)
	assert.Equal(t, []string{ReasonEvicted}, rec.closed)

	_, err = m.Close(ctx, second.ID, domain.CloseReasonEscape)
	require.NoError(t, err)
	_, err = m.Close(ctx, first.ID, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.Equal(t, 2, rec.opened)
	assert.Equal(t, []string{ReasonEvicted, "escape"}, rec.closed, "close is recorded once")
}

func previewCounters(t *testing.T, reader *sdkmetric.ManualReader) (open, total int64) {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			data, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range data.DataPoints {
				switch m.Name {
				case "library_preview_sessions_open":
					open += dp.Value
				case "library_preview_sessions_total":
					total += dp.Value
				}
			}
		}
	}
	return open, total
}

func TestManager_OpenGaugeTracksEvictions(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := infrastructure.CreateBusinessMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m := newRecordedManager(t, 1, metrics)

	var last domain.PreviewSession
	for range 5 {
		last, err = m.Open(ctx, "sales_dashboard")
		require.NoError(t, err)
	}

	open, total := previewCounters(t, reader)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, int64(1), open)
	assert.Equal(t, int64(5), total)

	_, err = m.Close(ctx, last.ID, domain.CloseReasonAction)
	require.NoError(t, err)

	open, total = previewCounters(t, reader)
	assert.Equal(t, int64(0), open)
	assert.Equal(t, int64(5), total)
}
