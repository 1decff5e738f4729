package services

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"assetlib/internal/catalog"
	"assetlib/internal/shared/testutil"
)

// MockNotifier is a mock for the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Broadcast(messageType string, data interface{}) {
	m.Called(messageType, data)
}

type testServices struct {
	catalog     *catalog.Catalog
	store       *testutil.FaultyStore
	notifier    *MockNotifier
	kpis        *KpiService
	layouts     *LayoutService
	storyboards *StoryboardService
	assets      *AssetService
	library     *LibraryService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	cat, store := testutil.NewCatalog(t)
	notifier := &MockNotifier{}
	notifier.On("Broadcast", mock.Anything, mock.Anything).Maybe()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ts := &testServices{catalog: cat, store: store, notifier: notifier}
	ts.kpis = NewKpiService(cat.KPIs, notifier, logger)
	ts.layouts = NewLayoutService(cat.Layouts, notifier, logger)
	ts.storyboards = NewStoryboardService(cat.Storyboards, notifier, logger)
	ts.assets = NewAssetService(ts.kpis, ts.layouts, ts.storyboards, cat.State, notifier, logger)
	ts.library = NewLibraryService(ts.assets, ts.kpis, ts.layouts, ts.storyboards, logger)
	return ts
}
