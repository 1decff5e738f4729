package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"assetlib/pkg/contracts/domain"
)

// LibraryService assembles the library screen: its tabs, the three home
// sections and the contents of each tab.
type LibraryService struct {
	assets      *AssetService
	kpis        *KpiService
	layouts     *LayoutService
	storyboards *StoryboardService
	logger      *slog.Logger
}

// NewLibraryService creates a library service
func NewLibraryService(assets *AssetService, kpis *KpiService, layouts *LayoutService, storyboards *StoryboardService, logger *slog.Logger) *LibraryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LibraryService{
		assets:      assets,
		kpis:        kpis,
		layouts:     layouts,
		storyboards: storyboards,
		logger:      logger.With(slog.String("component", "library_service")),
	}
}

// Tabs returns the library tabs in display order
func (s *LibraryService) Tabs() []domain.TabInfo {
	return append([]domain.TabInfo(nil), domain.Tabs...)
}

// Home loads the featured, trending and favorites sections independently.
// A section that fails carries its failure message; the others still load.
func (s *LibraryService) Home(ctx context.Context) domain.LibraryHome {
	sections := make([]domain.Section, len(domain.SectionNames))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range domain.SectionNames {
		g.Go(func() error {
			sections[i] = s.loadSection(gctx, name)
			return nil
		})
	}
	_ = g.Wait()

	return domain.LibraryHome{
		Featured:  sections[0],
		Trending:  sections[1],
		Favorites: sections[2],
	}
}

// LoadSection loads a single home section. It backs the retry action of a
// failed section and runs the load exactly once.
func (s *LibraryService) LoadSection(ctx context.Context, name domain.SectionName) (domain.Section, error) {
	if !name.Valid() {
		return domain.Section{}, fmt.Errorf("%w: %s", ErrInvalidSection, name)
	}
	return s.loadSection(ctx, name), nil
}

func (s *LibraryService) loadSection(ctx context.Context, name domain.SectionName) domain.Section {
	section := domain.Section{
		Name:     name,
		Title:    name.Title(),
		Subtitle: name.Subtitle(),
		Items:    []domain.AssetItem{},
	}

	items, err := s.assets.GetSection(ctx, name)
	if err != nil {
		s.logger.ErrorContext(ctx, "Section load failed",
			slog.String("section", string(name)),
			slog.String("error", err.Error()))
		section.Error = name.FailureMessage()
		return section
	}

	section.Items = items
	return section
}

// TabContents returns the body of a tab. Non-blank queries filter the KPI,
// Layout and Storyboard tabs by name; the featured tab always shows the home
// sections.
func (s *LibraryService) TabContents(ctx context.Context, tab domain.Tab, query string) (domain.TabContents, error) {
	contents := domain.TabContents{Tab: tab, Query: query}
	q := strings.TrimSpace(query)
	filter := q != ""

	switch tab {
	case domain.TabFeatured:
		home := s.Home(ctx)
		contents.Home = &home
	case domain.TabKPI:
		kpis := s.kpis.GetAll(ctx)
		if filter {
			kpis = s.kpis.SearchByName(ctx, q)
		}
		contents.KPIs = s.kpis.Cards(kpis)
	case domain.TabLayouts:
		contents.Layouts = s.layouts.GetAll(ctx)
		if filter {
			contents.Layouts = s.layouts.SearchByName(ctx, q)
		}
	case domain.TabStoryboards:
		contents.Storyboards = s.storyboards.GetAll(ctx)
		if filter {
			contents.Storyboards = s.storyboards.SearchByName(ctx, q)
		}
	default:
		return domain.TabContents{}, fmt.Errorf("%w: %s", ErrInvalidTab, tab)
	}
	return contents, nil
}
