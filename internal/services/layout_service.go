package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"assetlib/internal/catalog"
	"assetlib/pkg/contracts/domain"
	"assetlib/pkg/contracts/events"
)

// LayoutService provides access to the Layout collection
type LayoutService struct {
	layouts  *catalog.Collection[domain.Layout]
	notifier Notifier
	logger   *slog.Logger
}

// NewLayoutService creates a Layout service over the given collection
func NewLayoutService(layouts *catalog.Collection[domain.Layout], notifier Notifier, logger *slog.Logger) *LayoutService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LayoutService{
		layouts:  layouts,
		notifier: notifierOrNop(notifier),
		logger:   logger.With(slog.String("component", "layout_service")),
	}
}

// GetAll returns every layout in insertion order
func (s *LayoutService) GetAll(ctx context.Context) []domain.Layout {
	return s.layouts.All()
}

// GetByID returns the layout with the given id
func (s *LayoutService) GetByID(ctx context.Context, id string) (domain.Layout, bool) {
	return s.layouts.Get(id)
}

// SearchByName returns the layouts whose name contains query, ignoring case
func (s *LayoutService) SearchByName(ctx context.Context, query string) []domain.Layout {
	q := strings.ToLower(query)
	return s.layouts.Filter(func(l domain.Layout) bool {
		return strings.Contains(strings.ToLower(l.Name), q)
	})
}

// ToggleFavorite flips the favorite flag of the layout with the given id and
// returns the whole collection. An unknown id leaves the collection unchanged.
// This flag is independent of the favorites list kept by AssetService.
func (s *LayoutService) ToggleFavorite(ctx context.Context, id string) ([]domain.Layout, error) {
	layout, changed, _, err := s.layouts.Update(ctx, id, func(l *domain.Layout) bool {
		l.Favorite = !l.Favorite
		return true
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Layout favorite toggle failed",
			slog.String("layout_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("toggle layout favorite %s: %w", id, err)
	}

	if changed {
		s.logger.InfoContext(ctx, "Layout favorite toggled",
			slog.String("layout_id", id),
			slog.Bool("favorite", layout.Favorite))
		publish(s.notifier, events.MessageTypeLayoutFavorite, events.LayoutFavorite{
			ID:       layout.ID,
			Favorite: layout.Favorite,
		})
	}
	return s.layouts.All(), nil
}
