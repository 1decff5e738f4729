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

// StoryboardService provides access to the Storyboard collection
type StoryboardService struct {
	storyboards *catalog.Collection[domain.Storyboard]
	notifier    Notifier
	logger      *slog.Logger
}

// NewStoryboardService creates a Storyboard service over the given collection
func NewStoryboardService(storyboards *catalog.Collection[domain.Storyboard], notifier Notifier, logger *slog.Logger) *StoryboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoryboardService{
		storyboards: storyboards,
		notifier:    notifierOrNop(notifier),
		logger:      logger.With(slog.String("component", "storyboard_service")),
	}
}

// GetAll returns every storyboard in insertion order
func (s *StoryboardService) GetAll(ctx context.Context) []domain.Storyboard {
	return s.storyboards.All()
}

// GetByID returns the storyboard with the given id
func (s *StoryboardService) GetByID(ctx context.Context, id string) (domain.Storyboard, bool) {
	return s.storyboards.Get(id)
}

// SearchByName returns the storyboards whose name contains query, ignoring case
func (s *StoryboardService) SearchByName(ctx context.Context, query string) []domain.Storyboard {
	q := strings.ToLower(query)
	return s.storyboards.Filter(func(sb domain.Storyboard) bool {
		return strings.Contains(strings.ToLower(sb.Name), q)
	})
}

// RequestAccess marks an access request as pending when the user has no
// access, whatever the previous request status was. It is a no-op when the
// user already has access. changed reports whether the record was modified.
func (s *StoryboardService) RequestAccess(ctx context.Context, id string) (sb domain.Storyboard, changed bool, err error) {
	sb, changed, found, err := s.storyboards.Update(ctx, id, func(st *domain.Storyboard) bool {
		if st.HasAccess || st.AccessRequestStatus == domain.AccessRequestPending {
			return false
		}
		st.AccessRequestStatus = domain.AccessRequestPending
		return true
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Storyboard access request failed",
			slog.String("storyboard_id", id),
			slog.String("error", err.Error()))
		return domain.Storyboard{}, false, fmt.Errorf("request storyboard access %s: %w", id, err)
	}
	if !found {
		return domain.Storyboard{}, false, fmt.Errorf("%w: %s", ErrStoryboardNotFound, id)
	}

	if changed {
		s.logger.InfoContext(ctx, "Storyboard access requested", slog.String("storyboard_id", id))
		publish(s.notifier, events.MessageTypeStoryboardAccess, events.StoryboardAccess{
			ID:                  sb.ID,
			HasAccess:           sb.HasAccess,
			AccessRequestStatus: sb.AccessRequestStatus,
		})
	}
	return sb, changed, nil
}
