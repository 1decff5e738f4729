package services

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"unicode/utf8"

	"assetlib/internal/catalog"
	"assetlib/pkg/contracts/domain"
	"assetlib/pkg/contracts/events"
)

// DescriptionLimit is the number of characters a card description keeps
const DescriptionLimit = 100

// KpiService provides access to the KPI collection
type KpiService struct {
	kpis     *catalog.Collection[domain.KPI]
	notifier Notifier
	logger   *slog.Logger
}

// NewKpiService creates a KPI service over the given collection
func NewKpiService(kpis *catalog.Collection[domain.KPI], notifier Notifier, logger *slog.Logger) *KpiService {
	if logger == nil {
		logger = slog.Default()
	}
	return &KpiService{
		kpis:     kpis,
		notifier: notifierOrNop(notifier),
		logger:   logger.With(slog.String("component", "kpi_service")),
	}
}

// GetAll returns every KPI in insertion order
func (s *KpiService) GetAll(ctx context.Context) []domain.KPI {
	return s.kpis.All()
}

// GetByID returns the KPI with the given id
func (s *KpiService) GetByID(ctx context.Context, id string) (domain.KPI, bool) {
	return s.kpis.Get(id)
}

// SearchByName returns the KPIs whose name contains query, ignoring case
func (s *KpiService) SearchByName(ctx context.Context, query string) []domain.KPI {
	q := strings.ToLower(query)
	return s.kpis.Filter(func(k domain.KPI) bool {
		return strings.Contains(strings.ToLower(k.Name), q)
	})
}

// Update applies a partial update to the KPI with the given id.
// An unknown id changes nothing and returns ErrKPINotFound.
func (s *KpiService) Update(ctx context.Context, id string, update domain.KPIUpdate) (domain.KPI, error) {
	kpi, changed, found, err := s.kpis.Update(ctx, id, func(k *domain.KPI) bool {
		before := k.Clone()
		*k = update.Apply(*k)
		return !reflect.DeepEqual(before, *k)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "KPI update failed",
			slog.String("kpi_id", id),
			slog.String("error", err.Error()))
		return domain.KPI{}, fmt.Errorf("update kpi %s: %w", id, err)
	}
	if !found {
		return domain.KPI{}, fmt.Errorf("%w: %s", ErrKPINotFound, id)
	}

	if changed {
		s.logger.InfoContext(ctx, "KPI updated", slog.String("kpi_id", id))
		publish(s.notifier, events.MessageTypeKPIUpdated, kpi)
	}
	return kpi, nil
}

// Request marks the KPI as requested by the current user. Owned KPIs
// cannot be requested and are returned unchanged.
func (s *KpiService) Request(ctx context.Context, id string) (domain.KPI, error) {
	requested := true
	kpi, changed, found, err := s.kpis.Update(ctx, id, func(k *domain.KPI) bool {
		if k.IsOwned() || k.IsRequested() {
			return false
		}
		k.Requested = &requested
		return true
	})
	if err != nil {
		return domain.KPI{}, fmt.Errorf("request kpi %s: %w", id, err)
	}
	if !found {
		return domain.KPI{}, fmt.Errorf("%w: %s", ErrKPINotFound, id)
	}

	if changed {
		s.logger.InfoContext(ctx, "KPI requested", slog.String("kpi_id", id))
		publish(s.notifier, events.MessageTypeKPIUpdated, kpi)
	}
	return kpi, nil
}

// TruncatedDescription shortens text for display on a card
func (s *KpiService) TruncatedDescription(text string) string {
	return TruncateDescription(text)
}

// Cards converts KPIs to their card view
func (s *KpiService) Cards(kpis []domain.KPI) []domain.KPICard {
	cards := make([]domain.KPICard, 0, len(kpis))
	for _, k := range kpis {
		kinds := make([]domain.ChartKind, 0, len(k.VisualsAvailable))
		for _, v := range k.VisualsAvailable {
			kinds = append(kinds, domain.VisualKind(v))
		}
		cards = append(cards, domain.KPICard{
			KPI:              k,
			ShortDescription: TruncateDescription(k.Description),
			VisualKinds:      kinds,
			Requestable:      !k.IsOwned() && !k.IsRequested(),
		})
	}
	return cards
}

// TruncateDescription returns text unchanged when it has at most
// DescriptionLimit characters, otherwise its first DescriptionLimit
// characters followed by "...".
func TruncateDescription(text string) string {
	if utf8.RuneCountInString(text) <= DescriptionLimit {
		return text
	}
	return string([]rune(text)[:DescriptionLimit]) + "..."
}
