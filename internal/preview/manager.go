package preview

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"assetlib/pkg/contracts/domain"
)

// LayoutFinder looks up layouts by id
type LayoutFinder interface {
	GetByID(ctx context.Context, id string) (domain.Layout, bool)
}

// KPIFinder looks up KPIs by id
type KPIFinder interface {
	GetByID(ctx context.Context, id string) (domain.KPI, bool)
}

// SessionRecorder receives preview lifecycle events
type SessionRecorder interface {
	RecordPreviewOpened(ctx context.Context)
	RecordPreviewClosed(ctx context.Context, reason string)
}

type nopRecorder struct{}

func (nopRecorder) RecordPreviewOpened(context.Context)         {}
func (nopRecorder) RecordPreviewClosed(context.Context, string) {}

// ReasonEvicted is reported for previews dropped by the session limit
const ReasonEvicted = "evicted"

type session struct {
	id        string
	selection *Selection
	openedAt  time.Time
	// set by Close before removal so the eviction hook reports it
	closedBy domain.CloseReason
}

func (s *session) view(scrollLocked bool) domain.PreviewSession {
	return domain.PreviewSession{
		ID:           s.id,
		Layout:       s.selection.Layout(),
		Selection:    s.selection.Current(),
		Options:      s.selection.Options(),
		ScrollLocked: scrollLocked,
		OpenedAt:     s.openedAt,
	}
}

// Manager keeps the open previews in a bounded LRU. Closing a preview
// discards it, so a selection never outlives its modal.
type Manager struct {
	mu       sync.Mutex
	sessions *lru.Cache[string, *session]
	layouts  LayoutFinder
	kpis     KPIFinder
	recorder SessionRecorder
	logger   *slog.Logger
}

// NewManager creates a manager holding at most maxSessions open previews.
// The least recently used preview is dropped when the limit is reached.
// A nil recorder discards lifecycle events.
func NewManager(maxSessions int, layouts LayoutFinder, kpis KPIFinder, recorder SessionRecorder, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "preview_manager"))
	if recorder == nil {
		recorder = nopRecorder{}
	}

	// Fires for both capacity eviction and Close, never twice per session.
	sessions, err := lru.NewWithEvict(maxSessions, func(id string, s *session) {
		reason := string(s.closedBy)
		if reason == "" {
			reason = ReasonEvicted
			logger.Debug("Preview session discarded", slog.String("session_id", id))
		}
		recorder.RecordPreviewClosed(context.Background(), reason)
	})
	if err != nil {
		return nil, fmt.Errorf("create preview cache: %w", err)
	}

	return &Manager{
		sessions: sessions,
		layouts:  layouts,
		kpis:     kpis,
		recorder: recorder,
		logger:   logger,
	}, nil
}

// Open opens a preview for the layout with the given id
func (m *Manager) Open(ctx context.Context, layoutID string) (domain.PreviewSession, error) {
	layout, ok := m.layouts.GetByID(ctx, layoutID)
	if !ok {
		return domain.PreviewSession{}, fmt.Errorf("%w: %s", ErrLayoutNotFound, layoutID)
	}

	kpis := make([]domain.KPI, 0, len(layout.KPIs))
	for _, id := range layout.KPIs {
		if k, ok := m.kpis.GetByID(ctx, id); ok {
			kpis = append(kpis, k)
		}
	}

	s := &session{
		id:        uuid.New().String(),
		selection: Open(layout, kpis),
		openedAt:  time.Now().UTC(),
	}

	m.recorder.RecordPreviewOpened(ctx)
	m.mu.Lock()
	m.sessions.Add(s.id, s)
	view := s.view(true)
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "Preview opened",
		slog.String("session_id", s.id),
		slog.String("layout_id", layoutID),
		slog.String("kpi_id", view.Selection.KPIID))
	return view, nil
}

// Get returns an open preview
func (m *Manager) Get(ctx context.Context, id string) (domain.PreviewSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions.Get(id)
	if !ok {
		return domain.PreviewSession{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s.view(true), nil
}

// Update applies a selection change to an open preview
func (m *Manager) Update(ctx context.Context, id string, change Change) (domain.PreviewSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions.Get(id)
	if !ok {
		return domain.PreviewSession{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err := s.selection.Apply(change); err != nil {
		return domain.PreviewSession{}, err
	}
	return s.view(true), nil
}

// Chart returns the chart preview of an open preview
func (m *Manager) Chart(ctx context.Context, id string) (domain.ChartPreview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions.Get(id)
	if !ok {
		return domain.ChartPreview{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s.selection.Chart(), nil
}

// Close dismisses a preview, either through the close action or the escape
// key, and releases its scroll lock. An empty reason counts as close.
func (m *Manager) Close(ctx context.Context, id string, reason domain.CloseReason) (domain.PreviewSession, error) {
	if reason == "" {
		reason = domain.CloseReasonAction
	}
	if !reason.Valid() {
		return domain.PreviewSession{}, fmt.Errorf("%w: %q", ErrInvalidCloseReason, reason)
	}

	m.mu.Lock()
	s, ok := m.sessions.Peek(id)
	if ok {
		s.closedBy = reason
		m.sessions.Remove(id)
	}
	m.mu.Unlock()
	if !ok {
		return domain.PreviewSession{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	m.logger.InfoContext(ctx, "Preview closed",
		slog.String("session_id", id),
		slog.String("reason", string(reason)),
		slog.Duration("open_for", time.Since(s.openedAt)))
	return s.view(false), nil
}

// Len returns the number of open previews
func (m *Manager) Len() int {
	return m.sessions.Len()
}
