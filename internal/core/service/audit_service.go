package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sourav-hati/bookstore/internal/core/domain"
	"github.com/sourav-hati/bookstore/internal/core/ports"
	"github.com/sourav-hati/bookstore/internal/pkg/metrics"
)

type auditService struct {
	repo ports.EventRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService backed by the given repository.
func NewAuditService(repo ports.EventRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single catalog event.
func (s *auditService) Process(ctx context.Context, event domain.CatalogEvent) error {
	start := time.Now()
	defer func() {
		metrics.AuditProcessingDuration.Observe(time.Since(start).Seconds())
	}()

	if event.BookID == "" {
		metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("process audit event: missing book id")
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, &event); err != nil {
		metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("process audit event: %w", err)
	}

	metrics.AuditEventsTotal.WithLabelValues("persisted").Inc()
	s.log.Debug().
		Str("book_id", event.BookID).
		Str("action", string(event.Action)).
		Str("actor", event.Actor).
		Msg("audit event persisted")
	return nil
}

// History returns the events recorded for a book, oldest first.
func (s *auditService) History(ctx context.Context, bookID string) ([]*domain.CatalogEvent, error) {
	events, err := s.repo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("audit history: %w", err)
	}
	if events == nil {
		events = []*domain.CatalogEvent{}
	}
	return events, nil
}
