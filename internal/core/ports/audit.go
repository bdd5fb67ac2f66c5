package ports

import (
	"context"

	"github.com/sourav-hati/bookstore/internal/core/domain"
)

// EventRepository persists the catalog audit trail.
type EventRepository interface {
	Insert(ctx context.Context, event *domain.CatalogEvent) error
	ListByBook(ctx context.Context, bookID string) ([]*domain.CatalogEvent, error)
}

// AuditService processes catalog events and serves their history.
type AuditService interface {
	Process(ctx context.Context, event domain.CatalogEvent) error
	History(ctx context.Context, bookID string) ([]*domain.CatalogEvent, error)
}

// AuditRecorder accepts events for asynchronous processing. Record must not
// block the caller.
type AuditRecorder interface {
	Record(event domain.CatalogEvent)
}
