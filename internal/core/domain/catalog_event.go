package domain

import "time"

// CatalogAction names the kind of mutation recorded in the audit trail.
type CatalogAction string

const (
	ActionCreated CatalogAction = "created"
	ActionUpdated CatalogAction = "updated"
	ActionDeleted CatalogAction = "deleted"
)

// CatalogEvent is an immutable record of a book mutation.
type CatalogEvent struct {
	BookID     string        `json:"book_id"`
	Action     CatalogAction `json:"action"`
	Actor      string        `json:"actor"`
	Title      string        `json:"title,omitempty"`
	Author     string        `json:"author,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
