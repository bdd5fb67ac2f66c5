package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sourav-hati/bookstore/internal/core/domain"
	"github.com/sourav-hati/bookstore/internal/core/ports"
)

const collectionEvents = "book_events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

var _ ports.EventRepository = (*EventRepository)(nil)

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

type eventDocument struct {
	BookID      string    `bson:"book_id"`
	Action      string    `bson:"action"`
	Actor       string    `bson:"actor"`
	Title       string    `bson:"title,omitempty"`
	Author      string    `bson:"author,omitempty"`
	OccurredAt  time.Time `bson:"occurred_at"`
	ProcessedAt time.Time `bson:"processed_at"`
}

// Insert appends a catalog event to the audit collection.
func (r *EventRepository) Insert(ctx context.Context, event *domain.CatalogEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := eventDocument{
		BookID:      event.BookID,
		Action:      string(event.Action),
		Actor:       event.Actor,
		Title:       event.Title,
		Author:      event.Author,
		OccurredAt:  event.OccurredAt.UTC(),
		ProcessedAt: time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// ListByBook returns the events of one book, oldest first.
func (r *EventRepository) ListByBook(ctx context.Context, bookID string) ([]*domain.CatalogEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"book_id": bookID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	var docs []eventDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	events := make([]*domain.CatalogEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, &domain.CatalogEvent{
			BookID:     d.BookID,
			Action:     domain.CatalogAction(d.Action),
			Actor:      d.Actor,
			Title:      d.Title,
			Author:     d.Author,
			OccurredAt: d.OccurredAt,
		})
	}
	return events, nil
}

func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "book_id", Value: 1}, {Key: "occurred_at", Value: 1}},
	})
	return err
}
