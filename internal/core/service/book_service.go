package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/sourav-hati/bookstore/internal/core/domain"
	"github.com/sourav-hati/bookstore/internal/core/ports"
	"github.com/sourav-hati/bookstore/internal/pkg/metrics"
)

// BookService implements the catalog use cases. Every successful mutation is
// handed to the audit recorder.
type BookService struct {
	repo   ports.BookRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

// NewBookService builds a BookService. audit may be nil, in which case no
// audit trail is kept.
func NewBookService(repo ports.BookRepository, audit ports.AuditRecorder, logger zerolog.Logger) *BookService {
	return &BookService{repo: repo, audit: audit, logger: logger}
}

// ListBooks returns every book in the catalog. The result is never nil.
func (s *BookService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []*domain.Book{}
	}
	return books, nil
}

func (s *BookService) CreateBook(ctx context.Context, actor string, input ports.BookInput) (*domain.Book, error) {
	created, err := s.repo.Create(ctx, &domain.Book{Title: input.Title, Author: input.Author})
	if err != nil {
		metrics.BookMutationsTotal.WithLabelValues("create", "error").Inc()
		s.logger.Error().Err(err).Msg("failed to create book")
		return nil, err
	}

	metrics.BookMutationsTotal.WithLabelValues("create", "ok").Inc()
	s.logger.Info().Str("book_id", created.ID).Str("actor", actor).Msg("book created")
	s.record(domain.ActionCreated, actor, created)
	return created, nil
}

// UpdateBook replaces both title and author, even when the input leaves them
// empty.
func (s *BookService) UpdateBook(ctx context.Context, actor, id string, input ports.BookInput) (*domain.Book, error) {
	updated, err := s.repo.Update(ctx, &domain.Book{ID: id, Title: input.Title, Author: input.Author})
	if err != nil {
		s.countFailure("update", err)
		return nil, err
	}

	metrics.BookMutationsTotal.WithLabelValues("update", "ok").Inc()
	s.logger.Info().Str("book_id", updated.ID).Str("actor", actor).Msg("book updated")
	s.record(domain.ActionUpdated, actor, updated)
	return updated, nil
}

func (s *BookService) DeleteBook(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.countFailure("delete", err)
		return err
	}

	metrics.BookMutationsTotal.WithLabelValues("delete", "ok").Inc()
	s.logger.Info().Str("book_id", id).Str("actor", actor).Msg("book deleted")
	s.record(domain.ActionDeleted, actor, &domain.Book{ID: id})
	return nil
}

func (s *BookService) countFailure(op string, err error) {
	if errors.Is(err, domain.ErrBookNotFound) {
		metrics.BookMutationsTotal.WithLabelValues(op, "not_found").Inc()
		return
	}
	metrics.BookMutationsTotal.WithLabelValues(op, "error").Inc()
	s.logger.Error().Err(err).Str("op", op).Msg("book mutation failed")
}

func (s *BookService) record(action domain.CatalogAction, actor string, book *domain.Book) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.CatalogEvent{
		BookID:     book.ID,
		Action:     action,
		Actor:      actor,
		Title:      book.Title,
		Author:     book.Author,
		OccurredAt: time.Now().UTC(),
	})
}
