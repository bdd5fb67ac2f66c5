package ports

import (
	"context"

	"github.com/sourav-hati/bookstore/internal/core/domain"
)

// BookInput carries the mutable fields of a book.
type BookInput struct {
	Title  string
	Author string
}

// BookService defines catalog use cases. Actor is the username performing
// the mutation and is recorded in the audit trail.
type BookService interface {
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	CreateBook(ctx context.Context, actor string, input BookInput) (*domain.Book, error)
	UpdateBook(ctx context.Context, actor, id string, input BookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, actor, id string) error
}
