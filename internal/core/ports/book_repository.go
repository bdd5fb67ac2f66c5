package ports

import (
	"context"

	"github.com/sourav-hati/bookstore/internal/core/domain"
)

// BookRepository defines the catalog store. Update and Delete return
// domain.ErrBookNotFound when the id does not match a stored book.
type BookRepository interface {
	List(ctx context.Context) ([]*domain.Book, error)
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
}
