package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sourav-hati/bookstore/internal/core/ports"
)

// BookHandler serves the catalog endpoints.
type BookHandler struct {
	books ports.BookService
	audit ports.AuditService
}

func NewBookHandler(books ports.BookService, audit ports.AuditService) *BookHandler {
	return &BookHandler{books: books, audit: audit}
}

// List handles GET /api/books.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Book
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/books [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.books.ListBooks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// Create handles POST /api/books.
//
// @Summary      Add a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookRequest  true  "Title and author"
// @Success      201   {object}  bookResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	book, err := h.books.CreateBook(c.Request().Context(), identity.Username, ports.BookInput{
		Title:  req.Title,
		Author: req.Author,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, bookResponse{Message: "Book added", Book: book})
}

// Update handles PUT /api/books/:id. Both fields are replaced.
//
// @Summary      Update a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Book id"
// @Param        body  body      bookRequest  true  "Title and author"
// @Success      200   {object}  bookResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	book, err := h.books.UpdateBook(c.Request().Context(), identity.Username, c.Param("id"), ports.BookInput{
		Title:  req.Title,
		Author: req.Author,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookResponse{Message: "Book updated", Book: book})
}

// Delete handles DELETE /api/books/:id.
//
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.books.DeleteBook(c.Request().Context(), identity.Username, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Book deleted"})
}

// History handles GET /api/books/:id/history.
//
// @Summary      Audit trail of a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book id"
// @Success      200  {array}   domain.CatalogEvent
// @Failure      403  {object}  errorResponse
// @Router       /api/books/{id}/history [get]
func (h *BookHandler) History(c echo.Context) error {
	events, err := h.audit.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
