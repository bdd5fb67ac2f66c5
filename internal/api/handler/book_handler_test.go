package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/sourav-hati/bookstore/internal/api/middleware"
	"github.com/sourav-hati/bookstore/internal/core/domain"
	"github.com/sourav-hati/bookstore/internal/core/ports"
)

type stubBookService struct {
	books     []*domain.Book
	err       error
	lastActor string
	lastID    string
	lastInput ports.BookInput
}

func (s *stubBookService) ListBooks(context.Context) ([]*domain.Book, error) {
	return s.books, s.err
}

func (s *stubBookService) CreateBook(_ context.Context, actor string, in ports.BookInput) (*domain.Book, error) {
	s.lastActor, s.lastInput = actor, in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Book{ID: "new-id", Title: in.Title, Author: in.Author}, nil
}

func (s *stubBookService) UpdateBook(_ context.Context, actor, id string, in ports.BookInput) (*domain.Book, error) {
	s.lastActor, s.lastID, s.lastInput = actor, id, in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Book{ID: id, Title: in.Title, Author: in.Author}, nil
}

func (s *stubBookService) DeleteBook(_ context.Context, actor, id string) error {
	s.lastActor, s.lastID = actor, id
	return s.err
}

type stubAuditService struct {
	events []*domain.CatalogEvent
}

func (s *stubAuditService) Process(context.Context, domain.CatalogEvent) error { return nil }

func (s *stubAuditService) History(_ context.Context, bookID string) ([]*domain.CatalogEvent, error) {
	return s.events, nil
}

var adminIdentity = &domain.Identity{Username: "root", Role: domain.RoleAdmin}

func TestBookHandler_List(t *testing.T) {
	e := newTestEcho()
	svc := &stubBookService{books: []*domain.Book{{ID: "1", Title: "Dune", Author: "Herbert"}}}
	handler := NewBookHandler(svc, &stubAuditService{})

	c, rec := jsonContext(e, http.MethodGet, "/api/books", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var books []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &books); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(books) != 1 || books[0]["_id"] != "1" || books[0]["title"] != "Dune" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestBookHandler_Create(t *testing.T) {
	e := newTestEcho()
	svc := &stubBookService{}
	handler := NewBookHandler(svc, &stubAuditService{})

	c, rec := jsonContext(e, http.MethodPost, "/api/books", `{"title":"Dune","author":"Herbert"}`)
	c.Set(middleware.IdentityKey, adminIdentity)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastActor != "root" || svc.lastInput.Title != "Dune" {
		t.Fatalf("unexpected service call: %q %+v", svc.lastActor, svc.lastInput)
	}

	var resp struct {
		Message string      `json:"message"`
		Book    domain.Book `json:"book"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Book added" || resp.Book.ID != "new-id" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestBookHandler_Update(t *testing.T) {
	e := newTestEcho()
	svc := &stubBookService{}
	handler := NewBookHandler(svc, &stubAuditService{})

	c, rec := jsonContext(e, http.MethodPut, "/api/books/abc", `{"title":"Emma"}`)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	c.Set(middleware.IdentityKey, adminIdentity)

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || svc.lastID != "abc" {
		t.Fatalf("expected 200 for id abc, got %d / %q", rec.Code, svc.lastID)
	}
	if svc.lastInput.Author != "" {
		t.Fatalf("absent author must be passed as empty, got %q", svc.lastInput.Author)
	}
}

func TestBookHandler_Update_NotFound(t *testing.T) {
	e := newTestEcho()
	handler := NewBookHandler(&stubBookService{err: domain.ErrBookNotFound}, &stubAuditService{})

	c, _ := jsonContext(e, http.MethodPut, "/api/books/abc", `{"title":"Emma"}`)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	c.Set(middleware.IdentityKey, adminIdentity)

	if err := handler.Update(c); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookHandler_Delete(t *testing.T) {
	e := newTestEcho()
	svc := &stubBookService{}
	handler := NewBookHandler(svc, &stubAuditService{})

	c, rec := jsonContext(e, http.MethodDelete, "/api/books/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	c.Set(middleware.IdentityKey, adminIdentity)

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || svc.lastID != "abc" {
		t.Fatalf("unexpected result: %d / %q", rec.Code, svc.lastID)
	}
}

func TestBookHandler_MutationsRequireIdentity(t *testing.T) {
	e := newTestEcho()
	handler := NewBookHandler(&stubBookService{}, &stubAuditService{})

	c, _ := jsonContext(e, http.MethodPost, "/api/books", `{"title":"x"}`)
	if code := httpCode(t, handler.Create(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestBookHandler_History(t *testing.T) {
	e := newTestEcho()
	audit := &stubAuditService{events: []*domain.CatalogEvent{{BookID: "abc", Action: domain.ActionCreated}}}
	handler := NewBookHandler(&stubBookService{}, audit)

	c, rec := jsonContext(e, http.MethodGet, "/api/books/abc/history", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := handler.History(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var events []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(events) != 1 || events[0]["action"] != "created" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
