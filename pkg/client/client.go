// Package client is a Go SDK for the bookstore HTTP API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

const defaultTimeout = 15 * time.Second

// Book mirrors the catalog record returned by the API.
type Book struct {
	ID     string `json:"_id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Event is one entry in a book's audit trail.
type Event struct {
	BookID     string    `json:"book_id"`
	Action     string    `json:"action"`
	Actor      string    `json:"actor"`
	Title      string    `json:"title,omitempty"`
	Author     string    `json:"author,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// APIError is a non-2xx response.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// TokenChangeFunc is called after the session token changes. token is empty
// after logout.
type TokenChangeFunc func(ctx context.Context, c *Client, token string)

// Option customises a Client.
type Option func(*Client)

// WithSessionStore persists the session across process restarts.
func WithSessionStore(store SessionStore) Option {
	return func(c *Client) { c.store = store }
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// OnTokenChange replaces the default hook, which refreshes the cached book
// list whenever a token is present.
func OnTokenChange(fn TokenChangeFunc) Option {
	return func(c *Client) { c.onTokenChange = fn }
}

// Client talks to one bookstore server.
type Client struct {
	http          *resty.Client
	store         SessionStore
	onTokenChange TokenChangeFunc

	mu      sync.RWMutex
	session Session
	books   []Book
}

// New creates a client for baseURL and restores any saved session.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout).
			SetHeader("Accept", "application/json"),
		store:         &memoryStore{},
		onTokenChange: refreshBooks,
	}
	for _, opt := range opts {
		opt(c)
	}

	saved, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if saved.Token != "" && (saved.BaseURL == "" || saved.BaseURL == baseURL) {
		c.session = *saved
	}
	c.session.BaseURL = baseURL
	return c, nil
}

func refreshBooks(ctx context.Context, c *Client, token string) {
	if token == "" {
		return
	}
	_, _ = c.Refresh(ctx)
}

// Token returns the current session token, if any.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.Token
}

// User returns the claims decoded from the current token.
func (c *Client) User() *Claims {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.User
}

// Books returns the list fetched by the last Refresh.
func (c *Client) Books() []Book {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Book(nil), c.books...)
}

// SetToken stores token, persists it and fires the token change hook. Setting
// the same token again is a no-op.
func (c *Client) SetToken(ctx context.Context, token string) error {
	c.mu.Lock()
	if token == c.session.Token {
		c.mu.Unlock()
		return nil
	}

	var user *Claims
	if token != "" {
		claims, err := DecodeClaims(token)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		user = claims
	}
	c.session.Token = token
	c.session.User = user
	if token == "" {
		c.books = nil
	}
	snapshot := c.session
	c.mu.Unlock()

	var err error
	if token == "" {
		err = c.store.Clear()
	} else {
		err = c.store.Save(&snapshot)
	}
	if err != nil {
		return err
	}

	if c.onTokenChange != nil {
		c.onTokenChange(ctx, c, token)
	}
	return nil
}

// DecodeClaims reads the token payload without verifying the signature.
func DecodeClaims(token string) (*Claims, error) {
	var claims struct {
		Username string `json:"username"`
		Role     string `json:"role"`
		jwt.RegisteredClaims
	}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	out := &Claims{Username: claims.Username, Role: claims.Role}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// Register creates an account. An empty role lets the server pick the default.
func (c *Client) Register(ctx context.Context, username, password, role string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	body := map[string]string{"username": username, "password": password}
	if role != "" {
		body["role"] = role
	}
	if err := c.do(ctx, http.MethodPost, "/api/register", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login authenticates and switches the client to the new session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &resp); err != nil {
		return err
	}
	return c.SetToken(ctx, resp.Token)
}

// Logout revokes the token server-side and always clears the local session.
func (c *Client) Logout(ctx context.Context) error {
	if c.Token() == "" {
		return nil
	}
	callErr := c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
	if err := c.SetToken(ctx, ""); err != nil {
		return err
	}
	return callErr
}

// Refresh fetches the catalog and caches it.
func (c *Client) Refresh(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.do(ctx, http.MethodGet, "/api/books", nil, &books); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.books = books
	c.mu.Unlock()
	return books, nil
}

func (c *Client) CreateBook(ctx context.Context, title, author string) (*Book, error) {
	var resp struct {
		Book Book `json:"book"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/books", Book{Title: title, Author: author}, &resp); err != nil {
		return nil, err
	}
	return &resp.Book, nil
}

// UpdateBook replaces both fields of the book.
func (c *Client) UpdateBook(ctx context.Context, id, title, author string) (*Book, error) {
	var resp struct {
		Book Book `json:"book"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/books/{id}", Book{Title: title, Author: author}, &resp, pathID(id)); err != nil {
		return nil, err
	}
	return &resp.Book, nil
}

func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/books/{id}", nil, nil, pathID(id))
}

func (c *Client) History(ctx context.Context, id string) ([]Event, error) {
	var events []Event
	if err := c.do(ctx, http.MethodGet, "/api/books/{id}/history", nil, &events, pathID(id)); err != nil {
		return nil, err
	}
	return events, nil
}

// pathID escapes a book id into the {id} path segment.
func pathID(id string) map[string]string {
	return map[string]string{"id": id}
}

func (c *Client) do(ctx context.Context, method, path string, body, result any, params ...map[string]string) error {
	req := c.http.R().SetContext(ctx).SetError(&APIError{})
	for _, p := range params {
		req.SetPathParams(p)
	}
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if !resp.IsError() {
		return nil
	}
	if apiErr, ok := resp.Error().(*APIError); ok && apiErr.Message != "" {
		apiErr.Status = resp.StatusCode()
		return apiErr
	}
	return &APIError{Status: resp.StatusCode(), Message: http.StatusText(resp.StatusCode())}
}
