package handler

import "github.com/sourav-hati/bookstore/internal/core/domain"

// errorResponse is the error envelope rendered by the central error handler.
type errorResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type bookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type bookResponse struct {
	Message string       `json:"message"`
	Book    *domain.Book `json:"book"`
}
