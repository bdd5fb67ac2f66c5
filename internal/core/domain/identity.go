package domain

import "time"

// Identity is the caller resolved from a verified session token.
type Identity struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	TokenID   string    `json:"jti,omitempty"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// HasRole reports whether the identity carries the given role claim.
func (i *Identity) HasRole(role string) bool {
	return i != nil && i.Role == role
}
