package dto

import (
	"time"

	"github.com/spec-kit/tourism-service/internal/domain"
)

// TokenRequest is the identity claim presented to the bootstrap issuance
// endpoint.
type TokenRequest struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role,omitempty"`
}

// TokenResponse carries a signed bearer token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterUserRequest payload for user registration.
type RegisterUserRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	Email    string `json:"email"`
}

// InsertResponse reports the id of a created document.
type InsertResponse struct {
	InsertedID *string `json:"insertedId"`
	Message    string  `json:"message,omitempty"`
}

// UpdateResponse reports the outcome of an update.
type UpdateResponse struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResponse reports the outcome of a delete.
type DeleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
