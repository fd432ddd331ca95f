// Package identity wraps the external identity provider. Users are
// created there first; the local row mirrors the provider id as its
// primary key. All calls are synchronous, fallible and
// non-transactional; the mutation services compensate on partial
// failure.
package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("identity: user not found")
	ErrUsernameTaken = errors.New("identity: username already taken")
)

type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	Email    string    `json:"email,omitempty"`
	ImageURL string    `json:"image_url,omitempty"`
}

type CreateUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
}

// UpdateUserInput: nil fields are left untouched by the provider.
type UpdateUserInput struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
}

type Service interface {
	CreateUser(ctx context.Context, in CreateUserInput) (User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	GetUser(ctx context.Context, id uuid.UUID) (User, error)
	UpdateProfileImage(ctx context.Context, id uuid.UUID, data []byte, contentType string) (string, error)
	CreateEmailAddress(ctx context.Context, id uuid.UUID, email string) error
	DeleteEmailAddress(ctx context.Context, id uuid.UUID, email string) error
}
