package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence. Lookups return
// (nil, nil) when no row matches.
type UserRepository interface {
	// FindByID finds a user by id
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindAll returns all users ordered by username
	FindAll(ctx context.Context) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// Delete deletes a user
	Delete(ctx context.Context, id uuid.UUID) error
}
