// Package store is the persistence contract over the users collection.
// Handlers depend on the UserStore interface; the Mongo implementation lives
// in mongo.go.
package store

import (
	"context"
	"errors"

	"github.com/Tarakeshp07/livekit-server/internal/domain"
)

// ErrNotFound is returned when no user matches the given id or filter
var ErrNotFound = errors.New("user not found")

// DuplicateKeyError signals a unique-index violation on insert or update.
// Field names the colliding field, "username" or "email".
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return e.Field + " already exists"
}

// ListFilter narrows a FindMany query. Zero values mean no constraint.
type ListFilter struct {
	Role            string // Exact match on role
	InstitutionName string // Case-insensitive substring match
	Query           string // Case-insensitive substring OR across username/email/institutionName
}

// UserStore exposes the query/insert/update/delete primitives over the users
// collection. Results are sorted newest-created-first. Uniqueness of
// username and email is enforced by the store's own indexes, not by
// application-level locking.
type UserStore interface {
	// FindMany returns one page of users plus the total matching count
	FindMany(ctx context.Context, filter ListFilter, skip, limit int) ([]domain.User, int64, error)
	// FindByID returns ErrNotFound when no user has the given id
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail returns ErrNotFound when no user has the given email
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByUsernameOrEmail returns the first user matching either value,
	// or ErrNotFound
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	// Insert persists a new user and returns it with its assigned id
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateByID applies a partial patch and returns the updated document,
	// or ErrNotFound
	UpdateByID(ctx context.Context, id string, patch *domain.UserPatch) (*domain.User, error)
	// DeleteByID removes a user and returns the deleted document, or
	// ErrNotFound
	DeleteByID(ctx context.Context, id string) (*domain.User, error)
	// Stats aggregates collection-wide counters
	Stats(ctx context.Context) (*domain.UserStats, error)
}
