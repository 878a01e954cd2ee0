package users

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

// Repo stores profiles. Upsert never changes CreatedAt of an existing profile.
type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
}
