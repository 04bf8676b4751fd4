package repository

import (
	"context"
	"errors"

	"affiliate-bot-backend/internal/features/user/models"
)

var ErrNotFound = errors.New("user not found")

// UserRepository stores dashboard users. Update applies fn against the
// current record under per-user serialization: two concurrent updates to the
// same user never interleave their read-modify-write sequences.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetOrCreate(ctx context.Context, id int64, username string) (*models.User, error)
	Update(ctx context.Context, id int64, fn func(*models.User) error) (*models.User, error)
}
