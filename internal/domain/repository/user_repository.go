package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventos-api/internal/domain/entity"
)

// UserUpdate is a partial update; nil fields are left untouched.
// Password, when set, must already be hashed by the caller — the
// repository persists it verbatim.
type UserUpdate struct {
	Username *string
	Gmail    *string
	Password *string
	Birthday *time.Time
}

// UserRepository defines user persistence operations.
// Lookups return (nil, nil) when no document matches; errors are
// reserved for storage failures and duplicate-key collisions.
type UserRepository interface {
	Insert(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context) ([]entity.User, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, upd UserUpdate) (*entity.User, error)
	UpdateByUsername(ctx context.Context, username string, upd UserUpdate) (*entity.User, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	DeleteByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindMembers resolves member IDs to their public pairs. IDs without
	// a matching user are omitted from the result.
	FindMembers(ctx context.Context, ids []primitive.ObjectID) ([]entity.MemberInfo, error)
}
