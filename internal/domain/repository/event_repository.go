package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventos-api/internal/domain/entity"
)

// EventUpdate is a partial update; nil fields are left untouched.
// A non-nil UsuariosApuntados replaces the stored membership set and is
// canonicalized (deduplicated) before it reaches the data store.
type EventUpdate struct {
	Name              *string
	Schedule          *string
	Address           *string
	UsuariosApuntados []primitive.ObjectID
}

// EventRepository defines event persistence operations.
// AddMember and RemoveMember are the only legal membership mutations:
// each is a single atomic add-to-set / pull on one event document, so
// concurrent calls on the same event cannot lose updates. Both return
// the post-mutation document, or (nil, nil) when the event is unknown.
type EventRepository interface {
	Insert(ctx context.Context, e *entity.Event) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Event, error)
	FindAll(ctx context.Context) ([]entity.Event, error)
	Update(ctx context.Context, id primitive.ObjectID, upd EventUpdate) (*entity.Event, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)

	AddMember(ctx context.Context, eventID, userID primitive.ObjectID) (*entity.Event, error)
	RemoveMember(ctx context.Context, eventID, userID primitive.ObjectID) (*entity.Event, error)

	// Report joins events with their members and reshapes each event into
	// one EventReport row, regardless of membership size.
	Report(ctx context.Context) ([]entity.EventReport, error)
}
