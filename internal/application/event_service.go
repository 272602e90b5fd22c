package application

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventos-api/internal/domain/entity"
	repo "eventos-api/internal/domain/repository"
)

// EventService owns events, their membership sets, and the read
// projections over both stores.
type EventService struct {
	Events repo.EventRepository
	Users  repo.UserRepository
}

func NewEventService(events repo.EventRepository, users repo.UserRepository) *EventService {
	return &EventService{Events: events, Users: users}
}

type CreateEventInput struct {
	Name              string
	Schedule          string
	Address           string
	UsuariosApuntados []primitive.ObjectID
}

func (s *EventService) Create(ctx context.Context, in CreateEventInput) (*entity.Event, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Schedule = strings.TrimSpace(in.Schedule)
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Schedule == "" {
		return nil, fmt.Errorf("%w: schedule is required", ErrValidation)
	}

	e := &entity.Event{
		Name:              in.Name,
		Schedule:          in.Schedule,
		Address:           strings.TrimSpace(in.Address),
		UsuariosApuntados: dedupeIDs(in.UsuariosApuntados),
	}
	if err := s.Events.Insert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// GetByID returns the event with its membership expanded, or nil when
// the event does not exist.
func (s *EventService) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.EventView, error) {
	e, err := s.Events.FindByID(ctx, id)
	if err != nil || e == nil {
		return nil, err
	}
	return s.expand(ctx, e)
}

// List returns all events with their memberships expanded.
func (s *EventService) List(ctx context.Context) ([]entity.EventView, error) {
	events, err := s.Events.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]entity.EventView, 0, len(events))
	for i := range events {
		v, err := s.expand(ctx, &events[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

type UpdateEventInput struct {
	Name              *string
	Schedule          *string
	Address           *string
	UsuariosApuntados []primitive.ObjectID
}

// Update applies a partial update. A caller-supplied membership array is
// canonicalized to a set before it is stored, so a duplicate-bearing
// array can never bypass the invariant.
func (s *EventService) Update(ctx context.Context, id primitive.ObjectID, in UpdateEventInput) (*entity.EventView, error) {
	upd := repo.EventUpdate{}
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		upd.Name = &v
	}
	if in.Schedule != nil {
		v := strings.TrimSpace(*in.Schedule)
		if v == "" {
			return nil, fmt.Errorf("%w: schedule must not be empty", ErrValidation)
		}
		upd.Schedule = &v
	}
	if in.Address != nil {
		v := strings.TrimSpace(*in.Address)
		upd.Address = &v
	}
	if in.UsuariosApuntados != nil {
		upd.UsuariosApuntados = dedupeIDs(in.UsuariosApuntados)
	}

	e, err := s.Events.Update(ctx, id, upd)
	if err != nil || e == nil {
		return nil, err
	}
	return s.expand(ctx, e)
}

// Delete removes the event and reports how many documents went away, so
// the transport can distinguish a real delete from a miss.
func (s *EventService) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return s.Events.Delete(ctx, id)
}

// AddMember signs a user up for an event. Idempotent: adding a member
// twice leaves a single entry. The user ID is not checked against the
// user store; a reference that never resolves simply stays invisible in
// the expanded views. Returns nil when the event is unknown.
func (s *EventService) AddMember(ctx context.Context, eventID, userID primitive.ObjectID) (*entity.EventView, error) {
	e, err := s.Events.AddMember(ctx, eventID, userID)
	if err != nil || e == nil {
		return nil, err
	}
	return s.expand(ctx, e)
}

// RemoveMember takes a user off an event. Removing an absent member is a
// no-op, not an error. Returns nil when the event is unknown.
func (s *EventService) RemoveMember(ctx context.Context, eventID, userID primitive.ObjectID) (*entity.EventView, error) {
	e, err := s.Events.RemoveMember(ctx, eventID, userID)
	if err != nil || e == nil {
		return nil, err
	}
	return s.expand(ctx, e)
}

// Report returns the events-with-users view: exactly one row per event,
// with usuariosCount taken from the raw membership set and usuariosInfo
// holding only the references that resolved.
func (s *EventService) Report(ctx context.Context) ([]entity.EventReport, error) {
	reports, err := s.Events.Report(ctx)
	if err != nil {
		return nil, err
	}
	for i := range reports {
		if reports[i].UsuariosInfo == nil {
			reports[i].UsuariosInfo = []entity.MemberInfo{}
		}
	}
	return reports, nil
}

// expand replaces member IDs with the referenced users' public pairs.
// IDs that no longer resolve are omitted, by contract.
func (s *EventService) expand(ctx context.Context, e *entity.Event) (*entity.EventView, error) {
	members, err := s.Users.FindMembers(ctx, e.UsuariosApuntados)
	if err != nil {
		return nil, err
	}
	return &entity.EventView{
		ID:                e.ID,
		Name:              e.Name,
		Schedule:          e.Schedule,
		Address:           e.Address,
		UsuariosApuntados: members,
	}, nil
}

func dedupeIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
