package application

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventos-api/internal/domain/entity"
	"eventos-api/internal/domain/repository"
)

// In-memory repositories mirroring the store's contracts: lookups return
// (nil, nil) on a miss, membership mutations are atomic per event, and
// unique indexes on username/gmail surface as ErrDuplicateKey.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]entity.User{}}
}

func (f *fakeUserRepo) Insert(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == u.Username || existing.Gmail == u.Gmail {
			return repository.ErrDuplicateKey
		}
	}
	u.ID = primitive.NewObjectID()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateByID(_ context.Context, id primitive.ObjectID, upd repository.UserUpdate) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return f.applyLocked(u, upd)
}

func (f *fakeUserRepo) UpdateByUsername(_ context.Context, username string, upd repository.UserUpdate) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return f.applyLocked(u, upd)
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) applyLocked(u entity.User, upd repository.UserUpdate) (*entity.User, error) {
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Gmail != nil {
		u.Gmail = *upd.Gmail
	}
	if upd.Password != nil {
		u.Password = *upd.Password
	}
	if upd.Birthday != nil {
		u.Birthday = *upd.Birthday
	}
	for id, other := range f.users {
		if id != u.ID && (other.Username == u.Username || other.Gmail == u.Gmail) {
			return nil, repository.ErrDuplicateKey
		}
	}
	f.users[u.ID] = u
	return &u, nil
}

func (f *fakeUserRepo) DeleteByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		delete(f.users, id)
		return &u, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) DeleteByUsername(_ context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if u.Username == username {
			delete(f.users, id)
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindMembers(_ context.Context, ids []primitive.ObjectID) ([]entity.MemberInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	members := []entity.MemberInfo{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			members = append(members, entity.MemberInfo{Username: u.Username, Gmail: u.Gmail})
		}
	}
	return members, nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[primitive.ObjectID]entity.Event
	users  *fakeUserRepo
}

func newFakeEventRepo(users *fakeUserRepo) *fakeEventRepo {
	return &fakeEventRepo{events: map[primitive.ObjectID]entity.Event{}, users: users}
}

func (f *fakeEventRepo) Insert(_ context.Context, e *entity.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = primitive.NewObjectID()
	f.events[e.ID] = cloneEvent(*e)
	return nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id primitive.ObjectID) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.events[id]; ok {
		e := cloneEvent(e)
		return &e, nil
	}
	return nil, nil
}

func (f *fakeEventRepo) FindAll(_ context.Context) ([]entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, cloneEvent(e))
	}
	return out, nil
}

func (f *fakeEventRepo) Update(_ context.Context, id primitive.ObjectID, upd repository.EventUpdate) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	if upd.Name != nil {
		e.Name = *upd.Name
	}
	if upd.Schedule != nil {
		e.Schedule = *upd.Schedule
	}
	if upd.Address != nil {
		e.Address = *upd.Address
	}
	if upd.UsuariosApuntados != nil {
		e.UsuariosApuntados = append([]primitive.ObjectID(nil), upd.UsuariosApuntados...)
	}
	f.events[id] = cloneEvent(e)
	return &e, nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return 0, nil
	}
	delete(f.events, id)
	return 1, nil
}

func (f *fakeEventRepo) AddMember(_ context.Context, eventID, userID primitive.ObjectID) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok {
		return nil, nil
	}
	present := false
	for _, id := range e.UsuariosApuntados {
		if id == userID {
			present = true
			break
		}
	}
	if !present {
		e.UsuariosApuntados = append(e.UsuariosApuntados, userID)
	}
	f.events[eventID] = cloneEvent(e)
	e = cloneEvent(e)
	return &e, nil
}

func (f *fakeEventRepo) RemoveMember(_ context.Context, eventID, userID primitive.ObjectID) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok {
		return nil, nil
	}
	kept := e.UsuariosApuntados[:0:0]
	for _, id := range e.UsuariosApuntados {
		if id != userID {
			kept = append(kept, id)
		}
	}
	e.UsuariosApuntados = kept
	f.events[eventID] = cloneEvent(e)
	e = cloneEvent(e)
	return &e, nil
}

func (f *fakeEventRepo) Report(ctx context.Context) ([]entity.EventReport, error) {
	f.mu.Lock()
	events := make([]entity.Event, 0, len(f.events))
	for _, e := range f.events {
		events = append(events, cloneEvent(e))
	}
	f.mu.Unlock()

	reports := make([]entity.EventReport, 0, len(events))
	for _, e := range events {
		info, err := f.users.FindMembers(ctx, e.UsuariosApuntados)
		if err != nil {
			return nil, err
		}
		reports = append(reports, entity.EventReport{
			ID:            e.ID,
			Name:          e.Name,
			Schedule:      e.Schedule,
			Address:       e.Address,
			UsuariosCount: len(e.UsuariosApuntados),
			UsuariosInfo:  info,
		})
	}
	return reports, nil
}

func cloneEvent(e entity.Event) entity.Event {
	e.UsuariosApuntados = append([]primitive.ObjectID(nil), e.UsuariosApuntados...)
	return e
}

var _ repository.EventRepository = (*fakeEventRepo)(nil)
