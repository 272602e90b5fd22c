package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventos-api/internal/domain/entity"
	repo "eventos-api/internal/domain/repository"
	"eventos-api/pkg/helpers"
)

// ErrValidation marks a request rejected before it reaches the store.
var ErrValidation = errors.New("validation failed")

type UserService struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewUserService(r repo.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, Logger: logger}
}

type RegisterUserInput struct {
	Username string
	Gmail    string
	Password string
	Birthday time.Time
}

// Register creates a user. The password is hashed exactly once, here;
// the plaintext never reaches the repository.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*entity.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Gmail = strings.TrimSpace(in.Gmail)
	if in.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if in.Gmail == "" {
		return nil, fmt.Errorf("%w: gmail is required", ErrValidation)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if in.Birthday.IsZero() {
		return nil, fmt.Errorf("%w: birthday is required", ErrValidation)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	u := &entity.User{
		Username: in.Username,
		Gmail:    in.Gmail,
		Password: hash,
		Birthday: in.Birthday,
	}
	if err := s.Repo.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return s.Repo.FindByUsername(ctx, username)
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.Repo.FindAll(ctx)
}

type UpdateUserInput struct {
	Username *string
	Gmail    *string
	Password *string
	Birthday *time.Time
}

// UpdateByID applies a partial update. The password is re-hashed iff the
// update carries a new plaintext; an unchanged password field is never
// touched, so a stored hash is never hashed again.
func (s *UserService) UpdateByID(ctx context.Context, id primitive.ObjectID, in UpdateUserInput) (*entity.User, error) {
	upd, err := s.buildUpdate(in)
	if err != nil {
		return nil, err
	}
	return s.Repo.UpdateByID(ctx, id, upd)
}

// UpdateByUsername is UpdateByID keyed by the unique username.
func (s *UserService) UpdateByUsername(ctx context.Context, username string, in UpdateUserInput) (*entity.User, error) {
	upd, err := s.buildUpdate(in)
	if err != nil {
		return nil, err
	}
	return s.Repo.UpdateByUsername(ctx, username, upd)
}

func (s *UserService) buildUpdate(in UpdateUserInput) (repo.UserUpdate, error) {
	upd := repo.UserUpdate{Birthday: in.Birthday}
	if in.Username != nil {
		v := strings.TrimSpace(*in.Username)
		if v == "" {
			return repo.UserUpdate{}, fmt.Errorf("%w: username must not be empty", ErrValidation)
		}
		upd.Username = &v
	}
	if in.Gmail != nil {
		v := strings.TrimSpace(*in.Gmail)
		if v == "" {
			return repo.UserUpdate{}, fmt.Errorf("%w: gmail must not be empty", ErrValidation)
		}
		upd.Gmail = &v
	}
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return repo.UserUpdate{}, fmt.Errorf("%w: %s", ErrValidation, err)
		}
		upd.Password = &hash
	}
	return upd, nil
}

func (s *UserService) DeleteByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	return s.Repo.DeleteByID(ctx, id)
}

func (s *UserService) DeleteByUsername(ctx context.Context, username string) (*entity.User, error) {
	return s.Repo.DeleteByUsername(ctx, username)
}

// VerifyLogin returns the user when username and password both match and
// nil otherwise. Unknown username and wrong password are deliberately
// indistinguishable to the caller.
func (s *UserService) VerifyLogin(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.Repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	ok, err := helpers.VerifyPassword(password, u.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return u, nil
}

// EnsureAdminUser creates the reserved admin account if it does not
// exist. Idempotent; meant to run once at startup. A concurrent create
// losing the unique-index race is treated as success.
func (s *UserService) EnsureAdminUser(ctx context.Context, username, gmail, password string) error {
	existing, err := s.Repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	_, err = s.Register(ctx, RegisterUserInput{
		Username: username,
		Gmail:    gmail,
		Password: password,
		Birthday: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	if errors.Is(err, repo.ErrDuplicateKey) {
		return nil
	}
	if err != nil {
		return err
	}
	s.Logger.WithField("username", username).Info("admin user created")
	return nil
}
