package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eventos-api/internal/domain/entity"
	"eventos-api/internal/domain/repository"
)

type UserRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewUserRepository(db *mongo.Database, timeout time.Duration) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection), timeout: timeout}
}

func (r *UserRepository) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *UserRepository) Insert(ctx context.Context, u *entity.User) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateKey
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	u := &entity.User{}
	if err := r.coll.FindOne(ctx, filter).Decode(u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var users []entity.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, upd repository.UserUpdate) (*entity.User, error) {
	return r.updateOne(ctx, bson.M{"_id": id}, upd)
}

func (r *UserRepository) UpdateByUsername(ctx context.Context, username string, upd repository.UserUpdate) (*entity.User, error) {
	return r.updateOne(ctx, bson.M{"username": username}, upd)
}

func (r *UserRepository) updateOne(ctx context.Context, filter bson.M, upd repository.UserUpdate) (*entity.User, error) {
	set := bson.M{}
	if upd.Username != nil {
		set["username"] = *upd.Username
	}
	if upd.Gmail != nil {
		set["gmail"] = *upd.Gmail
	}
	if upd.Password != nil {
		set["password"] = *upd.Password
	}
	if upd.Birthday != nil {
		set["birthday"] = *upd.Birthday
	}
	if len(set) == 0 {
		return r.findOne(ctx, filter)
	}

	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	u := &entity.User{}
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicateKey
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	return r.deleteOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) DeleteByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.deleteOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) deleteOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	u := &entity.User{}
	if err := r.coll.FindOneAndDelete(ctx, filter).Decode(u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindMembers(ctx context.Context, ids []primitive.ObjectID) ([]entity.MemberInfo, error) {
	if len(ids) == 0 {
		return []entity.MemberInfo{}, nil
	}

	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"username": 1, "gmail": 1}))
	if err != nil {
		return nil, fmt.Errorf("find members: %w", err)
	}
	members := []entity.MemberInfo{}
	if err := cur.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	return members, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
