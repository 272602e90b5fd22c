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

type EventRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewEventRepository(db *mongo.Database, timeout time.Duration) *EventRepository {
	return &EventRepository{coll: db.Collection(eventsCollection), timeout: timeout}
}

func (r *EventRepository) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *EventRepository) Insert(ctx context.Context, e *entity.Event) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, e)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	e.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Event, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	e := &entity.Event{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]entity.Event, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	var events []entity.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, id primitive.ObjectID, upd repository.EventUpdate) (*entity.Event, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Schedule != nil {
		set["schedule"] = *upd.Schedule
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.UsuariosApuntados != nil {
		set["usuariosApuntados"] = upd.UsuariosApuntados
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	e := &entity.Event{}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete event: %w", err)
	}
	return res.DeletedCount, nil
}

// AddMember appends userID to the membership set with a single $addToSet
// update, so a concurrent add or remove on the same event cannot lose
// either mutation and a duplicate can never be stored.
func (r *EventRepository) AddMember(ctx context.Context, eventID, userID primitive.ObjectID) (*entity.Event, error) {
	return r.mutateMembers(ctx, eventID, bson.M{"$addToSet": bson.M{"usuariosApuntados": userID}})
}

// RemoveMember drops userID from the membership set with a single $pull
// update. Removing an absent member leaves the document unchanged.
func (r *EventRepository) RemoveMember(ctx context.Context, eventID, userID primitive.ObjectID) (*entity.Event, error) {
	return r.mutateMembers(ctx, eventID, bson.M{"$pull": bson.M{"usuariosApuntados": userID}})
}

func (r *EventRepository) mutateMembers(ctx context.Context, eventID primitive.ObjectID, update bson.M) (*entity.Event, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	e := &entity.Event{}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": eventID}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update event members: %w", err)
	}
	return e, nil
}

// Report runs the events-with-users aggregation: a $lookup of member IDs
// against the users collection followed by a $project that reshapes each
// event into one report row. usuariosCount is the $size of the raw
// membership array, so unresolved references still count.
func (r *EventRepository) Report(ctx context.Context) ([]entity.EventReport, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "usuariosApuntados"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "usuariosInfo"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "name", Value: 1},
			{Key: "schedule", Value: 1},
			{Key: "address", Value: 1},
			{Key: "usuariosCount", Value: bson.D{{Key: "$size", Value: "$usuariosApuntados"}}},
			{Key: "usuariosInfo", Value: bson.D{{Key: "$map", Value: bson.D{
				{Key: "input", Value: "$usuariosInfo"},
				{Key: "as", Value: "usuario"},
				{Key: "in", Value: bson.D{
					{Key: "username", Value: "$$usuario.username"},
					{Key: "gmail", Value: "$$usuario.gmail"},
				}},
			}}}},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate events: %w", err)
	}
	reports := []entity.EventReport{}
	if err := cur.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("decode event reports: %w", err)
	}
	return reports, nil
}

var _ repository.EventRepository = (*EventRepository)(nil)
