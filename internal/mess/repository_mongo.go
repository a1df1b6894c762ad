package mess

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("mess not found")

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection("messes")}
}

func (r *MongoRepository) GetAll(ctx context.Context) ([]Mess, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messes []Mess
	if err := cursor.All(ctx, &messes); err != nil {
		return nil, err
	}
	return messes, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*Mess, error) {
	var m Mess
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MongoRepository) Create(ctx context.Context, m *Mess) error {
	_, err := r.coll.InsertOne(ctx, m)
	return err
}

func (r *MongoRepository) UpdateMenu(ctx context.Context, id string, menu WeekMenu, updatedAt time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"menu": menu, "lastUpdated": updatedAt}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) UpdateNextWeekMenu(ctx context.Context, id string, menu WeekMenu, startDate, updatedAt time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"nextWeekMenu":  menu,
			"menuStartDate": startDate,
			"lastUpdated":   updatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Watch opens a change stream on the messes collection. The caller owns
// closing the returned stream.
func (r *MongoRepository) Watch(ctx context.Context) (*mongo.ChangeStream, error) {
	return r.coll.Watch(ctx, mongo.Pipeline{})
}
