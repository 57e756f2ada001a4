package types

import (
	"context"
	"errors"

	"github.com/grandshipper/grandshipper-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("type not found")

// Repository defines persistence operations for types
type Repository interface {
	List(ctx context.Context) ([]models.Type, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Type, error)
	Insert(ctx context.Context, t *models.Type) error
	Update(ctx context.Context, id primitive.ObjectID, name string) (*models.Type, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Type, error)
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a new repository for the given collection
func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

// List returns every type sorted by name ascending.
func (r *MongoRepository) List(ctx context.Context) ([]models.Type, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	out := []models.Type{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Type, error) {
	var t models.Type
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *MongoRepository) Insert(ctx context.Context, t *models.Type) error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, t)
	return err
}

// Update replaces the name and returns the document after the change.
func (r *MongoRepository) Update(ctx context.Context, id primitive.ObjectID, name string) (*models.Type, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Type
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"name": name}}, opts).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Delete removes the type and returns what was removed.
func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Type, error) {
	var t models.Type
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
