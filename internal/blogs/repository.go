package blogs

import (
	"context"
	"errors"

	"github.com/grandshipper/grandshipper-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("blog not found")

// Repository defines persistence operations for blogs.
// Update is a full replace of title, type snapshot, content and author.
type Repository interface {
	List(ctx context.Context) ([]models.Blog, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	Insert(ctx context.Context, b *models.Blog) error
	Update(ctx context.Context, b *models.Blog) (*models.Blog, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

// List returns every blog sorted by title ascending.
func (r *MongoRepository) List(ctx context.Context) ([]models.Blog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	out := []models.Blog{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	var b models.Blog
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoRepository) Insert(ctx context.Context, b *models.Blog) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, b)
	return err
}

func (r *MongoRepository) Update(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	set := bson.M{
		"title":   b.Title,
		"type":    b.Type,
		"content": b.Content,
		"author":  b.Author,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Blog
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": b.ID}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	var b models.Blog
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}
