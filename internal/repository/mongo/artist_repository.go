package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"artist-admin/internal/domain"
	"artist-admin/internal/repository"
)

type ArtistRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

func NewArtistRepository(client *mongo.Client, database string) repository.ArtistRepository {
	return &ArtistRepository{
		client:     client,
		database:   database,
		collection: "artists",
	}
}

func (r *ArtistRepository) coll() *mongo.Collection {
	return r.client.Database(r.database).Collection(r.collection)
}

// Init creates the unique email index backing the create conflict check.
func (r *ArtistRepository) Init(ctx context.Context) error {
	_, err := r.coll().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *ArtistRepository) Create(ctx context.Context, artist *domain.Artist) error {
	now := time.Now().UTC()
	if artist.ID == "" {
		artist.ID = primitive.NewObjectID().Hex()
	}
	artist.CreatedAt = now
	artist.UpdatedAt = now

	if _, err := r.coll().InsertOne(ctx, artist); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert artist: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("insert artist: %w", err)
	}
	return nil
}

func (r *ArtistRepository) GetByID(ctx context.Context, id string) (*domain.Artist, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ArtistRepository) GetByEmail(ctx context.Context, email string) (*domain.Artist, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *ArtistRepository) List(ctx context.Context) ([]domain.Artist, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := r.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer cursor.Close(ctx)

	artists := make([]domain.Artist, 0)
	if err := cursor.All(ctx, &artists); err != nil {
		return nil, fmt.Errorf("decode artists: %w", err)
	}
	return artists, nil
}

func (r *ArtistRepository) Update(ctx context.Context, artist *domain.Artist) error {
	artist.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"name":       artist.Name,
		"email":      artist.Email,
		"address":    artist.Address,
		"updated_at": artist.UpdatedAt,
	}}
	res, err := r.coll().UpdateOne(ctx, bson.M{"_id": artist.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("update artist: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("update artist: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ArtistRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ArtistRepository) findOne(ctx context.Context, filter bson.M) (*domain.Artist, error) {
	var artist domain.Artist
	if err := r.coll().FindOne(ctx, filter).Decode(&artist); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find artist: %w", err)
	}
	return &artist, nil
}
