package repositories

import (
	"context"

	"github.com/imovia/imovia-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListingRepository defines the read-only interface for listing lookups.
// Listings are owned by the listings service; this backend only hydrates
// favorites views from them.
type ListingRepository interface {
	GetListingByID(ctx context.Context, id string) (*models.Listing, error)
	GetListingsByIDs(ctx context.Context, ids []string) ([]models.Listing, error)
	GetAllListings(ctx context.Context, skip, limit int64) ([]models.Listing, error)
}

// MongoListingRepository implements ListingRepository for MongoDB
type MongoListingRepository struct {
	collection *mongo.Collection
}

// NewMongoListingRepository creates a new MongoListingRepository
func NewMongoListingRepository(db *mongo.Database) *MongoListingRepository {
	return &MongoListingRepository{collection: db.Collection("listings")}
}

// GetListingByID retrieves a listing by ID
func (r *MongoListingRepository) GetListingByID(ctx context.Context, id string) (*models.Listing, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrListingNotFound
	}

	var listing models.Listing
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&listing); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// GetListingsByIDs retrieves the listings whose ids appear in the given set.
// Ids that do not parse or do not resolve are skipped, not errors; likes may
// reference listings that have since been deleted.
func (r *MongoListingRepository) GetListingsByIDs(ctx context.Context, ids []string) ([]models.Listing, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objIDs = append(objIDs, objID)
	}
	if len(objIDs) == 0 {
		return []models.Listing{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// GetAllListings retrieves listings with pagination, newest first
func (r *MongoListingRepository) GetAllListings(ctx context.Context, skip, limit int64) ([]models.Listing, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}
