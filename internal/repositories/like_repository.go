package repositories

import (
	"context"
	"time"

	"github.com/imovia/imovia-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	Insert(ctx context.Context, userID uint, listingID string) (*models.Like, error)
	GetByID(ctx context.Context, id string) (*models.Like, error)
	DeleteByID(ctx context.Context, id string) (*models.Like, error)
	DeleteByUserAndListing(ctx context.Context, userID uint, listingID string) (*models.Like, error)
	FindByUserAndListing(ctx context.Context, userID uint, listingID string) (*models.Like, error)
	ListByListing(ctx context.Context, listingID string) ([]models.Like, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Like, error)
	CountByListing(ctx context.Context, listingID string) (int64, error)
	HasUserLiked(ctx context.Context, userID uint, listingID string) (bool, error)
}

// likeDocument is the on-disk shape of a like. Older generations of the
// schema stored the listing id under postId, propertyId or imoId; those
// names are coalesced into ListingID when reading, and never written.
type likeDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     uint               `bson:"userId"`
	ListingID  string             `bson:"listingId,omitempty"`
	PostID     string             `bson:"postId,omitempty"`
	PropertyID string             `bson:"propertyId,omitempty"`
	ImoID      string             `bson:"imoId,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (d *likeDocument) toModel() models.Like {
	listingID := d.ListingID
	if listingID == "" {
		switch {
		case d.PostID != "":
			listingID = d.PostID
		case d.PropertyID != "":
			listingID = d.PropertyID
		case d.ImoID != "":
			listingID = d.ImoID
		}
	}
	return models.Like{
		ID:        d.ID,
		UserID:    d.UserID,
		ListingID: listingID,
		CreatedAt: d.CreatedAt,
	}
}

// legacyListingAliases are the field names older schema generations used for
// the listing id, in coalescing priority order.
var legacyListingAliases = []string{"postId", "propertyId", "imoId"}

// listingFilter matches a listing id under its canonical name as well as the
// legacy aliases. The startup migration renames the aliases away, so the
// extra clauses only matter for documents written by an old server after the
// migration ran.
func listingFilter(listingID string) bson.M {
	or := []bson.M{{"listingId": listingID}}
	for _, alias := range legacyListingAliases {
		or = append(or, bson.M{alias: listingID})
	}
	return bson.M{"$or": or}
}

func pairFilter(userID uint, listingID string) bson.M {
	f := listingFilter(listingID)
	f["userId"] = userID
	return f
}

// MongoLikeRepository implements LikeRepository for MongoDB
type MongoLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{collection: db.Collection("likes")}
}

// EnsureIndexes migrates legacy documents onto the canonical listingId field
// and then creates the unique compound index that backs the
// one-like-per-user-per-listing guarantee. The migration must run first: a
// legacy document outside the index would let a canonical duplicate of the
// same pair slip in.
func (r *MongoLikeRepository) EnsureIndexes(ctx context.Context) error {
	if err := r.migrateLegacyAliases(ctx); err != nil {
		return err
	}
	_, err := r.collection.Indexes().CreateMany(ctx, likeIndexModels())
	return err
}

func likeIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "listingId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "listingId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}
}

// aliasMigration is one updateMany of the startup migration
type aliasMigration struct {
	filter bson.M
	update bson.M
}

// legacyAliasMigrations renames each legacy alias to listingId on documents
// that do not already carry the canonical field. Aliases historically stored
// the same value redundantly, so the priority order only decides which copy
// wins; any alias left behind is shadowed by listingId when decoding.
func legacyAliasMigrations() []aliasMigration {
	migrations := make([]aliasMigration, 0, len(legacyListingAliases))
	for _, alias := range legacyListingAliases {
		migrations = append(migrations, aliasMigration{
			filter: bson.M{
				"listingId": bson.M{"$exists": false},
				alias:       bson.M{"$exists": true},
			},
			update: bson.M{"$rename": bson.M{alias: "listingId"}},
		})
	}
	return migrations
}

func (r *MongoLikeRepository) migrateLegacyAliases(ctx context.Context) error {
	for _, m := range legacyAliasMigrations() {
		if _, err := r.collection.UpdateMany(ctx, m.filter, m.update); err != nil {
			return err
		}
	}
	return nil
}

// Insert creates a like for the given pair with a single conditional write.
// A concurrent duplicate trips the unique index and is reported as
// models.ErrAlreadyLiked; there is no separate existence check.
func (r *MongoLikeRepository) Insert(ctx context.Context, userID uint, listingID string) (*models.Like, error) {
	doc := likeDocument{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrAlreadyLiked
		}
		return nil, err
	}
	like := doc.toModel()
	return &like, nil
}

// GetByID retrieves a like by its id
func (r *MongoLikeRepository) GetByID(ctx context.Context, id string) (*models.Like, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrLikeNotFound
	}

	var doc likeDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrLikeNotFound
		}
		return nil, err
	}
	like := doc.toModel()
	return &like, nil
}

// DeleteByID removes a like by id and returns the removed record
func (r *MongoLikeRepository) DeleteByID(ctx context.Context, id string) (*models.Like, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrLikeNotFound
	}

	var doc likeDocument
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrLikeNotFound
		}
		return nil, err
	}
	like := doc.toModel()
	return &like, nil
}

// DeleteByUserAndListing removes the like for the pair in one atomic
// operation. Of two concurrent calls exactly one gets the record; the other
// sees models.ErrLikeNotFound.
func (r *MongoLikeRepository) DeleteByUserAndListing(ctx context.Context, userID uint, listingID string) (*models.Like, error) {
	var doc likeDocument
	if err := r.collection.FindOneAndDelete(ctx, pairFilter(userID, listingID)).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrLikeNotFound
		}
		return nil, err
	}
	like := doc.toModel()
	return &like, nil
}

// FindByUserAndListing retrieves the like for the pair, if any
func (r *MongoLikeRepository) FindByUserAndListing(ctx context.Context, userID uint, listingID string) (*models.Like, error) {
	var doc likeDocument
	if err := r.collection.FindOne(ctx, pairFilter(userID, listingID)).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrLikeNotFound
		}
		return nil, err
	}
	like := doc.toModel()
	return &like, nil
}

// ListByListing retrieves all likes for a listing, newest first
func (r *MongoLikeRepository) ListByListing(ctx context.Context, listingID string) ([]models.Like, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, listingFilter(listingID), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeLikes(ctx, cursor)
}

// ListByUser retrieves all likes by a user, newest first
func (r *MongoLikeRepository) ListByUser(ctx context.Context, userID uint) ([]models.Like, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeLikes(ctx, cursor)
}

// CountByListing retrieves the number of likes for a listing
func (r *MongoLikeRepository) CountByListing(ctx context.Context, listingID string) (int64, error) {
	return r.collection.CountDocuments(ctx, listingFilter(listingID))
}

// HasUserLiked checks whether a like exists for the pair
func (r *MongoLikeRepository) HasUserLiked(ctx context.Context, userID uint, listingID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, pairFilter(userID, listingID))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func decodeLikes(ctx context.Context, cursor *mongo.Cursor) ([]models.Like, error) {
	var docs []likeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	likes := make([]models.Like, 0, len(docs))
	for i := range docs {
		likes = append(likes, docs[i].toModel())
	}
	return likes, nil
}
