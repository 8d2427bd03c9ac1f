package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing represents a real-estate listing stored in MongoDB. The listing
// lifecycle (creation, editing, images) is owned by a separate service; this
// backend only reads listings to hydrate favorites views.
type Listing struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      uint               `json:"user_id" bson:"user_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Type        string             `json:"type" bson:"type"` // "sale" or "rent"
	Price       float64            `json:"price" bson:"price"`
	Address     string             `json:"address" bson:"address"`
	City        string             `json:"city" bson:"city"`
	ImageURLs   []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
