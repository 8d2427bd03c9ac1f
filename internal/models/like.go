package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like represents one user's favorite on one listing, stored in MongoDB.
// At most one record may exist per (user, listing) pair; the likes collection
// carries a unique compound index on userId+listingId to enforce that.
type Like struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    uint               `json:"userId" bson:"userId"`
	ListingID string             `json:"listingId" bson:"listingId"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// ToggleLikeRequest defines the request body for toggling a like on a listing
type ToggleLikeRequest struct {
	ListingID string `json:"listingId" validate:"required"`
}
