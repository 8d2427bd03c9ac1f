package services

import (
	"context"
	"errors"

	"github.com/imovia/imovia-backend/internal/models"
	"github.com/imovia/imovia-backend/internal/repositories"
)

// LikeService enforces the like subsystem's business rules on top of the
// store: one like per (user, listing) pair, and only the owner of a like may
// remove it. Uniqueness itself is delegated to the store's conditional
// writes; the service never does a separate existence check before mutating.
type LikeService struct {
	likeRepository    repositories.LikeRepository
	listingRepository repositories.ListingRepository
}

// NewLikeService creates a new LikeService
func NewLikeService(likeRepo repositories.LikeRepository, listingRepo repositories.ListingRepository) *LikeService {
	return &LikeService{
		likeRepository:    likeRepo,
		listingRepository: listingRepo,
	}
}

// Like records the user's favorite on a listing. Returns
// models.ErrAlreadyLiked when a record for the pair already exists.
//
// The listing id is deliberately not validated against the listings
// collection; likes on deleted listings are tolerated and filtered out when
// favorites are hydrated.
func (s *LikeService) Like(ctx context.Context, userID uint, listingID string) (*models.Like, error) {
	return s.likeRepository.Insert(ctx, userID, listingID)
}

// Unlike removes a like by id on behalf of requesterID and returns the
// listing id of the removed record. Only the user who created the like may
// remove it; anyone else gets models.ErrNotLikeOwner and the record stays.
func (s *LikeService) Unlike(ctx context.Context, requesterID uint, likeID string) (string, error) {
	like, err := s.likeRepository.GetByID(ctx, likeID)
	if err != nil {
		return "", err
	}
	if like.UserID != requesterID {
		return "", models.ErrNotLikeOwner
	}

	deleted, err := s.likeRepository.DeleteByID(ctx, likeID)
	if err != nil {
		return "", err
	}
	return deleted.ListingID, nil
}

// UnlikeByListing removes the requester's own like on a listing. Returns
// models.ErrNotLiked when there is nothing to remove. Ownership is implicit:
// the delete is scoped to the requester's userID.
func (s *LikeService) UnlikeByListing(ctx context.Context, userID uint, listingID string) error {
	if _, err := s.likeRepository.DeleteByUserAndListing(ctx, userID, listingID); err != nil {
		if errors.Is(err, models.ErrLikeNotFound) {
			return models.ErrNotLiked
		}
		return err
	}
	return nil
}

// Toggle flips the like state for the pair and reports the resulting state.
// The insert is attempted first so that a concurrent duplicate resolves
// through the store's unique index, not an application-level read. When two
// toggles race, one creates and one deletes; a delete that loses the race
// finds no record, which still means the pair ended up not liked.
func (s *LikeService) Toggle(ctx context.Context, userID uint, listingID string) (bool, error) {
	_, err := s.likeRepository.Insert(ctx, userID, listingID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, models.ErrAlreadyLiked) {
		return false, err
	}

	if err := s.UnlikeByListing(ctx, userID, listingID); err != nil && !errors.Is(err, models.ErrNotLiked) {
		return false, err
	}
	return false, nil
}

// HasLiked reports whether the user has liked the listing
func (s *LikeService) HasLiked(ctx context.Context, userID uint, listingID string) (bool, error) {
	return s.likeRepository.HasUserLiked(ctx, userID, listingID)
}

// ListingsLikedBy returns the ids of the listings the user has liked,
// newest first.
func (s *LikeService) ListingsLikedBy(ctx context.Context, userID uint) ([]string, error) {
	likes, err := s.likeRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(likes))
	for i := range likes {
		ids = append(ids, likes[i].ListingID)
	}
	return ids, nil
}

// LikesFor returns the like records for a listing, newest first
func (s *LikeService) LikesFor(ctx context.Context, listingID string) ([]models.Like, error) {
	return s.likeRepository.ListByListing(ctx, listingID)
}

// CountFor returns the number of likes for a listing
func (s *LikeService) CountFor(ctx context.Context, listingID string) (int64, error) {
	return s.likeRepository.CountByListing(ctx, listingID)
}

// FavoriteListings hydrates the user's liked listings, preserving like order
// (newest like first). Liked ids whose listing no longer exists are skipped.
func (s *LikeService) FavoriteListings(ctx context.Context, userID uint) ([]models.Listing, error) {
	ids, err := s.ListingsLikedBy(ctx, userID)
	if err != nil {
		return nil, err
	}

	listings, err := s.listingRepository.GetListingsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Listing, len(listings))
	for i := range listings {
		byID[listings[i].ID.Hex()] = listings[i]
	}

	ordered := make([]models.Listing, 0, len(ids))
	for _, id := range ids {
		if listing, ok := byID[id]; ok {
			ordered = append(ordered, listing)
		}
	}
	return ordered, nil
}
