package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/imovia/imovia-backend/internal/models"
	"github.com/imovia/imovia-backend/internal/services"
	"github.com/imovia/imovia-backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memLikeRepo is a minimal in-memory LikeRepository for handler tests. Like
// the Mongo implementation, every mutation is a single conditional action
// under the lock.
type memLikeRepo struct {
	mu   sync.Mutex
	byID map[string]models.Like
	seq  int
}

func newMemLikeRepo() *memLikeRepo {
	return &memLikeRepo{byID: make(map[string]models.Like)}
}

func (m *memLikeRepo) pairLocked(userID uint, listingID string) (models.Like, bool) {
	for _, like := range m.byID {
		if like.UserID == userID && like.ListingID == listingID {
			return like, true
		}
	}
	return models.Like{}, false
}

func (m *memLikeRepo) Insert(ctx context.Context, userID uint, listingID string) (*models.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pairLocked(userID, listingID); ok {
		return nil, models.ErrAlreadyLiked
	}
	m.seq++
	like := models.Like{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Unix(int64(m.seq), 0),
	}
	m.byID[like.ID.Hex()] = like
	return &like, nil
}

func (m *memLikeRepo) GetByID(ctx context.Context, id string) (*models.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	like, ok := m.byID[id]
	if !ok {
		return nil, models.ErrLikeNotFound
	}
	return &like, nil
}

func (m *memLikeRepo) DeleteByID(ctx context.Context, id string) (*models.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	like, ok := m.byID[id]
	if !ok {
		return nil, models.ErrLikeNotFound
	}
	delete(m.byID, id)
	return &like, nil
}

func (m *memLikeRepo) DeleteByUserAndListing(ctx context.Context, userID uint, listingID string) (*models.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	like, ok := m.pairLocked(userID, listingID)
	if !ok {
		return nil, models.ErrLikeNotFound
	}
	delete(m.byID, like.ID.Hex())
	return &like, nil
}

func (m *memLikeRepo) FindByUserAndListing(ctx context.Context, userID uint, listingID string) (*models.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	like, ok := m.pairLocked(userID, listingID)
	if !ok {
		return nil, models.ErrLikeNotFound
	}
	return &like, nil
}

func (m *memLikeRepo) ListByListing(ctx context.Context, listingID string) ([]models.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	likes := []models.Like{}
	for _, like := range m.byID {
		if like.ListingID == listingID {
			likes = append(likes, like)
		}
	}
	return likes, nil
}

func (m *memLikeRepo) ListByUser(ctx context.Context, userID uint) ([]models.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	likes := []models.Like{}
	for _, like := range m.byID {
		if like.UserID == userID {
			likes = append(likes, like)
		}
	}
	return likes, nil
}

func (m *memLikeRepo) CountByListing(ctx context.Context, listingID string) (int64, error) {
	likes, _ := m.ListByListing(ctx, listingID)
	return int64(len(likes)), nil
}

func (m *memLikeRepo) HasUserLiked(ctx context.Context, userID uint, listingID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.pairLocked(userID, listingID)
	return ok, nil
}

// memListingRepo resolves no listings; favorites hydration is covered by
// service tests.
type memListingRepo struct{}

func (memListingRepo) GetListingByID(ctx context.Context, id string) (*models.Listing, error) {
	return nil, models.ErrListingNotFound
}

func (memListingRepo) GetListingsByIDs(ctx context.Context, ids []string) ([]models.Listing, error) {
	return []models.Listing{}, nil
}

func (memListingRepo) GetAllListings(ctx context.Context, skip, limit int64) ([]models.Listing, error) {
	return []models.Listing{}, nil
}

// asUser simulates the JWT middleware resolving the given user
func asUser(userID uint) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user", &models.JwtCustomClaims{UserID: userID})
			return next(c)
		}
	}
}

func newTestServer(repo *memLikeRepo, userID uint) *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()

	likeHandler := NewLikeHandler(services.NewLikeService(repo, memListingRepo{}), nil)

	public := e.Group("")
	likeHandler.RegisterPublicLikeRoutes(public)

	api := e.Group("")
	if userID != 0 {
		api.Use(asUser(userID))
	}
	likeHandler.RegisterLikeRoutes(api)

	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestToggleLikeUnauthenticated(t *testing.T) {
	repo := newMemLikeRepo()
	e := newTestServer(repo, 0)

	rec := doJSON(e, http.MethodPost, "/likes/toggle", `{"listingId":"L1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	count, _ := repo.CountByListing(context.Background(), "L1")
	assert.Zero(t, count, "rejected request must not create a record")
}

func TestToggleLikeMissingListingID(t *testing.T) {
	e := newTestServer(newMemLikeRepo(), 1)

	rec := doJSON(e, http.MethodPost, "/likes/toggle", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleLikeFlow(t *testing.T) {
	repo := newMemLikeRepo()
	e := newTestServer(repo, 1)

	rec := doJSON(e, http.MethodPost, "/likes/toggle", `{"listingId":"L1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Liked     bool   `json:"liked"`
		ListingID string `json:"listingId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Liked)
	assert.Equal(t, "L1", resp.ListingID)

	rec = doJSON(e, http.MethodGet, "/likes/check/L1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"liked":true}`, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/likes/toggle", `{"listingId":"L1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Liked)

	rec = doJSON(e, http.MethodGet, "/likes/check/L1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"liked":false}`, rec.Body.String())

	count, _ := repo.CountByListing(context.Background(), "L1")
	assert.Zero(t, count)
}

func TestMyLikes(t *testing.T) {
	repo := newMemLikeRepo()
	e := newTestServer(repo, 1)

	for _, id := range []string{"L1", "L2"} {
		rec := doJSON(e, http.MethodPost, "/likes/toggle", `{"listingId":"`+id+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	// another user's like must not leak into user 1's list
	_, err := repo.Insert(context.Background(), 2, "L3")
	require.NoError(t, err)

	rec := doJSON(e, http.MethodGet, "/likes/mine", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ListingIDs []string `json:"listingIds"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []string{"L1", "L2"}, resp.ListingIDs)
}

func TestLikeCountIsPublic(t *testing.T) {
	repo := newMemLikeRepo()
	_, err := repo.Insert(context.Background(), 1, "L1")
	require.NoError(t, err)
	_, err = repo.Insert(context.Background(), 2, "L1")
	require.NoError(t, err)

	// no auth middleware and no session on this server
	e := newTestServer(repo, 0)

	rec := doJSON(e, http.MethodGet, "/likes/for/L1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":2}`, rec.Body.String())
}

func TestMyFavoriteListingsEmptyWhenOrphaned(t *testing.T) {
	repo := newMemLikeRepo()
	e := newTestServer(repo, 1)

	rec := doJSON(e, http.MethodPost, "/likes/toggle", `{"listingId":"L1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/likes/mine/listings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"listings":[]}`, rec.Body.String())
}
