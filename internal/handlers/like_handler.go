package handlers

import (
	"net/http"

	"github.com/imovia/imovia-backend/internal/cache"
	"github.com/imovia/imovia-backend/internal/models"
	"github.com/imovia/imovia-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests for listing favorites
type LikeHandler struct {
	likeService *services.LikeService
	countCache  *cache.LikeCountCache // may be nil, cache is optional
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService *services.LikeService, countCache *cache.LikeCountCache) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
		countCache:  countCache,
	}
}

// RegisterLikeRoutes registers the authenticated like routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/likes/toggle", h.ToggleLike)
	g.GET("/likes/check/:listing_id", h.CheckLike)
	g.GET("/likes/mine", h.MyLikes)
	g.GET("/likes/mine/listings", h.MyFavoriteListings)
}

// RegisterPublicLikeRoutes registers the like routes that need no session
func (h *LikeHandler) RegisterPublicLikeRoutes(g *echo.Group) {
	g.GET("/likes/for/:listing_id", h.LikeCountForListing)
}

// ToggleLike flips the authenticated user's like on a listing and returns
// the resulting state.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	userID := currentUserID(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.ToggleLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "listingId is required")
	}

	liked, err := h.likeService.Toggle(c.Request().Context(), userID, req.ListingID)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Like store unavailable")
	}

	h.countCache.InvalidateCount(c.Request().Context(), req.ListingID)

	return c.JSON(http.StatusOK, echo.Map{"liked": liked, "listingId": req.ListingID})
}

// CheckLike reports whether the authenticated user has liked a listing
func (h *LikeHandler) CheckLike(c echo.Context) error {
	userID := currentUserID(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	listingID := c.Param("listing_id")
	liked, err := h.likeService.HasLiked(c.Request().Context(), userID, listingID)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Like store unavailable")
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": liked})
}

// MyLikes returns the listing ids the authenticated user has liked,
// newest first.
func (h *LikeHandler) MyLikes(c echo.Context) error {
	userID := currentUserID(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	ids, err := h.likeService.ListingsLikedBy(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Like store unavailable")
	}

	return c.JSON(http.StatusOK, echo.Map{"listingIds": ids})
}

// MyFavoriteListings returns the authenticated user's liked listings as full
// summaries. Likes pointing at deleted listings are silently skipped.
func (h *LikeHandler) MyFavoriteListings(c echo.Context) error {
	userID := currentUserID(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	listings, err := h.likeService.FavoriteListings(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Like store unavailable")
	}

	return c.JSON(http.StatusOK, echo.Map{"listings": listings})
}

// LikeCountForListing returns the number of likes on a listing
func (h *LikeHandler) LikeCountForListing(c echo.Context) error {
	listingID := c.Param("listing_id")
	ctx := c.Request().Context()

	if count, ok := h.countCache.GetCount(ctx, listingID); ok {
		return c.JSON(http.StatusOK, echo.Map{"count": count})
	}

	count, err := h.likeService.CountFor(ctx, listingID)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Like store unavailable")
	}
	h.countCache.SetCount(ctx, listingID, count)

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}
