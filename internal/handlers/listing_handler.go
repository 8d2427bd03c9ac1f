package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/imovia/imovia-backend/internal/models"
	"github.com/imovia/imovia-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ListingHandler exposes read-only listing lookups. Listing CRUD lives in
// the listings service; this surface exists so favorites views have
// something to hydrate against.
type ListingHandler struct {
	listingRepository repositories.ListingRepository
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(listingRepo repositories.ListingRepository) *ListingHandler {
	return &ListingHandler{listingRepository: listingRepo}
}

// RegisterListingRoutes registers listing lookup routes
func (h *ListingHandler) RegisterListingRoutes(g *echo.Group) {
	g.GET("/listings", h.GetListings)
	g.GET("/listings/:id", h.GetListing)
}

// GetListing retrieves a single listing by id
func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.listingRepository.GetListingByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrListingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Listing not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, listing)
}

// GetListings retrieves listings with skip/limit pagination
func (h *ListingHandler) GetListings(c echo.Context) error {
	skip, err := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}

	listings, err := h.listingRepository.GetAllListings(c.Request().Context(), skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"listings": listings})
}
