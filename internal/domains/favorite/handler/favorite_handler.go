package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"batdongsan-backend/internal/domains/favorite"
	"batdongsan-backend/internal/domains/property"
	"batdongsan-backend/internal/shared/middleware"
	"batdongsan-backend/internal/shared/response"
)

// FavoriteHandler xử lý HTTP requests cho tin đã lưu
type FavoriteHandler struct {
	service favorite.Service
}

func NewFavoriteHandler(service favorite.Service) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// Add godoc
// POST /api/v1/favorites
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req favorite.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	result, err := h.service.Add(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Property saved to favorites", result)
}

// Remove godoc
// DELETE /api/v1/favorites/:propertyId
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, err := uuid.Parse(c.Param("propertyId"))
	if err != nil {
		response.BadRequest(c, "Invalid property ID")
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, propertyID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Property removed from favorites", nil)
}

// ListMine godoc
// GET /api/v1/favorites
func (h *FavoriteHandler) ListMine(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req favorite.ListFavoritesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.SetDefaults()

	result, err := h.service.ListMine(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Favorites retrieved", result.Favorites, result.Pagination)
}

// Check godoc
// GET /api/v1/favorites/:propertyId/check
func (h *FavoriteHandler) Check(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, err := uuid.Parse(c.Param("propertyId"))
	if err != nil {
		response.BadRequest(c, "Invalid property ID")
		return
	}

	favorited, err := h.service.IsFavorited(c.Request.Context(), userID, propertyID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	count, err := h.service.CountForProperty(c.Request.Context(), propertyID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Favorite status retrieved", gin.H{
		"isFavorited":   favorited,
		"favoriteCount": count,
	})
}

// handleError map domain errors sang HTTP status codes
func (h *FavoriteHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, favorite.ErrAlreadyFavorited):
		response.Conflict(c, "Property already in favorites")
	case errors.Is(err, favorite.ErrFavoriteNotFound):
		response.NotFound(c, "Favorite not found")
	case errors.Is(err, property.ErrPropertyNotFound):
		response.NotFound(c, "Property not found")
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled service error")
		response.InternalServerError(c, "Something went wrong")
	}
}
