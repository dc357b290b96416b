package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"batdongsan-backend/internal/domains/property"
	"batdongsan-backend/internal/shared/middleware"
	"batdongsan-backend/internal/shared/response"
)

// PropertyHandler xử lý HTTP requests cho tin đăng bất động sản
type PropertyHandler struct {
	service property.Service
}

func NewPropertyHandler(service property.Service) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// ========================================
// PUBLIC ENDPOINTS
// ========================================

// List godoc
// GET /api/v1/properties
func (h *PropertyHandler) List(c *gin.Context) {
	var req property.ListPropertiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.SetDefaults()
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Properties retrieved", result.Properties, result.Pagination)
}

// Get godoc
// GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid property ID")
		return
	}

	result, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Property retrieved", result)
}

// ListByOwner godoc
// GET /api/v1/properties/owner/:ownerId
func (h *PropertyHandler) ListByOwner(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("ownerId"))
	if err != nil {
		response.BadRequest(c, "Invalid owner ID")
		return
	}

	var req property.ListPropertiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.SetDefaults()
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	result, err := h.service.ListByOwner(c.Request.Context(), ownerID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Properties retrieved", result.Properties, result.Pagination)
}

// ========================================
// AUTHENTICATED ENDPOINTS
// ========================================

// Create godoc
// POST /api/v1/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req property.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		// ozzo errors liệt kê từng field vi phạm
		response.ValidationError(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Property created", result)
}

// Update godoc
// PUT /api/v1/properties/:id
func (h *PropertyHandler) Update(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid property ID")
		return
	}

	var req property.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Property updated", result)
}

// Delete godoc
// DELETE /api/v1/properties/:id?hard=true
func (h *PropertyHandler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid property ID")
		return
	}

	hard := c.Query("hard") == "true"

	if err := h.service.Delete(c.Request.Context(), actor, id, hard); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Property deleted", nil)
}

// MyProperties godoc
// GET /api/v1/properties/me
func (h *PropertyHandler) MyProperties(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req property.ListPropertiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.SetDefaults()
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	result, err := h.service.MyProperties(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Properties retrieved", result.Properties, result.Pagination)
}

// ========================================
// ADMIN ENDPOINTS
// ========================================

// Verify godoc
// PUT /api/v1/admin/properties/:id/verify
func (h *PropertyHandler) Verify(c *gin.Context) {
	adminID := middleware.CurrentUserID(c)
	if adminID == uuid.Nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid property ID")
		return
	}

	result, err := h.service.Verify(c.Request.Context(), adminID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Property verified", result)
}

// Unverify godoc
// PUT /api/v1/admin/properties/:id/unverify
func (h *PropertyHandler) Unverify(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid property ID")
		return
	}

	result, err := h.service.Unverify(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Property unverified", result)
}

// GetStatistics godoc
// GET /api/v1/admin/properties/statistics
func (h *PropertyHandler) GetStatistics(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Statistics retrieved", stats)
}

// handleError map domain errors sang HTTP status codes
func (h *PropertyHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, property.ErrPropertyNotFound):
		response.NotFound(c, "Property not found")
	case errors.Is(err, property.ErrPropertyInactive):
		response.NotFound(c, "Property is no longer available")
	case errors.Is(err, property.ErrForbidden):
		response.Forbidden(c, "You do not have permission to modify this property")
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled service error")
		response.InternalServerError(c, "Something went wrong")
	}
}
