package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"batdongsan-backend/internal/domains/user"
	"batdongsan-backend/internal/shared/middleware"
	"batdongsan-backend/internal/shared/response"
	"batdongsan-backend/pkg/jwt"
)

// UserHandler xử lý HTTP requests cho auth + user management
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTH ENDPOINTS
// ========================================

// Register godoc
// POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setAuthCookies(c, result)
	response.Success(c, http.StatusCreated, "Registered successfully", result)
}

// Login godoc
// POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setAuthCookies(c, result)
	response.Success(c, http.StatusOK, "Logged in successfully", result)
}

// RefreshToken godoc
// POST /api/v1/auth/refresh
//
// Refresh token lấy từ body hoặc cookie (web client gửi cookie)
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req user.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		if cookie, cookieErr := c.Cookie(middleware.RefreshTokenCookie); cookieErr == nil {
			req.RefreshToken = cookie
		}
	}
	if req.RefreshToken == "" {
		response.Unauthorized(c, "Refresh token is required")
		return
	}

	result, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setAuthCookies(c, result)
	response.Success(c, http.StatusOK, "Token refreshed", result)
}

// Logout godoc
// POST /api/v1/auth/logout
//
// JWT là stateless nên logout chỉ clear cookies phía client
func (h *UserHandler) Logout(c *gin.Context) {
	middleware.ClearAuthCookies(c)
	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// ForgotPassword godoc
// POST /api/v1/auth/forgot-password
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req user.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req); err != nil {
		h.handleError(c, err)
		return
	}

	// Luôn trả cùng một message để không lộ email nào tồn tại
	response.Success(c, http.StatusOK, "If the email exists, a reset link has been sent", nil)
}

// ResetPassword godoc
// POST /api/v1/auth/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req user.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password reset successfully", nil)
}

// ChangePassword godoc
// PUT /api/v1/users/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req user.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password changed successfully", nil)
}

// ========================================
// PROFILE ENDPOINTS
// ========================================

// GetProfile godoc
// GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateProfile godoc
// PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// ========================================
// ADMIN ENDPOINTS
// ========================================

// ListUsers godoc
// GET /api/v1/admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req user.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.SetDefaults()
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	result, err := h.service.ListUsers(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Users retrieved", result.Users, result.Pagination)
}

// GetUser godoc
// GET /api/v1/admin/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	result, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved", result)
}

// UpdateUser godoc
// PUT /api/v1/admin/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	result, err := h.service.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User updated", result)
}

// DeleteUser godoc
// DELETE /api/v1/admin/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User deleted", nil)
}

// BlockUser godoc
// PUT /api/v1/admin/users/:id/block
func (h *UserHandler) BlockUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	result, err := h.service.BlockUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User blocked", result)
}

// UnblockUser godoc
// PUT /api/v1/admin/users/:id/unblock
func (h *UserHandler) UnblockUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	result, err := h.service.UnblockUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User unblocked", result)
}

// UpdateUserRole godoc
// PUT /api/v1/admin/users/:id/role
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	actorID := middleware.CurrentUserID(c)
	if actorID == uuid.Nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req user.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	result, err := h.service.UpdateUserRole(c.Request.Context(), actorID, userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User role updated", result)
}

// VerifyUser godoc
// PUT /api/v1/admin/users/:id/verify
func (h *UserHandler) VerifyUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	result, err := h.service.VerifyUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User verified", result)
}

// UnverifyUser godoc
// PUT /api/v1/admin/users/:id/unverify
func (h *UserHandler) UnverifyUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	result, err := h.service.UnverifyUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User unverified", result)
}

// GetStatistics godoc
// GET /api/v1/admin/users/statistics
func (h *UserHandler) GetStatistics(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Statistics retrieved", stats)
}

// ========================================
// HELPERS
// ========================================

// setAuthCookies set cả access lẫn refresh token cookies.
// Refresh token là httpOnly; access token để web client đọc được.
func (h *UserHandler) setAuthCookies(c *gin.Context, result *user.LoginResponse) {
	accessMaxAge := 7 * 24 * 60 * 60   // 7 days
	refreshMaxAge := 30 * 24 * 60 * 60 // 30 days

	c.SetCookie(middleware.AccessTokenCookie, result.AccessToken, accessMaxAge, "/", "", false, false)
	if result.RefreshToken != "" {
		c.SetCookie(middleware.RefreshTokenCookie, result.RefreshToken, refreshMaxAge, "/", "", false, true)
	}
}

// handleError map domain errors sang HTTP status codes
func (h *UserHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "User not found")
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(c, "Email already registered")
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, user.ErrUserInactive):
		response.Forbidden(c, "Account has been blocked")
	case errors.Is(err, user.ErrInvalidToken), errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrTokenExpired):
		response.Unauthorized(c, "Invalid or expired token")
	case errors.Is(err, user.ErrSamePassword):
		response.BadRequest(c, "New password must be different from current password")
	case errors.Is(err, user.ErrPasswordMismatch):
		response.Unauthorized(c, "Current password is incorrect")
	case errors.Is(err, user.ErrCannotModifyAdmin):
		response.Forbidden(c, "Cannot modify an admin account")
	case errors.Is(err, user.ErrCannotChangeOwn):
		response.Forbidden(c, "Cannot change your own role")
	case errors.Is(err, user.ErrForbidden):
		response.Forbidden(c, "Access denied")
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled service error")
		response.InternalServerError(c, "Something went wrong")
	}
}
