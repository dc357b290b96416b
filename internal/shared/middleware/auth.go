package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"batdongsan-backend/internal/domains/user"
	"batdongsan-backend/internal/shared/response"
	"batdongsan-backend/pkg/jwt"
)

// Context keys set bởi AuthMiddleware
const (
	ContextAccountKey = "account"
	ContextUserIDKey  = "userID"
	ContextRoleKey    = "role"
)

// AccountLoader load account theo id - user.Repository thỏa mãn interface này
// Tách interface nhỏ để middleware test được với stub
type AccountLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// AuthMiddleware xác thực JWT bearer token và attach account vào context
// Token hợp lệ nhưng account đã bị xóa sau khi phát hành -> 401
// Account bị block -> 403
func AuthMiddleware(jwtManager *jwt.Manager, accounts AccountLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token từ "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify chữ ký + expiry + token type
		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			// Expired và invalid đều là 401 - client refresh hoặc login lại
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "invalid user id in token")
			c.Abort()
			return
		}

		// 4. Load account - token có thể outlive account
		account, err := accounts.FindByID(c.Request.Context(), userID)
		if err != nil {
			response.Unauthorized(c, "account no longer exists")
			c.Abort()
			return
		}

		if !account.IsActive {
			response.Forbidden(c, "account has been blocked")
			c.Abort()
			return
		}

		// 5. Attach identity vào request context
		c.Set(ContextAccountKey, account)
		c.Set(ContextUserIDKey, account.ID)
		c.Set(ContextRoleKey, account.Role.String())

		c.Next()
	}
}

// CurrentUser trả về account đã được AuthMiddleware attach
func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, exists := c.Get(ContextAccountKey)
	if !exists {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok
}

// CurrentUserID trả về id của account hiện tại (uuid.Nil nếu chưa auth)
func CurrentUserID(c *gin.Context) uuid.UUID {
	v, exists := c.Get(ContextUserIDKey)
	if !exists {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
