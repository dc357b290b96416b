package middleware

import (
	"github.com/gin-gonic/gin"

	"batdongsan-backend/internal/domains/user"
	"batdongsan-backend/internal/shared/response"
)

// RequireRoles chặn request nếu role hiện tại không nằm trong allowed set
// Phải chạy SAU AuthMiddleware
func RequireRoles(roles ...user.Role) gin.HandlerFunc {
	allowed := make(map[user.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		account, ok := CurrentUser(c)
		if !ok {
			response.Forbidden(c, "access denied")
			c.Abort()
			return
		}

		if _, ok := allowed[account.Role]; !ok {
			response.Forbidden(c, "access denied: insufficient role")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin là shortcut cho RequireRoles(admin)
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(user.RoleAdmin)
}
