package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"batdongsan-backend/pkg/jwt"
)

// Cookie names - phải khớp với cookies do auth handlers set
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// RouteGuardConfig phân loại các page routes cho edge guard
type RouteGuardConfig struct {
	// Prefix match - cần đăng nhập
	ProtectedRoutes []string
	// Prefix match - cần role admin (trừ AdminLoginPath)
	AdminPrefix string
	// Exact match - trang login/register, user đã đăng nhập không được vào
	AuthRoutes []string

	LoginPath      string
	AdminLoginPath string
	HomePath       string
}

// DefaultRouteGuardConfig là bản đồ route của web client
func DefaultRouteGuardConfig() RouteGuardConfig {
	return RouteGuardConfig{
		ProtectedRoutes: []string{
			"/dashboard",
			"/dang-tin",
			"/quan-ly-tin",
			"/tai-khoan",
			"/yeu-thich",
			"/cai-dat",
		},
		AdminPrefix:    "/admin",
		AuthRoutes:     []string{"/dang-nhap", "/dang-ky", "/quen-mat-khau"},
		LoginPath:      "/dang-nhap",
		AdminLoginPath: "/admin/login",
		HomePath:       "/",
	}
}

// RouteGuard là edge guard cho server-rendered pages.
//
// Guard đọc access token từ cookie và decode payload KHÔNG verify chữ ký -
// đây chỉ là UX optimization để redirect sớm trước khi render page.
// API middleware (AuthMiddleware) mới là nơi xác thực thật sự.
//
// Fail closed: token malformed được đối xử như không có token,
// không bao giờ trả error page - chỉ redirect.
func RouteGuard(cfg RouteGuardConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		token, _ := c.Cookie(AccessTokenCookie)
		isAuthenticated := token != ""

		var userRole string
		if token != "" {
			claims, err := jwt.DecodeUnverified(token)
			if err != nil {
				// Undecodable == no token
				isAuthenticated = false
			} else {
				userRole = claims.Role

				// Token hết hạn: clear cookies + về trang login,
				// bất kể route class
				if claims.IsExpired() {
					clearAuthCookies(c)
					redirect(c, cfg.LoginPath)
					return
				}
			}
		}

		isAdminRoute := strings.HasPrefix(path, cfg.AdminPrefix) && path != cfg.AdminLoginPath
		isProtectedRoute := hasAnyPrefix(path, cfg.ProtectedRoutes)
		isAuthRoute := containsExact(cfg.AuthRoutes, path)

		// PROTECTED: chưa đăng nhập -> login, giữ lại intended path
		if isProtectedRoute && !isAuthenticated {
			redirect(c, cfg.LoginPath+"?redirect="+url.QueryEscape(path))
			return
		}

		if isAdminRoute {
			if !isAuthenticated {
				redirect(c, cfg.AdminLoginPath+"?redirect="+url.QueryEscape(path))
				return
			}
			if userRole != "admin" {
				// Đã đăng nhập nhưng không phải admin
				redirect(c, cfg.HomePath+"?error=unauthorized")
				return
			}
		}

		// AUTH-ONLY: user đã đăng nhập không cần thấy trang login/register
		if isAuthRoute && isAuthenticated {
			redirect(c, cfg.HomePath)
			return
		}

		c.Next()
	}
}

// ClearAuthCookies xóa cả hai token cookies (logout + expired token)
func ClearAuthCookies(c *gin.Context) {
	clearAuthCookies(c)
}

func clearAuthCookies(c *gin.Context) {
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", false, false)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", false, true)
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
	c.Abort()
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func containsExact(routes []string, path string) bool {
	for _, r := range routes {
		if r == path {
			return true
		}
	}
	return false
}
