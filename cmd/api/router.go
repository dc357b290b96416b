package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"batdongsan-backend/internal/shared/middleware"
	"batdongsan-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupPropertyRoutes(v1, c)
		setupFavoriteRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	setupPageRoutes(router)

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/logout", c.UserHandler.Logout)
		auth.POST("/refresh", c.UserHandler.RefreshToken)
		auth.POST("/forgot-password", c.UserHandler.ForgotPassword)
		auth.POST("/reset-password", c.UserHandler.ResetPassword)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager, c.UserRepo))
	{
		users.GET("/me", c.UserHandler.GetProfile)
		users.PUT("/me", c.UserHandler.UpdateProfile)
		users.PUT("/me/password", c.UserHandler.ChangePassword)
	}
}

// ========================================
// PROPERTY ROUTES
// ========================================
func setupPropertyRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := middleware.AuthMiddleware(c.JWTManager, c.UserRepo)

	properties := v1.Group("/properties")
	{
		// Public - không cần token
		properties.GET("", c.PropertyHandler.List)
		properties.GET("/owner/:ownerId", c.PropertyHandler.ListByOwner)

		// Authenticated
		properties.GET("/me", auth, c.PropertyHandler.MyProperties)
		properties.POST("", auth, c.PropertyHandler.Create)
		properties.PUT("/:id", auth, c.PropertyHandler.Update)
		properties.DELETE("/:id", auth, c.PropertyHandler.Delete)

		// Đặt sau /me và /owner để không nuốt các route cụ thể hơn
		properties.GET("/:id", c.PropertyHandler.Get)
	}
}

// ========================================
// FAVORITE ROUTES
// ========================================
func setupFavoriteRoutes(v1 *gin.RouterGroup, c *container.Container) {
	favorites := v1.Group("/favorites")
	favorites.Use(middleware.AuthMiddleware(c.JWTManager, c.UserRepo))
	{
		favorites.GET("", c.FavoriteHandler.ListMine)
		favorites.POST("", c.FavoriteHandler.Add)
		favorites.DELETE("/:propertyId", c.FavoriteHandler.Remove)
		favorites.GET("/:propertyId/check", c.FavoriteHandler.Check)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(c.JWTManager, c.UserRepo),
		middleware.RequireAdmin(),
	)
	{
		admin.GET("/users", c.UserHandler.ListUsers)
		admin.GET("/users/statistics", c.UserHandler.GetStatistics)
		admin.GET("/users/:id", c.UserHandler.GetUser)
		admin.PUT("/users/:id", c.UserHandler.UpdateUser)
		admin.DELETE("/users/:id", c.UserHandler.DeleteUser)
		admin.PUT("/users/:id/block", c.UserHandler.BlockUser)
		admin.PUT("/users/:id/unblock", c.UserHandler.UnblockUser)
		admin.PUT("/users/:id/role", c.UserHandler.UpdateUserRole)
		admin.PUT("/users/:id/verify", c.UserHandler.VerifyUser)
		admin.PUT("/users/:id/unverify", c.UserHandler.UnverifyUser)

		admin.GET("/properties/statistics", c.PropertyHandler.GetStatistics)
		admin.PUT("/properties/:id/verify", c.PropertyHandler.Verify)
		admin.PUT("/properties/:id/unverify", c.PropertyHandler.Unverify)
	}
}

// ========================================
// PAGE ROUTES (EDGE GUARD)
// ========================================

// setupPageRoutes mount route guard lên các web pages.
// Pages được render bởi frontend - server chỉ trả placeholder,
// nhưng guard vẫn chạy redirect logic trước khi tới handler.
func setupPageRoutes(router *gin.Engine) {
	guard := middleware.RouteGuard(middleware.DefaultRouteGuardConfig())

	pages := router.Group("/")
	pages.Use(guard)
	{
		for _, path := range []string{
			"/",
			"/dang-nhap",
			"/dang-ky",
			"/quen-mat-khau",
			"/dashboard",
			"/dang-tin",
			"/quan-ly-tin",
			"/tai-khoan",
			"/yeu-thich",
			"/cai-dat",
			"/admin/login",
			"/admin/dashboard",
			"/admin/properties",
			"/admin/users",
		} {
			pages.GET(path, pageHandler(path))
		}
	}
}

func pageHandler(page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": page})
	}
}

// healthCheckHandler kiểm tra DB + cache connectivity
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "ok"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "down"
		}

		cacheStatus := "ok"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":   dbStatus,
			"version":  c.Config.App.Version,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
