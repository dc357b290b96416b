package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"batdongsan-backend/internal/config"
	infraCache "batdongsan-backend/internal/infrastructure/cache"
	"batdongsan-backend/internal/infrastructure/database"
	"batdongsan-backend/internal/infrastructure/email"
	"batdongsan-backend/pkg/cache"
	"batdongsan-backend/pkg/jwt"

	"batdongsan-backend/internal/domains/favorite"
	favoriteHandler "batdongsan-backend/internal/domains/favorite/handler"
	favoriteRepo "batdongsan-backend/internal/domains/favorite/repository"
	favoriteService "batdongsan-backend/internal/domains/favorite/service"
	"batdongsan-backend/internal/domains/property"
	propertyHandler "batdongsan-backend/internal/domains/property/handler"
	propertyRepo "batdongsan-backend/internal/domains/property/repository"
	propertyService "batdongsan-backend/internal/domains/property/service"
	"batdongsan-backend/internal/domains/user"
	userHandler "batdongsan-backend/internal/domains/user/handler"
	userRepo "batdongsan-backend/internal/domains/user/repository"
	userService "batdongsan-backend/internal/domains/user/service"
)

// Container chứa TẤT CẢ dependencies của application.
// Init theo thứ tự: config -> infrastructure -> repositories -> services -> handlers
type Container struct {
	// Infrastructure - singleton, shared across domains
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Mailer     email.Mailer

	// Repositories
	UserRepo     user.Repository
	PropertyRepo property.Repository
	FavoriteRepo favorite.Repository

	// Services
	UserService     user.Service
	PropertyService property.Service
	FavoriteService favorite.Service

	// Handlers
	UserHandler     *userHandler.UserHandler
	PropertyHandler *propertyHandler.PropertyHandler
	FavoriteHandler *favoriteHandler.FavoriteHandler
}

// New khởi tạo toàn bộ dependency graph
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if err := c.initInfrastructure(ctx); err != nil {
		return nil, fmt.Errorf("init infrastructure: %w", err)
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("Container initialized")
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	// Database - bắt buộc, fail fast
	c.DB = database.NewPostgresDB(c.Config.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	// Redis - optional, app vẫn chạy được khi cache chết
	redisCache, err := infraCache.NewRedisCache(c.Config.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without cache")
		c.Cache = cache.NewNoopCache()
	} else {
		c.Cache = redisCache
	}

	c.JWTManager = jwt.NewManager(
		c.Config.JWT.Secret,
		c.Config.JWT.AccessExpiry,
		c.Config.JWT.RefreshExpiry,
	)

	c.Mailer = email.NewLogMailer(c.Config.Email.From)

	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = userRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.PropertyRepo = propertyRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.FavoriteRepo = favoriteRepo.NewPostgresRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Mailer)
	c.PropertyService = propertyService.NewPropertyService(c.PropertyRepo)
	c.FavoriteService = favoriteService.NewFavoriteService(c.FavoriteRepo, c.PropertyRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.PropertyHandler = propertyHandler.NewPropertyHandler(c.PropertyService)
	c.FavoriteHandler = favoriteHandler.NewFavoriteHandler(c.FavoriteService)
}

// Cleanup đóng các kết nối khi shutdown, ngược thứ tự init
func (c *Container) Cleanup() {
	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close cache")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("Container cleaned up")
}
