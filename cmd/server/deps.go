package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/config"
	"github.com/postboard/postboard/internal/domain"
	"github.com/postboard/postboard/internal/handler"
	"github.com/postboard/postboard/internal/middleware"
	"github.com/postboard/postboard/internal/pkg/database"
	"github.com/postboard/postboard/internal/repository/memory"
	"github.com/postboard/postboard/internal/service"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	// Optional; nil unless rate limiting is enabled and Redis answered
	Redis *database.RedisDB

	// Repositories
	UserRepo *memory.UserRepository
	PostRepo *memory.PostRepository

	// Services
	UserService  *service.UserService
	PostService  *service.PostService
	QueryService *service.QueryService

	// Handlers
	Handlers *Handlers

	// RateLimit is nil when rate limiting is disabled
	RateLimit fiber.Handler
}

// Handlers groups the HTTP handlers
type Handlers struct {
	Health *handler.HealthHandler
	Docs   *handler.DocsHandler
	Users  *handler.UsersHandler
	Posts  *handler.PostsHandler
}

// initDependencies builds the stores, services and handlers
func initDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	var seedUsers []domain.User
	var seedPosts []domain.Post
	if cfg.Store.SeedEnabled {
		seedUsers, seedPosts = domain.SeedUsers(), domain.SeedPosts()
	}

	deps.UserRepo = memory.NewUserRepository(seedUsers)
	deps.PostRepo = memory.NewPostRepository(seedPosts)
	logger.Info("in-memory stores ready",
		zap.Int("users", deps.UserRepo.Count()),
		zap.Int("posts", deps.PostRepo.Count()),
	)

	deps.UserService = service.NewUserService(deps.UserRepo)
	deps.PostService = service.NewPostService(deps.PostRepo)
	deps.QueryService = service.NewQueryService(deps.UserRepo, deps.PostRepo)

	if cfg.RateLimit.Enabled {
		if err := deps.initRateLimit(ctx); err != nil {
			return nil, err
		}
	}

	var redisPinger handler.Pinger
	if deps.Redis != nil {
		redisPinger = deps.Redis
	}

	deps.Handlers = &Handlers{
		Health: handler.NewHealthHandler(map[string]handler.RecordCounter{
			"users": deps.UserRepo,
			"posts": deps.PostRepo,
		}, redisPinger, version),
		Docs:  handler.NewDocsHandler(),
		Users: handler.NewUsersHandler(deps.UserService, deps.PostService, deps.QueryService, logger),
		Posts: handler.NewPostsHandler(deps.PostService, deps.QueryService, logger),
	}

	return deps, nil
}

// initRateLimit prefers the shared Redis limiter and falls back to a per-process one
func (d *Dependencies) initRateLimit(ctx context.Context) error {
	rlConfig := middleware.DefaultRateLimitConfig()
	rlConfig.Max = d.Config.RateLimit.Max
	rlConfig.Window = d.Config.RateLimit.Window
	rlConfig.Logger = d.Logger

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	redisDB, err := database.NewRedis(pingCtx, d.Config.Redis)
	if err != nil {
		if d.Config.IsProduction() {
			return fmt.Errorf("rate limiting needs redis: %w", err)
		}
		d.Logger.Warn("redis unavailable, rate limiting per process", zap.Error(err))
		d.RateLimit = middleware.LocalRateLimit(rlConfig)
		return nil
	}

	d.Redis = redisDB
	d.RateLimit = middleware.NewRateLimitMiddleware(redisDB.Client, rlConfig).Handler()
	return nil
}

// Close releases external connections
func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
