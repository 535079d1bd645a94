package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/pkg/circuitbreaker"
	apperrors "github.com/postboard/postboard/internal/pkg/errors"
)

// RateLimitConfig configures the rate limiter
type RateLimitConfig struct {
	// Max requests per window
	Max int
	// Window duration
	Window time.Duration
	// KeyGenerator identifies the caller
	KeyGenerator func(*fiber.Ctx) string
	// Skip function
	Skip func(*fiber.Ctx) bool
	// LimitReached writes the rejection response
	LimitReached fiber.Handler
	// Timeout bounds each Redis round trip
	Timeout time.Duration
	// Logger receives Redis failures; the request is let through on failure
	Logger *zap.Logger
	// Breaker stops calling Redis after repeated failures. Nil builds a default one.
	Breaker *circuitbreaker.CircuitBreaker
}

// DefaultRateLimitConfig returns default rate limit config
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Max:    100,
		Window: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Skip: HealthSkipper,
		LimitReached: func(c *fiber.Ctx) error {
			appErr := apperrors.RateLimited()
			return c.Status(appErr.StatusCode).JSON(fiber.Map{
				"error":   "Too Many Requests",
				"message": appErr.Message,
			})
		},
		Timeout: 100 * time.Millisecond,
		Logger:  zap.NewNop(),
	}
}

// RateLimitMiddleware is a sliding-window rate limiter shared across instances through Redis
type RateLimitMiddleware struct {
	redis   redis.Cmdable
	config  RateLimitConfig
	breaker *circuitbreaker.CircuitBreaker
	now     func() time.Time
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(redisClient redis.Cmdable, config ...RateLimitConfig) *RateLimitMiddleware {
	cfg := DefaultRateLimitConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	breaker := cfg.Breaker
	if breaker == nil {
		logger := cfg.Logger
		bc := circuitbreaker.DefaultConfig("redis-ratelimit")
		bc.OnStateChange = func(name string, from, to circuitbreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		}
		breaker = circuitbreaker.New(bc)
	}

	return &RateLimitMiddleware{
		redis:   redisClient,
		config:  cfg,
		breaker: breaker,
		now:     time.Now,
	}
}

// Handler returns the rate limit handler
func (m *RateLimitMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.config.Skip != nil && m.config.Skip(c) {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s", m.config.KeyGenerator(c))

		now := m.now()
		windowStart := now.Add(-m.config.Window).UnixNano()
		reset := strconv.FormatInt(now.Add(m.config.Window).Unix(), 10)

		ctx, cancel := context.WithTimeout(context.Background(), m.config.Timeout)
		defer cancel()

		requestID := GetRequestID(c)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		member := fmt.Sprintf("%d:%s", now.UnixNano(), requestID)

		// Trim, record and count in one MULTI so concurrent requests see each other
		var card *redis.IntCmd
		err := m.breaker.Execute(ctx, func(ctx context.Context) error {
			_, err := m.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(windowStart, 10))
				pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
				card = pipe.ZCard(ctx, key)
				pipe.Expire(ctx, key, m.config.Window*2)
				return nil
			})
			return err
		})
		if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
			return c.Next()
		}
		if err != nil {
			m.config.Logger.Warn("rate limit check failed", zap.Error(err))
			return c.Next()
		}
		count := card.Val()

		c.Set("X-RateLimit-Limit", strconv.Itoa(m.config.Max))
		c.Set("X-RateLimit-Reset", reset)

		if count > int64(m.config.Max) {
			// Rejected requests do not use up the window
			if err := m.redis.ZRem(ctx, key, member).Err(); err != nil {
				m.config.Logger.Warn("rate limit rollback failed", zap.Error(err))
			}
			c.Set("X-RateLimit-Remaining", "0")
			c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(int64(m.config.Window.Seconds()), 10))
			return m.config.LimitReached(c)
		}

		c.Set("X-RateLimit-Remaining", strconv.Itoa(m.config.Max-int(count)))

		return c.Next()
	}
}

// LocalRateLimit limits per process with fiber's in-memory limiter.
// It is used when no Redis is reachable.
func LocalRateLimit(config RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          config.Max,
		Expiration:   config.Window,
		KeyGenerator: config.KeyGenerator,
		Next:         config.Skip,
		LimitReached: config.LimitReached,
	})
}
