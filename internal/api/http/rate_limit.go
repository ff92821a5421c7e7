package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/field-report-service/internal/config"
	apperrors "github.com/spec-kit/field-report-service/pkg/util"
)

// LoginRateLimiter caps login attempts per client IP within a fixed window
// using redis INCR and EXPIRE. It fails open when redis is unreachable so an
// outage never locks everyone out.
func LoginRateLimiter(client *redis.Client, cfg config.RateLimitConfig, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil || cfg.LoginAttempts <= 0 {
			return c.Next()
		}

		ctx := c.UserContext()
		key := "login_attempts:" + c.IP()
		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limit check skipped", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := client.Expire(ctx, key, cfg.Window()).Err(); err != nil {
				logger.Warn("rate limit window not set", zap.Error(err))
			}
		}
		if count > int64(cfg.LoginAttempts) {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(cfg.WindowSeconds))
			return apperrors.NewTooManyRequests("terlalu banyak percobaan login, coba lagi nanti")
		}
		return c.Next()
	}
}
