// Package middleware carries the request pre-filters that run before the
// auth core sees a request.
package middleware

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// LoginLimiter rejects excess login attempts per client IP with a fixed
// redis window (INCR + EXPIRE on first hit). It is an opaque pre-filter: the
// per-account lockout counter behind it stays untouched by this middleware.
type LoginLimiter struct {
	redis  *redis.Client
	window time.Duration
	max    int64
}

func NewLoginLimiter(redisClient *redis.Client, window time.Duration, max int) *LoginLimiter {
	return &LoginLimiter{redis: redisClient, window: window, max: int64(max)}
}

func (l *LoginLimiter) Handle(c *fiber.Ctx) error {
	ip := c.Get(fiber.HeaderXForwardedFor)
	if ip != "" {
		ip = strings.TrimSpace(strings.Split(ip, ",")[0])
	} else {
		ip = c.IP()
	}

	key := fmt.Sprintf("login_limit:%s", ip)
	ctx := c.UserContext()

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		// Redis down must not take logins down with it; the account
		// lockout counter still applies.
		log.Printf("warn: login limiter unavailable: %v", err)
		return c.Next()
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			log.Printf("warn: failed to set login limiter window: %v", err)
		}
	}

	if count > l.max {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "too many attempts, try again later",
		})
	}

	return c.Next()
}
