package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiterApp(t *testing.T, max int) (*fiber.App, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewLoginLimiter(client, 15*time.Minute, max)

	app := fiber.New()
	app.Post("/login", limiter.Handle, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app, mr
}

func attempt(t *testing.T, app *fiber.App, ip string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	if ip != "" {
		req.Header.Set(fiber.HeaderXForwardedFor, ip)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestLoginLimiter_AllowsUpToMax(t *testing.T) {
	app, _ := newLimiterApp(t, 3)

	for i := 0; i < 3; i++ {
		assert.Equal(t, fiber.StatusOK, attempt(t, app, "10.0.0.1"))
	}
	assert.Equal(t, fiber.StatusTooManyRequests, attempt(t, app, "10.0.0.1"))
}

func TestLoginLimiter_PerIPIsolation(t *testing.T) {
	app, _ := newLimiterApp(t, 2)

	assert.Equal(t, fiber.StatusOK, attempt(t, app, "10.0.0.1"))
	assert.Equal(t, fiber.StatusOK, attempt(t, app, "10.0.0.1"))
	assert.Equal(t, fiber.StatusTooManyRequests, attempt(t, app, "10.0.0.1"))

	// A different client is unaffected.
	assert.Equal(t, fiber.StatusOK, attempt(t, app, "10.0.0.2"))
}

func TestLoginLimiter_WindowExpires(t *testing.T) {
	app, mr := newLimiterApp(t, 1)

	assert.Equal(t, fiber.StatusOK, attempt(t, app, "10.0.0.1"))
	assert.Equal(t, fiber.StatusTooManyRequests, attempt(t, app, "10.0.0.1"))

	mr.FastForward(16 * time.Minute)

	assert.Equal(t, fiber.StatusOK, attempt(t, app, "10.0.0.1"))
}

func TestLoginLimiter_FirstForwardedHopWins(t *testing.T) {
	app, mr := newLimiterApp(t, 1)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set(fiber.HeaderXForwardedFor, "203.0.113.7, 10.0.0.1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, mr.Exists("login_limit:203.0.113.7"))
}

func TestLoginLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewLoginLimiter(client, 15*time.Minute, 1)
	app := fiber.New()
	app.Post("/login", limiter.Handle, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	mr.Close()

	assert.Equal(t, fiber.StatusOK, attempt(t, app, "10.0.0.1"))
	assert.Equal(t, fiber.StatusOK, attempt(t, app, "10.0.0.1"))
}
