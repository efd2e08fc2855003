package handler

import (
	"strings"

	"github.com/Darios2021/coc-backend/internal/auth/service"
	"github.com/Darios2021/coc-backend/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

const localsClaimsKey = "claims"

// RequireAuth verifies the access token from the session cookie or an
// Authorization: Bearer header and stores the claims for downstream handlers.
func RequireAuth(tokens service.TokenGenerator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(constant.AccessTokenCookie)
		if token == "" {
			if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}
		if token == "" {
			return unauthorized(c, "unauthorized", "UNAUTHORIZED")
		}

		claims, err := tokens.VerifyAccessToken(token)
		if err != nil {
			return unauthorized(c, "unauthorized", "UNAUTHORIZED")
		}

		c.Locals(localsClaimsKey, claims)

		return c.Next()
	}
}

// RequireRole gates a route on the role claim; it assumes RequireAuth ran.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(localsClaimsKey).(*service.AccessClaims)
		if !ok || claims.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}
		return c.Next()
	}
}

// ClaimsFromCtx returns the verified access claims set by RequireAuth.
func ClaimsFromCtx(c *fiber.Ctx) *service.AccessClaims {
	claims, _ := c.Locals(localsClaimsKey).(*service.AccessClaims)
	return claims
}
