package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the auth endpoints. loginLimiter runs only in front
// of login; refresh and logout are already gated by possession of a token.
func RegisterRoutes(app *fiber.App, h *AuthHandler, loginLimiter fiber.Handler) {
	auth := app.Group("/auth")
	auth.Post("/login", loginLimiter, h.Login)
	auth.Post("/refresh", h.Refresh)
	auth.Post("/logout", h.Logout)
}
