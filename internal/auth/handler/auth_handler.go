package handler

import (
	"errors"
	"strings"

	"github.com/Darios2021/coc-backend/internal/auth/dto"
	"github.com/Darios2021/coc-backend/internal/auth/service"
	autherror "github.com/Darios2021/coc-backend/internal/errors"
	"github.com/Darios2021/coc-backend/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *service.AuthService
	cookies     *CookieWriter
}

func NewAuthHandler(authService *service.AuthService, cookies *CookieWriter) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}
	if input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email and password are required",
		})
	}

	// Capture metadata. Untrusted; recorded for audit only.
	input.IPAddress = clientIP(c)
	input.UserAgent = c.Get(fiber.HeaderUserAgent)

	resp, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		switch {
		case errors.Is(err, autherror.ErrInvalidCredentials):
			return unauthorized(c, "invalid credentials", "INVALID_CREDENTIALS")
		case errors.Is(err, autherror.ErrAccountLocked):
			return unauthorized(c, "account temporarily locked", "ACCOUNT_LOCKED")
		case errors.Is(err, autherror.ErrSecondFactorRequired):
			return unauthorized(c, "second factor required", "SECOND_FACTOR_REQUIRED")
		default:
			return serverError(c)
		}
	}

	h.cookies.WriteSession(c, resp.TokenResponse)

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token := c.Cookies(constant.RefreshTokenCookie)
	if token == "" {
		return unauthorized(c, "unauthorized", "UNAUTHORIZED")
	}

	input := dto.RefreshInput{
		RefreshToken: token,
		IPAddress:    clientIP(c),
		UserAgent:    c.Get(fiber.HeaderUserAgent),
	}

	tokens, err := h.authService.Refresh(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrUnauthorized) {
			return unauthorized(c, "unauthorized", "UNAUTHORIZED")
		}
		return serverError(c)
	}

	h.cookies.WriteSession(c, *tokens)

	return c.Status(fiber.StatusOK).JSON(tokens)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(constant.RefreshTokenCookie)

	err := h.authService.Logout(c.UserContext(), token, clientIP(c), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return serverError(c)
	}

	h.cookies.ClearSession(c)

	return c.SendStatus(fiber.StatusNoContent)
}

// clientIP prefers the first X-Forwarded-For hop; behind the reverse proxy
// c.IP() is the proxy itself.
func clientIP(c *fiber.Ctx) string {
	if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return c.IP()
}

func unauthorized(c *fiber.Ctx, msg, code string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": msg,
		"code":  code,
	})
}

func serverError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
