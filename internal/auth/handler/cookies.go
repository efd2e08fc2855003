package handler

import (
	"github.com/Darios2021/coc-backend/config"
	"github.com/Darios2021/coc-backend/internal/auth/dto"
	"github.com/Darios2021/coc-backend/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

// CookieWriter delivers the token pair to the browser. Flags are fixed:
// httpOnly keeps scripts out, Secure+SameSite=None lets the cookies travel on
// the cross-site front↔back hop, and each max-age matches its token's TTL.
type CookieWriter struct {
	cfg *config.Config
}

func NewCookieWriter(cfg *config.Config) *CookieWriter {
	return &CookieWriter{cfg: cfg}
}

func (w *CookieWriter) WriteSession(c *fiber.Ctx, tokens dto.TokenResponse) {
	w.write(c, constant.AccessTokenCookie, tokens.AccessToken, w.cfg.AccessExpiryMin*60)
	w.write(c, constant.RefreshTokenCookie, tokens.RefreshToken, w.cfg.RefreshExpiryDays*24*60*60)
}

func (w *CookieWriter) ClearSession(c *fiber.Ctx) {
	w.write(c, constant.AccessTokenCookie, "", -1)
	w.write(c, constant.RefreshTokenCookie, "", -1)
}

func (w *CookieWriter) write(c *fiber.Ctx, name, value string, maxAge int) {
	cookie := &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	}
	if w.cfg.Env == "production" && w.cfg.CookieDomain != "" {
		cookie.Domain = w.cfg.CookieDomain
	}

	c.Cookie(cookie)
}
