package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the document endpoints. Reads are public; writes
// require a session and deletion requires the admin role.
func RegisterRoutes(app *fiber.App, docs *DocsHandler, uploads *UploadsHandler,
	requireAuth, requireAdmin fiber.Handler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	app.Get("/docs", docs.List)
	app.Get("/docs/:id", docs.Get)
	app.Get("/docs/:id/file", docs.File)
	app.Post("/docs/upload", requireAuth, docs.Upload)
	app.Delete("/docs/:id", requireAuth, requireAdmin, docs.Delete)
	app.Get("/search", docs.Search)

	up := app.Group("/uploads", requireAuth)
	up.Post("/", uploads.Upload)
	up.Get("/files", uploads.ListObjects)
	up.Get("/:key", uploads.Presign)
	up.Delete("/:key", requireAdmin, uploads.Delete)
}
