package handler

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Darios2021/coc-backend/internal/docs/service"
	"github.com/Darios2021/coc-backend/internal/docs/storage"
	docerror "github.com/Darios2021/coc-backend/internal/errors"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
)

// UploadsHandler exposes the raw bucket: direct object upload without
// indexing, listing, presigning and deletion.
type UploadsHandler struct {
	store storage.ObjectStore
}

func NewUploadsHandler(store storage.ObjectStore) *UploadsHandler {
	return &UploadsHandler{store: store}
}

func (h *UploadsHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return serverError(c, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return serverError(c, err)
	}

	if !mimetype.Detect(data).Is("application/pdf") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "only PDF files are accepted"})
	}

	key := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), service.SafeName(fileHeader.Filename))
	if err := h.store.Put(c.UserContext(), key, data, "application/pdf"); err != nil {
		return h.storageError(c, err)
	}

	url, err := h.store.PresignedGet(c.UserContext(), key, 15*time.Minute)
	if err != nil {
		return h.storageError(c, err)
	}

	return c.JSON(fiber.Map{"ok": true, "key": key, "url": url})
}

func (h *UploadsHandler) ListObjects(c *fiber.Ctx) error {
	items, err := h.store.List(c.UserContext())
	if err != nil {
		return h.storageError(c, err)
	}
	if items == nil {
		items = []storage.ObjectInfo{}
	}

	return c.JSON(items)
}

func (h *UploadsHandler) Presign(c *fiber.Ctx) error {
	// Presigning signs locally and never consults the bucket, so a failure
	// here is a server-side fault rather than a missing object.
	url, err := h.store.PresignedGet(c.UserContext(), c.Params("key"), 10*time.Minute)
	if err != nil {
		if errors.Is(err, docerror.ErrStorageDisabled) {
			return h.storageError(c, err)
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to sign object URL"})
	}

	return c.JSON(fiber.Map{"url": url})
}

func (h *UploadsHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.Remove(c.UserContext(), c.Params("key")); err != nil {
		return h.storageError(c, err)
	}

	return c.JSON(fiber.Map{"ok": true})
}

func (h *UploadsHandler) storageError(c *fiber.Ctx, err error) error {
	if errors.Is(err, docerror.ErrStorageDisabled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "object storage unavailable"})
	}
	return serverError(c, err)
}
