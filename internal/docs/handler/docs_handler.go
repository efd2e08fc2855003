package handler

import (
	"errors"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/Darios2021/coc-backend/internal/docs/domain"
	"github.com/Darios2021/coc-backend/internal/docs/service"
	"github.com/Darios2021/coc-backend/internal/docs/storage"
	docerror "github.com/Darios2021/coc-backend/internal/errors"
	"github.com/gofiber/fiber/v2"
)

type DocsHandler struct {
	ingest *service.IngestService
	repo   domain.DocumentRepository
	store  storage.ObjectStore
}

func NewDocsHandler(ingest *service.IngestService, repo domain.DocumentRepository, store storage.ObjectStore) *DocsHandler {
	return &DocsHandler{ingest: ingest, repo: repo, store: store}
}

func (h *DocsHandler) List(c *fiber.Ctx) error {
	docs, err := h.repo.List(c.UserContext())
	if err != nil {
		return serverError(c, err)
	}
	if docs == nil {
		docs = []domain.Document{}
	}

	return c.JSON(docs)
}

func (h *DocsHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	doc, err := h.repo.GetByID(c.UserContext(), id)
	if err != nil {
		return serverError(c, err)
	}
	if doc == nil {
		return notFound(c)
	}

	sections, err := h.repo.GetSections(c.UserContext(), id)
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":         doc.ID,
		"title":      doc.Title,
		"doc_type":   doc.DocType,
		"version":    doc.Version,
		"source_key": doc.SourceKey,
		"created_at": doc.CreatedAt,
		"sections":   sections,
	})
}

// File answers with a short-lived presigned URL for the stored PDF.
func (h *DocsHandler) File(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	doc, err := h.repo.GetByID(c.UserContext(), id)
	if err != nil {
		return serverError(c, err)
	}
	if doc == nil {
		return notFound(c)
	}

	url, err := h.store.PresignedGet(c.UserContext(), doc.SourceKey, 10*time.Minute)
	if err != nil {
		if errors.Is(err, docerror.ErrStorageDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "object storage unavailable"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to sign object URL"})
	}

	return c.JSON(fiber.Map{"url": url})
}

func (h *DocsHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing PDF file"})
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

	meta := service.UploadMeta{
		Title:   c.FormValue("title"),
		DocType: c.FormValue("doc_type"),
	}
	if v := c.FormValue("version"); v != "" {
		meta.Version = &v
	}

	result, err := h.ingest.Ingest(c.UserContext(), data, fileHeader.Filename, meta)
	if err != nil {
		switch {
		case errors.Is(err, docerror.ErrNotPDF):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "only PDF files are accepted"})
		case errors.Is(err, docerror.ErrStorageDisabled):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "object storage unavailable"})
		default:
			return serverError(c, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *DocsHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	doc, err := h.repo.GetByID(c.UserContext(), id)
	if err != nil {
		return serverError(c, err)
	}
	if doc == nil {
		return notFound(c)
	}

	// Object removal is best effort; the database rows are the source of
	// truth and go regardless.
	if err := h.store.Remove(c.UserContext(), doc.SourceKey); err != nil {
		log.Printf("warn: failed to remove object %s: %v", doc.SourceKey, err)
	}

	if err := h.repo.Delete(c.UserContext(), id); err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"ok": true, "deleted": id})
}

func (h *DocsHandler) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.JSON(fiber.Map{"q": q, "results": []domain.SearchHit{}})
	}

	hits, err := h.repo.Search(c.UserContext(), q, 50)
	if err != nil {
		return serverError(c, err)
	}
	if hits == nil {
		hits = []domain.SearchHit{}
	}

	return c.JSON(fiber.Map{"q": q, "results": hits})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
}

func serverError(c *fiber.Ctx, err error) error {
	log.Printf("error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
