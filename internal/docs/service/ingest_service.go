package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Darios2021/coc-backend/internal/docs/domain"
	"github.com/Darios2021/coc-backend/internal/docs/storage"
	docerror "github.com/Darios2021/coc-backend/internal/errors"
	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

type UploadMeta struct {
	Title   string
	DocType string
	Version *string
}

type IngestResult struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	DocType         string `json:"doc_type"`
	SectionsCreated int    `json:"sections_created"`
	SourceKey       string `json:"source_key"`
}

// IngestService turns an uploaded PDF into an object-store copy plus indexed
// sections. Ingestion is synchronous; the splitter is cheap relative to the
// upload itself.
type IngestService struct {
	repo     domain.DocumentRepository
	store    storage.ObjectStore
	maxPages int
}

func NewIngestService(repo domain.DocumentRepository, store storage.ObjectStore, maxPages int) *IngestService {
	return &IngestService{repo: repo, store: store, maxPages: maxPages}
}

func (s *IngestService) Ingest(ctx context.Context, data []byte, origName string, meta UploadMeta) (*IngestResult, error) {
	if !mimetype.Detect(data).Is("application/pdf") {
		return nil, docerror.ErrNotPDF
	}

	if err := s.validatePDF(data); err != nil {
		return nil, err
	}

	title := meta.Title
	if title == "" {
		title = strings.TrimSuffix(origName, filepath.Ext(origName))
	}
	docType := meta.DocType
	if docType == "" {
		docType = "otro"
	}

	key := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), SafeName(origName))
	if err := s.store.Put(ctx, key, data, "application/pdf"); err != nil {
		return nil, err
	}

	pages := extractPages(data)
	sections := SplitSections(pages)

	id, err := s.repo.InsertDocument(ctx, &domain.Document{
		Title:     title,
		DocType:   docType,
		Version:   meta.Version,
		SourceKey: key,
	})
	if err != nil {
		return nil, err
	}
	if err := s.repo.InsertSections(ctx, id, sections); err != nil {
		return nil, err
	}

	return &IngestResult{
		ID:              id,
		Title:           title,
		DocType:         docType,
		SectionsCreated: len(sections),
		SourceKey:       key,
	}, nil
}

// validatePDF runs pdfcpu over a temp copy; the file-based API is the stable
// one. A page count above the cap rejects the upload outright.
func (s *IngestService) validatePDF(data []byte) error {
	tmp, err := os.CreateTemp("", "ingest-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to stage upload: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to stage upload: %w", err)
	}
	tmp.Close()

	if err := pdfapi.ValidateFile(tmp.Name(), nil); err != nil {
		return docerror.ErrNotPDF
	}

	pages, err := pdfapi.PageCountFile(tmp.Name())
	if err != nil {
		return docerror.ErrNotPDF
	}
	if s.maxPages > 0 && pages > s.maxPages {
		return fmt.Errorf("document has %d pages, limit is %d", pages, s.maxPages)
	}

	return nil
}

// extractPages pulls plain text per page. Extraction failures degrade to an
// empty page rather than failing the ingest; the splitter has a whole-text
// fallback for documents that yield nothing.
func extractPages(data []byte) []string {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Printf("warn: pdf text extraction unavailable: %v", err)
		return []string{""}
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("warn: failed to extract page %d: %v", i, err)
			text = ""
		}
		pages = append(pages, text)
	}

	if len(pages) == 0 {
		pages = []string{""}
	}

	return pages
}
