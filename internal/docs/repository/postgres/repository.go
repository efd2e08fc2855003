package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Darios2021/coc-backend/internal/docs/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the slice of pgxpool.Pool the repository uses; pgxmock satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) InsertDocument(ctx context.Context, d *domain.Document) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO documents (title, doc_type, version, source_key, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id
	`, d.Title, d.DocType, d.Version, d.SourceKey).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert document: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) InsertSections(ctx context.Context, documentID int64, sections []domain.Section) error {
	for _, s := range sections {
		_, err := r.db.Exec(ctx, `
			INSERT INTO sections (document_id, section_path, heading, content, order_index, page_no)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, documentID, s.SectionPath, s.Heading, s.Content, s.OrderIndex, s.PageNo)
		if err != nil {
			return fmt.Errorf("failed to insert section %d: %w", s.OrderIndex, err)
		}
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, doc_type, version, source_key, created_at
		FROM documents
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.DocType, &d.Version, &d.SourceKey, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	var d domain.Document
	err := r.db.QueryRow(ctx, `
		SELECT id, title, doc_type, version, source_key, created_at
		FROM documents
		WHERE id = $1
		LIMIT 1;
	`, id).Scan(&d.ID, &d.Title, &d.DocType, &d.Version, &d.SourceKey, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return &d, nil
}

func (r *PostgresRepository) GetSections(ctx context.Context, documentID int64) ([]domain.Section, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, document_id, section_path, heading, content, order_index, page_no
		FROM sections
		WHERE document_id = $1
		ORDER BY order_index ASC
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sections: %w", err)
	}
	defer rows.Close()

	var sections []domain.Section
	for rows.Next() {
		var s domain.Section
		if err := rows.Scan(&s.ID, &s.DocumentID, &s.SectionPath, &s.Heading, &s.Content, &s.OrderIndex, &s.PageNo); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, s)
	}

	return sections, rows.Err()
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sections WHERE document_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete sections: %w", err)
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Search(ctx context.Context, q string, limit int) ([]domain.SearchHit, error) {
	like := "%" + q + "%"
	rows, err := r.db.Query(ctx, `
		SELECT s.document_id, s.id, d.title, s.heading, s.page_no
		FROM sections s
		JOIN documents d ON d.id = s.document_id
		WHERE s.content ILIKE $1 OR s.heading ILIKE $1
		ORDER BY d.created_at DESC
		LIMIT $2
	`, like, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search sections: %w", err)
	}
	defer rows.Close()

	var hits []domain.SearchHit
	for rows.Next() {
		var h domain.SearchHit
		if err := rows.Scan(&h.DocumentID, &h.SectionID, &h.Title, &h.Heading, &h.PageNo); err != nil {
			return nil, fmt.Errorf("failed to scan search hit: %w", err)
		}
		hits = append(hits, h)
	}

	return hits, rows.Err()
}
