package domain

import "context"

type DocumentRepository interface {
	InsertDocument(ctx context.Context, d *Document) (int64, error)
	InsertSections(ctx context.Context, documentID int64, sections []Section) error
	List(ctx context.Context) ([]Document, error)
	GetByID(ctx context.Context, id int64) (*Document, error)
	GetSections(ctx context.Context, documentID int64) ([]Section, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, limit int) ([]SearchHit, error)
}
