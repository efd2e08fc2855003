package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Darios2021/coc-backend/internal/docs/domain"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *PostgresRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPostgresRepository(mock)
}

func TestInsertDocument(t *testing.T) {
	mock, repo := newMockRepo(t)
	version := "v2"

	mock.ExpectQuery(`INSERT INTO documents`).
		WithArgs("Manual de compras", "manual", &version, "1700000000_manual.pdf").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.InsertDocument(context.Background(), &domain.Document{
		Title:     "Manual de compras",
		DocType:   "manual",
		Version:   &version,
		SourceKey: "1700000000_manual.pdf",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertSections(t *testing.T) {
	mock, repo := newMockRepo(t)
	one := 1

	sections := []domain.Section{
		{SectionPath: "Pág. 1", Heading: "Pág. 1 · CAPÍTULO 1", Content: "Texto.", OrderIndex: 0, PageNo: &one},
		{SectionPath: "Pág. 1", Heading: "Pág. 1 · CAPÍTULO 2", Content: "Más texto.", OrderIndex: 1, PageNo: &one},
	}
	for _, s := range sections {
		mock.ExpectExec(`INSERT INTO sections`).
			WithArgs(int64(7), s.SectionPath, s.Heading, s.Content, s.OrderIndex, s.PageNo).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	require.NoError(t, repo.InsertSections(context.Background(), 7, sections))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertSections_StopsOnFirstError(t *testing.T) {
	mock, repo := newMockRepo(t)
	one := 1

	mock.ExpectExec(`INSERT INTO sections`).
		WillReturnError(errors.New("connection refused"))

	err := repo.InsertSections(context.Background(), 7, []domain.Section{
		{SectionPath: "Pág. 1", Heading: "h", Content: "c", OrderIndex: 0, PageNo: &one},
		{SectionPath: "Pág. 1", Heading: "h2", Content: "c2", OrderIndex: 1, PageNo: &one},
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDocuments(t *testing.T) {
	mock, repo := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM documents`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "doc_type", "version", "source_key", "created_at"}).
			AddRow(int64(2), "Reglamento", "reglamento", (*string)(nil), "key2.pdf", now).
			AddRow(int64(1), "Manual", "manual", (*string)(nil), "key1.pdf", now.Add(-time.Hour)))

	docs, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, int64(2), docs[0].ID)
	assert.Equal(t, "Manual", docs[1].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(`SELECT (.+) FROM documents`).
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "title", "doc_type", "version", "source_key", "created_at"}).
				AddRow(int64(7), "Manual", "manual", (*string)(nil), "key.pdf", time.Now()))

		doc, err := repo.GetByID(context.Background(), 7)

		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "Manual", doc.Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing means nil", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(`SELECT (.+) FROM documents`).
			WithArgs(int64(99)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}))

		doc, err := repo.GetByID(context.Background(), 99)

		require.NoError(t, err)
		assert.Nil(t, doc)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetSections(t *testing.T) {
	mock, repo := newMockRepo(t)
	one := 1

	mock.ExpectQuery(`SELECT (.+) FROM sections`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "document_id", "section_path", "heading", "content", "order_index", "page_no"}).
			AddRow(int64(10), int64(7), "Pág. 1", "Pág. 1 · CAPÍTULO 1", "Texto.", 0, &one))

	sections, err := repo.GetSections(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Pág. 1 · CAPÍTULO 1", sections[0].Heading)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDocument(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM sections`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 12))
	mock.ExpectExec(`DELETE FROM documents`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch(t *testing.T) {
	mock, repo := newMockRepo(t)
	three := 3

	mock.ExpectQuery(`SELECT (.+) FROM sections s`).
		WithArgs("%compras%", 20).
		WillReturnRows(pgxmock.NewRows([]string{"document_id", "id", "title", "heading", "page_no"}).
			AddRow(int64(7), int64(10), "Manual", "Pág. 3 · Compras", &three))

	hits, err := repo.Search(context.Background(), "compras", 20)

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, int64(7), hits[0].DocumentID)
	assert.Equal(t, "Manual", hits[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}
