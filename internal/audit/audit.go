// Package audit appends security-relevant events. Recording is best effort:
// a failed write never changes the security decision that produced the event.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

type Event struct {
	Action   string
	UserID   *string
	EntityID string
	Meta     map[string]any
}

type Recorder interface {
	Record(ctx context.Context, e Event) error
}

// DB is the slice of pgxpool.Pool the recorder uses; pgxmock satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresRecorder appends events to the audit_log table.
type PostgresRecorder struct {
	db DB
}

func NewPostgresRecorder(db DB) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

func (r *PostgresRecorder) Record(ctx context.Context, e Event) error {
	meta := e.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	blob, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to encode audit meta: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO audit_log (action, user_id, entity_id, meta, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, e.Action, e.UserID, e.EntityID, blob, time.Now())
	if err != nil {
		return fmt.Errorf("failed to append audit event: %w", err)
	}

	return nil
}
