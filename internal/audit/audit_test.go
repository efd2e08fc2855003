package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRecorder_Record(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	recorder := NewPostgresRecorder(mock)
	userID := "user-id"

	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs("LOGIN_SUCCESS", &userID, "user-id", []byte(`{"ip":"192.168.1.1"}`), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = recorder.Record(context.Background(), Event{
		Action:   "LOGIN_SUCCESS",
		UserID:   &userID,
		EntityID: "user-id",
		Meta:     map[string]any{"ip": "192.168.1.1"},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecorder_NilMetaBecomesEmptyObject(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	recorder := NewPostgresRecorder(mock)

	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs("LOGOUT", (*string)(nil), "jti-1", []byte(`{}`), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = recorder.Record(context.Background(), Event{Action: "LOGOUT", EntityID: "jti-1"})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecorder_ExecError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	recorder := NewPostgresRecorder(mock)

	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnError(errors.New("connection refused"))

	err = recorder.Record(context.Background(), Event{Action: "LOGIN_FAILED", EntityID: "a@x.com"})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
