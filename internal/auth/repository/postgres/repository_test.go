package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Darios2021/coc-backend/internal/auth/domain"
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

func userRows() *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "email", "password_hash", "is_active", "role_id", "name",
		"failed_count", "locked_until", "twofa_enabled", "twofa_secret",
		"last_login_at", "created_at", "updated_at",
	}).AddRow(
		"user-id", "a@x.com", "$2a$10$hash", true, "role-id", "admin",
		2, (*time.Time)(nil), false, "", (*time.Time)(nil), now, now,
	)
}

func TestGetActiveByEmail(t *testing.T) {
	t.Run("returns user", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(`SELECT (.+) FROM users u`).
			WithArgs("a@x.com").
			WillReturnRows(userRows())

		user, err := repo.GetActiveByEmail(context.Background(), "a@x.com")

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "user-id", user.ID)
		assert.Equal(t, "admin", user.RoleName)
		assert.Equal(t, 2, user.FailedCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows means nil user", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(`SELECT (.+) FROM users u`).
			WithArgs("ghost@x.com").
			WillReturnRows(pgxmock.NewRows([]string{"id"}))

		user, err := repo.GetActiveByEmail(context.Background(), "ghost@x.com")

		require.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(`SELECT (.+) FROM users u`).
			WithArgs("a@x.com").
			WillReturnError(errors.New("connection refused"))

		user, err := repo.GetActiveByEmail(context.Background(), "a@x.com")

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetActiveByID(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users u`).
		WithArgs("user-id").
		WillReturnRows(userRows())

	user, err := repo.GetActiveByID(context.Background(), "user-id")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLoginState(t *testing.T) {
	t.Run("resets counter and stamps login", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		now := time.Now()

		mock.ExpectExec(`UPDATE users`).
			WithArgs("user-id", 0, (*time.Time)(nil), &now).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateLoginState(context.Background(), "user-id", domain.LoginState{
			FailedCount: 0,
			LastLoginAt: &now,
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sets lockout", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		lockedUntil := time.Now().Add(5 * time.Minute)

		mock.ExpectExec(`UPDATE users`).
			WithArgs("user-id", 5, &lockedUntil, (*time.Time)(nil)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateLoginState(context.Background(), "user-id", domain.LoginState{
			FailedCount: 5,
			LockedUntil: &lockedUntil,
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func refreshRow(revokedAt *time.Time) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "user_id", "jti", "token_hash", "issued_at", "expires_at",
		"revoked_at", "ip", "user_agent",
	}).AddRow(
		"row-id", "user-id", "jti-1", "token-hash", now.Add(-time.Hour),
		now.Add(time.Hour), revokedAt, "192.168.1.1", "test-agent",
	)
}

func TestInsertRefreshToken(t *testing.T) {
	mock, repo := newMockRepo(t)
	now := time.Now()

	rt := &domain.RefreshToken{
		ID:        "row-id",
		UserID:    "user-id",
		JTI:       "jti-1",
		TokenHash: "token-hash",
		IssuedAt:  now,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
		IPAddress: "192.168.1.1",
		UserAgent: "test-agent",
	}

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(rt.ID, rt.UserID, rt.JTI, rt.TokenHash, rt.IssuedAt, rt.ExpiresAt,
			rt.IPAddress, rt.UserAgent).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Insert(context.Background(), rt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByJTI(t *testing.T) {
	t.Run("returns token with revocation mark", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		revokedAt := time.Now().Add(-time.Minute)

		mock.ExpectQuery(`SELECT (.+) FROM refresh_tokens WHERE jti`).
			WithArgs("jti-1").
			WillReturnRows(refreshRow(&revokedAt))

		rt, err := repo.GetByJTI(context.Background(), "jti-1")

		require.NoError(t, err)
		require.NotNil(t, rt)
		assert.Equal(t, "row-id", rt.ID)
		require.NotNil(t, rt.RevokedAt)
		assert.WithinDuration(t, revokedAt, *rt.RevokedAt, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown jti means nil", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(`SELECT (.+) FROM refresh_tokens WHERE jti`).
			WithArgs("jti-x").
			WillReturnRows(pgxmock.NewRows([]string{"id"}))

		rt, err := repo.GetByJTI(context.Background(), "jti-x")

		require.NoError(t, err)
		assert.Nil(t, rt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByHash(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM refresh_tokens WHERE token_hash`).
		WithArgs("token-hash").
		WillReturnRows(refreshRow(nil))

	rt, err := repo.GetByHash(context.Background(), "token-hash")

	require.NoError(t, err)
	require.NotNil(t, rt)
	assert.Nil(t, rt.RevokedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevoke(t *testing.T) {
	t.Run("active row revoked", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectExec(`UPDATE refresh_tokens`).
			WithArgs("row-id").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		revoked, err := repo.Revoke(context.Background(), "row-id")

		require.NoError(t, err)
		assert.True(t, revoked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already revoked row loses the compare-and-set", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectExec(`UPDATE refresh_tokens`).
			WithArgs("row-id").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		revoked, err := repo.Revoke(context.Background(), "row-id")

		require.NoError(t, err)
		assert.False(t, revoked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectExec(`UPDATE refresh_tokens`).
			WithArgs("row-id").
			WillReturnError(errors.New("connection refused"))

		revoked, err := repo.Revoke(context.Background(), "row-id")

		assert.Error(t, err)
		assert.False(t, revoked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRevokeAllByUserID(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`UPDATE refresh_tokens`).
		WithArgs("user-id").
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	n, err := repo.RevokeAllByUserID(context.Background(), "user-id")

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
