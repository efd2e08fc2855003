package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Darios2021/coc-backend/internal/auth/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the slice of pgxpool.Pool the repository uses; pgxmock satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `u.id, u.email, u.password_hash, u.is_active, u.role_id, r.name,
		       u.failed_count, u.locked_until, u.twofa_enabled, u.twofa_secret,
		       u.last_login_at, u.created_at, u.updated_at`

func (r *PostgresRepository) GetActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.email = $1 AND u.is_active
		LIMIT 1;
	`, userColumns)

	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *PostgresRepository) GetActiveByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1 AND u.is_active
		LIMIT 1;
	`, userColumns)

	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsActive,
		&user.RoleID, &user.RoleName, &user.FailedCount, &user.LockedUntil,
		&user.TwoFAEnabled, &user.TwoFASecret, &user.LastLoginAt,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) UpdateLoginState(ctx context.Context, userID string, state domain.LoginState) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET failed_count = $2,
		    locked_until = $3,
		    last_login_at = COALESCE($4, last_login_at),
		    updated_at = now()
		WHERE id = $1
	`, userID, state.FailedCount, state.LockedUntil, state.LastLoginAt)
	if err != nil {
		return fmt.Errorf("failed to update login state: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Insert(ctx context.Context, rt *domain.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (id, user_id, jti, token_hash, issued_at, expires_at, ip, user_agent)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		rt.ID, rt.UserID, rt.JTI, rt.TokenHash, rt.IssuedAt, rt.ExpiresAt,
		rt.IPAddress, rt.UserAgent)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

const refreshTokenColumns = `id, user_id, jti, token_hash, issued_at, expires_at, revoked_at, ip, user_agent`

func (r *PostgresRepository) GetByJTI(ctx context.Context, jti string) (*domain.RefreshToken, error) {
	query := fmt.Sprintf(`SELECT %s FROM refresh_tokens WHERE jti = $1 LIMIT 1;`, refreshTokenColumns)
	return r.scanRefreshToken(r.db.QueryRow(ctx, query, jti))
}

func (r *PostgresRepository) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	query := fmt.Sprintf(`SELECT %s FROM refresh_tokens WHERE token_hash = $1 LIMIT 1;`, refreshTokenColumns)
	return r.scanRefreshToken(r.db.QueryRow(ctx, query, hash))
}

func (r *PostgresRepository) scanRefreshToken(row pgx.Row) (*domain.RefreshToken, error) {
	var rt domain.RefreshToken
	err := row.Scan(&rt.ID, &rt.UserID, &rt.JTI, &rt.TokenHash, &rt.IssuedAt,
		&rt.ExpiresAt, &rt.RevokedAt, &rt.IPAddress, &rt.UserAgent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return &rt, nil
}

// Revoke flips one still-active row to revoked. The revoked_at guard makes
// the update a compare-and-set: of two concurrent calls only one sees true.
func (r *PostgresRepository) Revoke(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked_at = now()
		WHERE id = $1 AND revoked_at IS NULL
	`, id)
	if err != nil {
		return false, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepository) RevokeAllByUserID(ctx context.Context, userID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked_at = now()
		WHERE user_id = $1 AND revoked_at IS NULL
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to revoke refresh tokens for user: %w", err)
	}

	return tag.RowsAffected(), nil
}
