package domain

import (
	"context"
	"time"
)

// LoginState is the mutable slice of a user row owned by the login path.
type LoginState struct {
	FailedCount int
	LockedUntil *time.Time
	LastLoginAt *time.Time
}

type UserRepository interface {
	GetActiveByEmail(ctx context.Context, email string) (*User, error)
	GetActiveByID(ctx context.Context, id string) (*User, error)
	UpdateLoginState(ctx context.Context, userID string, state LoginState) error
}

type RefreshTokenRepository interface {
	Insert(ctx context.Context, rt *RefreshToken) error
	GetByJTI(ctx context.Context, jti string) (*RefreshToken, error)
	GetByHash(ctx context.Context, hash string) (*RefreshToken, error)
	// Revoke sets revoked_at on a still-active row and reports whether a row
	// actually transitioned. Two concurrent calls see true at most once.
	Revoke(ctx context.Context, id string) (bool, error)
	RevokeAllByUserID(ctx context.Context, userID string) (int64, error)
}
