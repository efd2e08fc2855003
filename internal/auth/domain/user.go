package domain

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsActive     bool
	RoleID       int
	RoleName     string

	FailedCount  int
	LockedUntil  *time.Time
	TwoFAEnabled bool
	TwoFASecret  string
	LastLoginAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RefreshToken is the server-side record behind one issued refresh credential.
// Rows are never deleted; a row moves from active to revoked exactly once.
type RefreshToken struct {
	ID        string
	UserID    string
	JTI       string
	TokenHash string
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
	IPAddress string
	UserAgent string
}

// Active reports whether the record can still be rotated at instant now.
func (rt *RefreshToken) Active(now time.Time) bool {
	return rt.RevokedAt == nil && now.Before(rt.ExpiresAt)
}
