package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Darios2021/coc-backend/config"
	"github.com/Darios2021/coc-backend/internal/audit"
	"github.com/Darios2021/coc-backend/internal/auth/domain"
	"github.com/Darios2021/coc-backend/internal/auth/dto"
	autherror "github.com/Darios2021/coc-backend/internal/errors"
	"github.com/Darios2021/coc-backend/pkg/constant"
	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users    domain.UserRepository
	sessions domain.RefreshTokenRepository
	tokens   TokenGenerator
	recorder audit.Recorder
	cfg      *config.Config
}

func NewAuthService(users domain.UserRepository, sessions domain.RefreshTokenRepository,
	tokens TokenGenerator, recorder audit.Recorder, cfg *config.Config) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		recorder: recorder,
		cfg:      cfg,
	}
}

// Login verifies the credential pair and, when everything holds, establishes a
// session. Unknown users and wrong passwords fail identically so the endpoint
// cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.users.GetActiveByEmail(ctx, email)
	if err != nil {
		return nil, autherror.ErrStoreUnavailable
	}
	if user == nil {
		s.record(ctx, audit.Event{
			Action:   constant.AuditLoginFailed,
			EntityID: email,
			Meta:     map[string]any{"reason": "unknown_user", "ip": input.IPAddress, "ua": input.UserAgent},
		})
		return nil, autherror.ErrInvalidCredentials
	}

	now := time.Now()

	// A live lockout short-circuits before any hashing work, so failed
	// probes cannot extend the window either.
	if user.LockedUntil != nil && user.LockedUntil.After(now) {
		s.record(ctx, audit.Event{
			Action:   constant.AuditLoginLocked,
			UserID:   &user.ID,
			EntityID: user.ID,
			Meta:     map[string]any{"locked_until": user.LockedUntil, "ip": input.IPAddress},
		})
		return nil, autherror.ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, s.failPassword(ctx, user, input, now)
	}

	if user.TwoFAEnabled {
		if input.TOTP == "" || !totp.Validate(input.TOTP, user.TwoFASecret) {
			reason := "second_factor_missing"
			if input.TOTP != "" {
				reason = "second_factor_invalid"
			}
			s.record(ctx, audit.Event{
				Action:   constant.AuditLoginFailed,
				UserID:   &user.ID,
				EntityID: user.ID,
				Meta:     map[string]any{"reason": reason, "ip": input.IPAddress},
			})
			return nil, autherror.ErrSecondFactorRequired
		}
	}

	if err := s.users.UpdateLoginState(ctx, user.ID, domain.LoginState{
		FailedCount: 0,
		LockedUntil: nil,
		LastLoginAt: &now,
	}); err != nil {
		return nil, autherror.ErrStoreUnavailable
	}

	pair, err := s.establishSession(ctx, user, input.IPAddress, input.UserAgent)
	if err != nil {
		return nil, err
	}

	s.record(ctx, audit.Event{
		Action:   constant.AuditLoginSuccess,
		UserID:   &user.ID,
		EntityID: user.ID,
		Meta:     map[string]any{"ip": input.IPAddress, "ua": input.UserAgent},
	})

	return &dto.LoginResponse{
		TokenResponse: *pair,
		User:          dto.UserOutput{ID: user.ID, Email: user.Email, Role: user.RoleName},
	}, nil
}

func (s *AuthService) failPassword(ctx context.Context, user *domain.User, input dto.LoginInput, now time.Time) error {
	failed := user.FailedCount + 1
	state := domain.LoginState{FailedCount: failed, LockedUntil: user.LockedUntil}
	if failed >= s.cfg.LoginMaxAttempts {
		lockedUntil := now.Add(time.Duration(s.cfg.LockoutMinutes) * time.Minute)
		state.LockedUntil = &lockedUntil
	}
	// Last-write-wins is acceptable here: the counter is defense in depth
	// behind the request limiter, not the primary rate control.
	if err := s.users.UpdateLoginState(ctx, user.ID, state); err != nil {
		log.Printf("warn: failed to persist login state for user %s: %v", user.ID, err)
	}

	s.record(ctx, audit.Event{
		Action:   constant.AuditLoginFailed,
		UserID:   &user.ID,
		EntityID: user.ID,
		Meta:     map[string]any{"reason": "wrong_password", "failed_count": failed, "ip": input.IPAddress},
	})

	return autherror.ErrInvalidCredentials
}

// Refresh rotates a presented refresh token: every validation failure is the
// same generic unauthorized, and a token that passes is revoked before its
// replacement exists, so it can never rotate twice.
func (s *AuthService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, error) {
	claims, err := s.tokens.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, autherror.ErrUnauthorized
	}

	rt, err := s.sessions.GetByJTI(ctx, claims.ID)
	if err != nil {
		return nil, autherror.ErrStoreUnavailable
	}
	if rt == nil {
		return nil, autherror.ErrUnauthorized
	}

	if rt.RevokedAt != nil {
		// Reuse of a rotated token is the classic theft signal: drop every
		// live session for the owner.
		if n, err := s.sessions.RevokeAllByUserID(ctx, rt.UserID); err != nil {
			log.Printf("warn: failed to revoke sessions for user %s after token reuse: %v", rt.UserID, err)
		} else {
			s.record(ctx, audit.Event{
				Action:   constant.AuditRefreshReplayed,
				UserID:   &rt.UserID,
				EntityID: rt.JTI,
				Meta:     map[string]any{"revoked_sessions": n, "ip": input.IPAddress},
			})
		}
		return nil, autherror.ErrUnauthorized
	}

	// The stored digest must match the exact presented token; a claims
	// payload stitched under another key, or a stale row, dies here.
	if s.tokens.HashToken(input.RefreshToken) != rt.TokenHash {
		return nil, autherror.ErrUnauthorized
	}

	if time.Now().After(rt.ExpiresAt) {
		return nil, autherror.ErrUnauthorized
	}

	if rt.UserID != claims.Subject {
		return nil, autherror.ErrUnauthorized
	}

	revoked, err := s.sessions.Revoke(ctx, rt.ID)
	if err != nil {
		return nil, autherror.ErrStoreUnavailable
	}
	if !revoked {
		// A concurrent rotation won the race; this request loses.
		return nil, autherror.ErrUnauthorized
	}

	user, err := s.users.GetActiveByID(ctx, rt.UserID)
	if err != nil {
		return nil, autherror.ErrStoreUnavailable
	}
	if user == nil {
		return nil, autherror.ErrUnauthorized
	}

	pair, err := s.establishSession(ctx, user, input.IPAddress, input.UserAgent)
	if err != nil {
		return nil, err
	}

	s.record(ctx, audit.Event{
		Action:   constant.AuditRefreshRotated,
		UserID:   &user.ID,
		EntityID: user.ID,
		Meta:     map[string]any{"ip": input.IPAddress, "ua": input.UserAgent},
	})

	return pair, nil
}

// Logout revokes the session behind the presented token. It is idempotent:
// a missing, unknown or already-revoked token is still a success.
func (s *AuthService) Logout(ctx context.Context, refreshToken, ip, userAgent string) error {
	if refreshToken == "" {
		return nil
	}

	// Lookup by hash, not by claims: cleanup must work even for a token
	// whose expiry already passed.
	rt, err := s.sessions.GetByHash(ctx, s.tokens.HashToken(refreshToken))
	if err != nil {
		return autherror.ErrStoreUnavailable
	}
	if rt == nil || rt.RevokedAt != nil {
		return nil
	}

	revoked, err := s.sessions.Revoke(ctx, rt.ID)
	if err != nil {
		return autherror.ErrStoreUnavailable
	}
	if revoked {
		s.record(ctx, audit.Event{
			Action:   constant.AuditLogout,
			UserID:   &rt.UserID,
			EntityID: rt.JTI,
			Meta:     map[string]any{"ip": ip, "ua": userAgent},
		})
	}

	return nil
}

// establishSession mints a pair and durably stores the refresh record before
// the tokens are returned, so the client never holds a refresh token with no
// matching server row.
func (s *AuthService) establishSession(ctx context.Context, user *domain.User, ip, userAgent string) (*dto.TokenResponse, error) {
	pair, err := s.tokens.Generate(user.ID, user.Email, user.RoleName)
	if err != nil {
		return nil, err
	}

	record := &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		JTI:       pair.JTI,
		TokenHash: s.tokens.HashToken(pair.RefreshToken),
		IssuedAt:  pair.IssuedAt,
		ExpiresAt: pair.RefreshExpiresAt,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.sessions.Insert(ctx, record); err != nil {
		return nil, autherror.ErrStoreUnavailable
	}

	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    constant.DefaultTokenType,
		ExpiresIn:    int(s.tokens.GetAccessTokenExpiry().Seconds()),
	}, nil
}

func (s *AuthService) record(ctx context.Context, e audit.Event) {
	if err := s.recorder.Record(ctx, e); err != nil {
		log.Printf("warn: failed to record audit event %s: %v", e.Action, err)
	}
}
