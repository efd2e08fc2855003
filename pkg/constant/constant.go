package constant

const (
	DefaultTokenType = "Bearer"

	// Cookie names carried over from the original deployment; the frontend
	// reads neither (httpOnly) but the names are part of the wire contract.
	AccessTokenCookie  = "coc_access"
	RefreshTokenCookie = "coc_refresh"
)

// Audit action names.
const (
	AuditLoginSuccess    = "LOGIN_SUCCESS"
	AuditLoginFailed     = "LOGIN_FAILED"
	AuditLoginLocked     = "LOGIN_LOCKED"
	AuditRefreshRotated  = "REFRESH_ROTATED"
	AuditRefreshReplayed = "REFRESH_REPLAYED"
	AuditLogout          = "LOGOUT"
)
