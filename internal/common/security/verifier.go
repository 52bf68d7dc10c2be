package security

import (
	"context"
	"time"

	"authgate/internal/platform/config"
)

// Claims is the ephemeral identity extracted from a verified token. It is
// bound to a single request and discarded with it. Email and IsActive are
// filled only by remote verification; ExpiresAt only by local verification.
type Claims struct {
	Username  string    `json:"username"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	IsActive  bool      `json:"is_active,omitempty"`
	ExpiresAt time.Time `json:"exp,omitzero"`
}

// TokenVerifier validates a bearer token and extracts its claims.
//
// Implementations must distinguish two failure kinds: ErrUnauthorized when
// the credential itself is bad (malformed, tampered, expired, rejected by
// the identity service), and ErrServiceUnavailable when the verifier could
// not be reached at all. Callers rely on that split to decide between
// rejecting the client and retrying later.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// NewVerifierFromConfig selects the verification strategy for this
// deployment. The choice is fixed at construction, never per request.
func NewVerifierFromConfig(cfg *config.Config) TokenVerifier {
	if cfg.UseRemoteVerification {
		return NewRemoteVerifier(cfg.AuthServiceURL, cfg.VerifyTimeout)
	}
	return NewLocalVerifier(cfg.JWTSecret)
}
