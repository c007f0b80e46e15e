package ports

import (
	"context"
	"time"
)

// TokenUse tells what a token may be exchanged for. A token is only accepted
// where its use matches.
type TokenUse string

const (
	TokenUseAccess  TokenUse = "access"
	TokenUseRefresh TokenUse = "refresh"
	TokenUseReset   TokenUse = "reset"
)

// TokenPayload is the identity data embedded in a bearer token. Access tokens
// carry every field; refresh and reset tokens carry only UserID and Use.
type TokenPayload struct {
	UserID string
	Email  string
	Name   string
	Roles  []string
	Use    TokenUse
}

// TokenClaims is a decoded token: its payload plus the registered claims.
type TokenClaims struct {
	TokenPayload
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// DecodedToken is the result of an unverified decode. Header and Signature are
// only populated for a complete decode.
type DecodedToken struct {
	Header    map[string]any
	Claims    TokenClaims
	Signature string
}

// SignOptions tunes a single Sign call.
type SignOptions struct {
	ExpiresIn time.Duration
}

// SignOption mutates SignOptions.
type SignOption func(*SignOptions)

// WithExpiry overrides the configured default token lifetime.
func WithExpiry(d time.Duration) SignOption {
	return func(o *SignOptions) { o.ExpiresIn = d }
}

// TokenService signs, verifies and decodes bearer tokens.
type TokenService interface {
	Sign(payload TokenPayload, opts ...SignOption) (string, error)
	// Verify checks signature and expiry and fails with domain.ErrInvalidToken
	// on any problem without distinguishing the reason.
	Verify(token string) (*TokenClaims, error)
	// Decode parses without verifying. Never use its result for authorization.
	Decode(token string, complete bool) (*DecodedToken, error)
}

// TokenRevocationStore keeps the ids of tokens revoked before their expiry.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
