package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
)

const defaultTTL = 15 * time.Minute

// claims is the wire shape of every token. The user id travels as "sub" and
// the token use as "typ".
type claims struct {
	Use   string   `json:"typ,omitempty"`
	Email string   `json:"email,omitempty"`
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// JWTService issues and checks HS256 tokens signed with a shared secret.
type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService returns a service signing with secret. ttl is the lifetime
// used when Sign is called without ports.WithExpiry.
func NewJWTService(secret, issuer string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &JWTService{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

var _ ports.TokenService = (*JWTService)(nil)

func (s *JWTService) Sign(payload ports.TokenPayload, opts ...ports.SignOption) (string, error) {
	o := ports.SignOptions{ExpiresIn: s.ttl}
	for _, opt := range opts {
		opt(&o)
	}

	now := s.now()
	c := claims{
		Use:   string(payload.Use),
		Email: payload.Email,
		Name:  payload.Name,
		Roles: payload.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   payload.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(o.ExpiresIn)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

func (s *JWTService) Verify(token string) (*ports.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	var c claims
	tkn, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	out := toTokenClaims(&c)
	return &out, nil
}

func (s *JWTService) Decode(token string, complete bool) (*ports.DecodedToken, error) {
	var c claims
	tkn, parts, err := jwt.NewParser().ParseUnverified(token, &c)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	out := &ports.DecodedToken{Claims: toTokenClaims(&c)}
	if complete {
		out.Header = tkn.Header
		if len(parts) == 3 {
			out.Signature = parts[2]
		}
	}
	return out, nil
}

func toTokenClaims(c *claims) ports.TokenClaims {
	out := ports.TokenClaims{
		TokenPayload: ports.TokenPayload{
			UserID: c.Subject,
			Email:  c.Email,
			Name:   c.Name,
			Roles:  c.Roles,
			Use:    ports.TokenUse(c.Use),
		},
		TokenID: c.ID,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}
