// AngelaMos | 2026
// token.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/templates/pos-backend/internal/config"
	"github.com/carterperez-dev/templates/pos-backend/internal/core"
)

const (
	RoleAdmin   = "ADMIN"
	RoleCashier = "CASHIER"
)

var ErrMissingSecret = errors.New("jwt secret is not configured")

// Claims are the identity fields embedded in a session token.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Identity is a verified session. Only TokenService.Verify produces one, so
// holding an *Identity means the token behind it checked out.
type Identity struct {
	Claims
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Require reports ErrUnauthorized for a nil identity and ErrForbidden when the
// role is not one of roles. No roles means any authenticated identity passes.
func (i *Identity) Require(roles ...string) error {
	if i == nil {
		return core.ErrUnauthorized
	}
	if len(roles) == 0 {
		return nil
	}
	for _, role := range roles {
		if i.Role == role {
			return nil
		}
	}
	return core.ErrForbidden
}

type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type TokenService struct {
	key         jwk.Key
	config      config.JWTConfig
	revocations RevocationList
	now         func() time.Time
}

func NewTokenService(
	cfg config.JWTConfig,
	revocations RevocationList,
) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import signing key: %w", err)
	}

	if cfg.Expire <= 0 {
		cfg.Expire = 7 * 24 * time.Hour
	}

	return &TokenService{
		key:         key,
		config:      cfg,
		revocations: revocations,
		now:         time.Now,
	}, nil
}

func (s *TokenService) Lifetime() time.Duration {
	return s.config.Expire
}

func (s *TokenService) Issue(claims Claims) (string, error) {
	now := s.now()

	token, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(s.config.Issuer).
		Audience([]string{s.config.Audience}).
		Subject(claims.UserID).
		IssuedAt(now).
		NotBefore(now).
		Expiration(now.Add(s.config.Expire)).
		Claim("email", claims.Email).
		Claim("name", claims.Name).
		Claim("role", claims.Role).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), s.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

// Verify checks signature, issuer, audience and expiry. Every failure wraps
// core.ErrTokenInvalid; callers must not treat any failure mode differently.
func (s *TokenService) Verify(
	ctx context.Context,
	tokenString string,
) (*Identity, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), s.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithAudience(s.config.Audience),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w: %w", core.ErrTokenInvalid, core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	identity, err := identityFromToken(token)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w: %w", core.ErrTokenInvalid, err)
	}

	if s.revocations != nil && identity.TokenID != "" {
		revoked, revErr := s.revocations.IsRevoked(ctx, identity.TokenID)
		if revErr != nil {
			slog.WarnContext(ctx, "revocation check failed, accepting token",
				"error", revErr,
				"user_id", identity.UserID,
			)
		}
		if revoked {
			return nil, fmt.Errorf("verify token: %w: %w", core.ErrTokenInvalid, core.ErrTokenRevoked)
		}
	}

	return identity, nil
}

// Revoke blacklists the identity's token until it would have expired anyway.
func (s *TokenService) Revoke(ctx context.Context, identity *Identity) error {
	if s.revocations == nil || identity == nil || identity.TokenID == "" {
		return nil
	}
	if err := s.revocations.Revoke(ctx, identity.TokenID, identity.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func identityFromToken(token jwt.Token) (*Identity, error) {
	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, errors.New("missing subject")
	}

	var email, name, role string
	if err := token.Get("email", &email); err != nil {
		return nil, errors.New("missing email claim")
	}
	if err := token.Get("name", &name); err != nil {
		return nil, errors.New("missing name claim")
	}
	if err := token.Get("role", &role); err != nil {
		return nil, errors.New("missing role claim")
	}
	if role != RoleAdmin && role != RoleCashier {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	identity := &Identity{
		Claims: Claims{
			UserID: subject,
			Email:  email,
			Name:   name,
			Role:   role,
		},
	}

	if jti, ok := token.JwtID(); ok {
		identity.TokenID = jti
	}
	if iat, ok := token.IssuedAt(); ok {
		identity.IssuedAt = iat
	}
	if exp, ok := token.Expiration(); ok {
		identity.ExpiresAt = exp
	}

	return identity, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "exp") &&
		strings.Contains(msg, "not satisfied")
}
