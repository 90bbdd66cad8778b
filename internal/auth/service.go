// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/templates/pos-backend/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

type UserInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProvider is the credential store as seen by authentication. Register
// decides the role itself; callers never choose it.
type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Register(
		ctx context.Context,
		email, passwordHash, name string,
	) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type TokenIssuer interface {
	Verifier
	Issue(claims Claims) (string, error)
	Revoke(ctx context.Context, identity *Identity) error
}

type Service struct {
	tokens       TokenIssuer
	userProvider UserProvider
}

func NewService(tokens TokenIssuer, userProvider UserProvider) *Service {
	return &Service{
		tokens:       tokens,
		userProvider: userProvider,
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*Session, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Register(ctx, req.Email, passwordHash, req.Name)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	slog.InfoContext(ctx, "user registered",
		"user_id", user.ID,
		"role", user.Role,
	)

	return s.startSession(user)
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*Session, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // equalizes timing for unknown accounts
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.userProvider.UpdatePassword(ctx, user.ID, newHash); err != nil {
			slog.WarnContext(ctx, "password rehash failed",
				"user_id", user.ID,
				"error", err,
			)
		}
	}

	return s.startSession(user)
}

// Logout revokes the token when it still verifies. An unknown or already
// invalid token is not an error: the cookie is cleared either way.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	identity, err := s.tokens.Verify(ctx, token)
	if err != nil {
		return nil //nolint:nilerr // nothing left to revoke
	}

	return s.tokens.Revoke(ctx, identity)
}

func (s *Service) CurrentUser(
	ctx context.Context,
	identity *Identity,
) (*UserResponse, error) {
	if err := identity.Require(); err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	user, err := s.userProvider.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	resp.CreatedAt = &user.CreatedAt
	resp.UpdatedAt = &user.UpdatedAt
	return &resp, nil
}

func (s *Service) startSession(user *UserInfo) (*Session, error) {
	token, err := s.tokens.Issue(Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &Session{
		User:  toUserResponse(user),
		Token: token,
	}, nil
}

func toUserResponse(user *UserInfo) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}
