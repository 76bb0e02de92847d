// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
	"github.com/mahdiwhb/DEALEXPRESS/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIdentityTaken      = errors.New("username or email already in use")
)

// UserInfo is the account view the credential layer works with.
type UserInfo struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// UserProvider is implemented by the user service. It keeps the
// credential layer free of any storage detail.
type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		username, email, passwordHash string,
	) (*UserInfo, error)
}

type Service struct {
	users      UserProvider
	jwtManager *JWTManager
	revoked    TokenRevocationStore
	logger     *slog.Logger
}

func NewService(
	users UserProvider,
	jwtManager *JWTManager,
	revoked TokenRevocationStore,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:      users,
		jwtManager: jwtManager,
		revoked:    revoked,
		logger:     logger,
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.Username, req.Email, passwordHash)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrIdentityTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtManager.CreateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"username", user.Username,
	)

	return &AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	var hash *string
	if user != nil {
		hash = &user.PasswordHash
	}

	// Verification runs against a dummy hash when the account does not
	// exist, so both paths cost the same.
	valid, err := core.VerifyPasswordTimingSafe(req.Password, hash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid || user == nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.CreateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return &AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

// VerifyToken checks signature, expiry and the revocation list, then
// reloads the account so the caller always sees the current role.
func (s *Service) VerifyToken(
	ctx context.Context,
	tokenString string,
) (*middleware.Identity, error) {
	claims, err := s.jwtManager.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	revoked, err := s.checkRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("token revoked: %w", core.ErrTokenRevoked)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf(
				"account no longer exists: %w",
				core.ErrTokenInvalid,
			)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	return &middleware.Identity{UserID: user.ID, Role: user.Role}, nil
}

// Logout puts the token's ID on the revocation list until the token
// would have expired on its own.
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.jwtManager.ParseToken(tokenString)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.revoked.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return err
	}

	s.logger.Info("user logged out", "user_id", claims.UserID)

	return nil
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	userID string,
) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *Service) checkRevoked(
	ctx context.Context,
	tokenID string,
) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	return s.revoked.IsRevoked(ctx, tokenID)
}

func toUserResponse(user *UserInfo) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

var _ middleware.TokenVerifier = (*Service)(nil)
