// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
)

type stubUserProvider struct {
	byID    map[string]*UserInfo
	byEmail map[string]*UserInfo
	nextID  int
}

func newStubUserProvider() *stubUserProvider {
	return &stubUserProvider{
		byID:    make(map[string]*UserInfo),
		byEmail: make(map[string]*UserInfo),
	}
}

func (s *stubUserProvider) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user: %w", core.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (s *stubUserProvider) GetByID(
	_ context.Context,
	id string,
) (*UserInfo, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", core.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (s *stubUserProvider) Create(
	_ context.Context,
	username, email, passwordHash string,
) (*UserInfo, error) {
	if _, exists := s.byEmail[email]; exists {
		return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}

	s.nextID++
	u := &UserInfo{
		ID:           fmt.Sprintf("user-%d", s.nextID),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         "user",
		CreatedAt:    time.Now(),
	}
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u
	return u, nil
}

func (s *stubUserProvider) add(t *testing.T, u *UserInfo) {
	t.Helper()
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u
}

type stubRevocationStore struct {
	revoked map[string]time.Duration
}

func newStubRevocationStore() *stubRevocationStore {
	return &stubRevocationStore{revoked: make(map[string]time.Duration)}
}

func (s *stubRevocationStore) Revoke(
	_ context.Context,
	tokenID string,
	ttl time.Duration,
) error {
	s.revoked[tokenID] = ttl
	return nil
}

func (s *stubRevocationStore) IsRevoked(
	_ context.Context,
	tokenID string,
) (bool, error) {
	_, ok := s.revoked[tokenID]
	return ok, nil
}

func newTestAuthService(
	t *testing.T,
	users *stubUserProvider,
	revoked *stubRevocationStore,
) *Service {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(users, newTestManager(t, time.Hour), revoked, logger)
}

func hashedUser(t *testing.T, id, email, password string) *UserInfo {
	t.Helper()

	hash, err := core.HashPassword(password)
	require.NoError(t, err)

	return &UserInfo{
		ID:           id,
		Username:     "someone",
		Email:        email,
		PasswordHash: hash,
		Role:         "user",
		CreatedAt:    time.Now(),
	}
}

func TestRegisterIssuesTokenAndHidesHash(t *testing.T) {
	users := newStubUserProvider()
	svc := newTestAuthService(t, users, newStubRevocationStore())

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cretword",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "user", resp.User.Role)

	stored := users.byEmail["alice@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cretword", stored.PasswordHash)

	valid, err := core.VerifyPassword("s3cretword", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	users := newStubUserProvider()
	users.add(t, hashedUser(t, "user-1", "alice@example.com", "original"))
	svc := newTestAuthService(t, users, newStubRevocationStore())

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "s3cretword",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIdentityTaken)
}

func TestLoginUnknownAndWrongPasswordLookAlike(t *testing.T) {
	users := newStubUserProvider()
	users.add(t, hashedUser(t, "user-1", "alice@example.com", "rightpass"))
	svc := newTestAuthService(t, users, newStubRevocationStore())

	_, unknownErr := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	require.Error(t, unknownErr)

	_, wrongErr := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrongpass",
	})
	require.Error(t, wrongErr)

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLoginSucceedsWithMixedCaseEmail(t *testing.T) {
	users := newStubUserProvider()
	users.add(t, hashedUser(t, "user-1", "alice@example.com", "rightpass"))
	svc := newTestAuthService(t, users, newStubRevocationStore())

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Alice@Example.com ",
		Password: "rightpass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "user-1", resp.User.ID)
}

func TestLogoutRevokesToken(t *testing.T) {
	users := newStubUserProvider()
	users.add(t, hashedUser(t, "user-1", "alice@example.com", "rightpass"))
	revoked := newStubRevocationStore()
	svc := newTestAuthService(t, users, revoked)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "rightpass",
	})
	require.NoError(t, err)

	identity, err := svc.VerifyToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)

	require.NoError(t, svc.Logout(context.Background(), resp.Token))
	assert.Len(t, revoked.revoked, 1)

	_, err = svc.VerifyToken(context.Background(), resp.Token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestVerifyTokenReloadsCurrentRole(t *testing.T) {
	users := newStubUserProvider()
	users.add(t, hashedUser(t, "user-1", "alice@example.com", "rightpass"))
	svc := newTestAuthService(t, users, newStubRevocationStore())

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "rightpass",
	})
	require.NoError(t, err)

	users.byID["user-1"].Role = "moderator"

	identity, err := svc.VerifyToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "moderator", identity.Role)
}

func TestVerifyTokenDeletedAccount(t *testing.T) {
	users := newStubUserProvider()
	users.add(t, hashedUser(t, "user-1", "alice@example.com", "rightpass"))
	svc := newTestAuthService(t, users, newStubRevocationStore())

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "rightpass",
	})
	require.NoError(t, err)

	delete(users.byID, "user-1")
	delete(users.byEmail, "alice@example.com")

	_, err = svc.VerifyToken(context.Background(), resp.Token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}
