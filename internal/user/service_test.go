// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
	"github.com/mahdiwhb/DEALEXPRESS/internal/policy"
)

type stubRepo struct {
	byID    map[string]*User
	byEmail map[string]*User
}

func newStubRepo(users ...*User) *stubRepo {
	repo := &stubRepo{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
	for _, u := range users {
		repo.byID[u.ID] = u
		repo.byEmail[u.Email] = u
	}
	return repo
}

func (s *stubRepo) Create(_ context.Context, user *User) error {
	if _, exists := s.byEmail[user.Email]; exists {
		return fmt.Errorf("insert user: %w", core.ErrDuplicateKey)
	}
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user
	return nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, core.ErrNotFound)
	}
	return u, nil
}

func (s *stubRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, core.ErrNotFound)
	}
	return u, nil
}

func (s *stubRepo) UpdateRole(
	_ context.Context,
	id, role string,
) (*User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, core.ErrNotFound)
	}
	u.Role = role
	return u, nil
}

func (s *stubRepo) List(
	_ context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	users := make([]User, 0, len(s.byID))
	for _, u := range s.byID {
		users = append(users, *u)
	}
	return users, len(users), nil
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc := NewService(newStubRepo())

	info, err := svc.Create(
		context.Background(),
		"alice",
		"Alice@Example.COM",
		"$argon2id$fakehash",
	)
	require.NoError(t, err)

	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, "alice@example.com", info.Email)
	assert.Equal(t, string(policy.RoleUser), info.Role)
	assert.NotEmpty(t, info.ID)
}

func TestCreateSurfacesDuplicates(t *testing.T) {
	repo := newStubRepo(&User{
		ID:    "u1",
		Email: "taken@example.com",
	})
	svc := NewService(repo)

	_, err := svc.Create(
		context.Background(),
		"bob",
		"taken@example.com",
		"$argon2id$fakehash",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestGetByEmailLowercasesLookup(t *testing.T) {
	repo := newStubRepo(&User{ID: "u1", Email: "alice@example.com"})
	svc := NewService(repo)

	info, err := svc.GetByEmail(context.Background(), "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", info.ID)
}

func TestUpdateUserRole(t *testing.T) {
	t.Run("valid role is applied", func(t *testing.T) {
		repo := newStubRepo(&User{ID: "u1", Role: "user"})
		svc := NewService(repo)

		updated, err := svc.UpdateUserRole(
			context.Background(),
			"u1",
			"moderator",
		)
		require.NoError(t, err)
		assert.Equal(t, "moderator", updated.Role)
	})

	t.Run("invalid role is rejected before storage", func(t *testing.T) {
		repo := newStubRepo(&User{ID: "u1", Role: "user"})
		svc := NewService(repo)

		_, err := svc.UpdateUserRole(context.Background(), "u1", "overlord")
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInvalidInput)
		assert.Equal(t, "user", repo.byID["u1"].Role)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewService(newStubRepo())

		_, err := svc.UpdateUserRole(context.Background(), "ghost", "admin")
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestUserResponseHidesPasswordHash(t *testing.T) {
	resp := ToUserResponse(&User{
		ID:           "u1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$supersecret",
		Role:         "user",
	})

	assert.Equal(t, "alice", resp.Username)

	// The projection type has no hash field at all; this guards the
	// serialized form.
	assert.NotContains(t, fmt.Sprintf("%+v", resp), "supersecret")
}
