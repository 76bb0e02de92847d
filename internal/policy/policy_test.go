// AngelaMos | 2026
// policy_test.go

package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
)

var (
	anonymous = Actor{}
	author    = Actor{ID: "author-1", Role: RoleUser}
	stranger  = Actor{ID: "user-2", Role: RoleUser}
	moderator = Actor{ID: "mod-1", Role: RoleModerator}
	admin     = Actor{ID: "admin-1", Role: RoleAdmin}
)

func TestCanViewDeal(t *testing.T) {
	tests := []struct {
		name   string
		actor  Actor
		status DealStatus
		want   bool
	}{
		{"anonymous sees approved", anonymous, StatusApproved, true},
		{"anonymous blocked from pending", anonymous, StatusPending, false},
		{"anonymous blocked from rejected", anonymous, StatusRejected, false},
		{"stranger sees approved", stranger, StatusApproved, true},
		{"stranger blocked from pending", stranger, StatusPending, false},
		{"stranger blocked from rejected", stranger, StatusRejected, false},
		{"author sees own pending", author, StatusPending, true},
		{"author sees own rejected", author, StatusRejected, true},
		{"moderator sees pending", moderator, StatusPending, true},
		{"moderator sees rejected", moderator, StatusRejected, true},
		{"admin sees pending", admin, StatusPending, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanViewDeal(tt.actor, author.ID, tt.status)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeesAllStatuses(t *testing.T) {
	assert.False(t, SeesAllStatuses(anonymous))
	assert.False(t, SeesAllStatuses(stranger))
	assert.True(t, SeesAllStatuses(moderator))
	assert.True(t, SeesAllStatuses(admin))
}

func TestCanEditDeal(t *testing.T) {
	t.Run("author edits own pending deal", func(t *testing.T) {
		require.NoError(t, CanEditDeal(author, author.ID, StatusPending))
	})

	t.Run("admin edits any deal in any state", func(t *testing.T) {
		require.NoError(t, CanEditDeal(admin, author.ID, StatusApproved))
		require.NoError(t, CanEditDeal(admin, author.ID, StatusRejected))
	})

	t.Run("stranger gets a permission error", func(t *testing.T) {
		err := CanEditDeal(stranger, author.ID, StatusPending)
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrForbidden))
		assert.False(t, errors.Is(err, core.ErrInvalidState))
	})

	t.Run("moderator without ownership gets a permission error", func(t *testing.T) {
		err := CanEditDeal(moderator, author.ID, StatusPending)
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrForbidden))
	})

	t.Run("author of approved deal gets a state error", func(t *testing.T) {
		err := CanEditDeal(author, author.ID, StatusApproved)
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrInvalidState))
		assert.False(t, errors.Is(err, core.ErrForbidden))
	})

	t.Run("author of rejected deal gets a state error", func(t *testing.T) {
		err := CanEditDeal(author, author.ID, StatusRejected)
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrInvalidState))
	})
}

func TestCanDeleteDeal(t *testing.T) {
	assert.True(t, CanDeleteDeal(author, author.ID))
	assert.True(t, CanDeleteDeal(admin, author.ID))
	assert.False(t, CanDeleteDeal(stranger, author.ID))
	assert.False(t, CanDeleteDeal(moderator, author.ID))
	assert.False(t, CanDeleteDeal(anonymous, author.ID))
}

func TestCanModerateDeals(t *testing.T) {
	assert.True(t, CanModerateDeals(moderator))
	assert.True(t, CanModerateDeals(admin))
	assert.False(t, CanModerateDeals(stranger))
	assert.False(t, CanModerateDeals(anonymous))
}

func TestModerationTarget(t *testing.T) {
	approved, err := ModerationTarget("approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved)

	rejected, err := ModerationTarget("rejected")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected)

	for _, invalid := range []string{"pending", "deleted", "", "APPROVED"} {
		_, err := ModerationTarget(invalid)
		require.Error(t, err, invalid)
		assert.True(t, errors.Is(err, core.ErrInvalidInput))
	}
}

func TestCommentRules(t *testing.T) {
	assert.False(t, CanComment(anonymous))
	assert.True(t, CanComment(stranger))

	assert.True(t, CanEditComment(author, author.ID))
	assert.False(t, CanEditComment(admin, author.ID))
	assert.False(t, CanEditComment(stranger, author.ID))

	assert.True(t, CanDeleteComment(author, author.ID))
	assert.True(t, CanDeleteComment(admin, author.ID))
	assert.False(t, CanDeleteComment(moderator, author.ID))
	assert.False(t, CanDeleteComment(stranger, author.ID))
}

func TestCanManageRoles(t *testing.T) {
	assert.True(t, CanManageRoles(admin))
	assert.False(t, CanManageRoles(moderator))
	assert.False(t, CanManageRoles(stranger))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole("user"))
	assert.True(t, ValidRole("moderator"))
	assert.True(t, ValidRole("admin"))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("Admin"))
}
