// AngelaMos | 2026
// policy.go

// Package policy holds the pure visibility and authorization rules for
// deals, comments and role management. Every function is a decision
// over (resource attributes, actor) with no I/O, so the rules can be
// tested exhaustively and applied identically by every handler.
package policy

import (
	"fmt"

	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type DealStatus string

const (
	StatusPending  DealStatus = "pending"
	StatusApproved DealStatus = "approved"
	StatusRejected DealStatus = "rejected"
)

// Actor identifies the requester. The zero value is an unauthenticated
// visitor.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsAnonymous() bool {
	return a.ID == ""
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsModerator reports whether the actor holds moderation powers, which
// admins always do.
func (a Actor) IsModerator() bool {
	return a.Role == RoleModerator || a.Role == RoleAdmin
}

// CanViewDeal implements the visibility rule: approved deals are public;
// pending and rejected deals exist only for their author and for
// moderators/admins. Callers must translate a false result into a
// not-found response, never a forbidden one, so hidden deals are
// indistinguishable from absent ones.
func CanViewDeal(actor Actor, authorID string, status DealStatus) bool {
	if status == StatusApproved {
		return true
	}
	if actor.IsAnonymous() {
		return false
	}
	return actor.ID == authorID || actor.IsModerator()
}

// SeesAllStatuses reports whether listing and search skip the
// approved-only filter.
func SeesAllStatuses(actor Actor) bool {
	return actor.IsModerator()
}

// CanEditDeal distinguishes two failure modes: a requester who is
// neither author nor admin lacks rights (ErrForbidden), while the
// author of a deal that already left the pending state hits a state
// restriction (ErrInvalidState), reported as a client error rather
// than a permission error.
func CanEditDeal(actor Actor, authorID string, status DealStatus) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.ID != authorID {
		return fmt.Errorf("edit deal: %w", core.ErrForbidden)
	}
	if status != StatusPending {
		return fmt.Errorf(
			"edit deal: only pending deals can be edited: %w",
			core.ErrInvalidState,
		)
	}
	return nil
}

func CanDeleteDeal(actor Actor, authorID string) bool {
	return actor.IsAdmin() || actor.ID == authorID
}

func CanModerateDeals(actor Actor) bool {
	return actor.IsModerator()
}

// ModerationTarget validates the requested transition. Pending is not a
// legal target: approval and rejection are terminal in this workflow.
func ModerationTarget(status string) (DealStatus, error) {
	switch DealStatus(status) {
	case StatusApproved, StatusRejected:
		return DealStatus(status), nil
	}
	return "", fmt.Errorf(
		"moderate deal: status must be approved or rejected: %w",
		core.ErrInvalidInput,
	)
}

func CanComment(actor Actor) bool {
	return !actor.IsAnonymous()
}

func CanEditComment(actor Actor, authorID string) bool {
	return actor.ID == authorID
}

func CanDeleteComment(actor Actor, authorID string) bool {
	return actor.IsAdmin() || actor.ID == authorID
}

func CanManageRoles(actor Actor) bool {
	return actor.IsAdmin()
}

func CanVote(actor Actor) bool {
	return !actor.IsAnonymous()
}
