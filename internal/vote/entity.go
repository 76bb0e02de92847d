// AngelaMos | 2026
// entity.go

package vote

import (
	"time"
)

const (
	TypeHot  = "hot"
	TypeCold = "cold"
)

func ValidType(t string) bool {
	return t == TypeHot || t == TypeCold
}

// Vote is one user's stance on one deal. The (user_id, deal_id) pair is
// unique in storage; that constraint, not application logic, is what
// guarantees at most one vote per user per deal.
type Vote struct {
	ID        string    `db:"id"`
	DealID    string    `db:"deal_id"`
	UserID    string    `db:"user_id"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
