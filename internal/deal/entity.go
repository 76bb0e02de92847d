// AngelaMos | 2026
// entity.go

package deal

import (
	"time"
)

// Deal is a community-submitted offer. Temperature is denormalized from
// the votes table and rewritten on every vote mutation.
type Deal struct {
	ID            string    `db:"id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	Price         float64   `db:"price"`
	OriginalPrice *float64  `db:"original_price"`
	URL           *string   `db:"url"`
	Category      string    `db:"category"`
	Status        string    `db:"status"`
	Temperature   int       `db:"temperature"`
	AuthorID      string    `db:"author_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// DealWithAuthor carries the read-time join used by listings and detail
// views. AuthorEmail is only populated for the moderation queue.
type DealWithAuthor struct {
	Deal
	AuthorUsername string  `db:"author_username"`
	AuthorEmail    *string `db:"author_email"`
}
