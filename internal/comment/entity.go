// AngelaMos | 2026
// entity.go

package comment

import (
	"time"
)

type Comment struct {
	ID        string    `db:"id"`
	DealID    string    `db:"deal_id"`
	AuthorID  string    `db:"author_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type CommentWithAuthor struct {
	Comment
	AuthorUsername string `db:"author_username"`
}
