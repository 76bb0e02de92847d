// AngelaMos | 2026
// dto.go

package comment

import (
	"time"
)

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=3,max=500"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=3,max=500"`
}

type CommentResponse struct {
	ID        string        `json:"id"`
	DealID    string        `json:"dealId"`
	Content   string        `json:"content"`
	Author    AuthorSummary `json:"author"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type AuthorSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func ToCommentResponse(c *CommentWithAuthor) CommentResponse {
	return CommentResponse{
		ID:      c.ID,
		DealID:  c.DealID,
		Content: c.Content,
		Author: AuthorSummary{
			ID:       c.AuthorID,
			Username: c.AuthorUsername,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToCommentResponseList(comments []CommentWithAuthor) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, ToCommentResponse(&comments[i]))
	}
	return responses
}
