// AngelaMos | 2026
// dto.go

package deal

import (
	"time"
)

type CreateDealRequest struct {
	Title         string   `json:"title"         validate:"required,min=5,max=100"`
	Description   string   `json:"description"   validate:"required,min=10,max=500"`
	Price         float64  `json:"price"         validate:"gte=0"`
	OriginalPrice *float64 `json:"originalPrice" validate:"omitempty,gte=0"`
	URL           *string  `json:"url"           validate:"omitempty,url"`
	Category      string   `json:"category"      validate:"omitempty,oneof=High-Tech Maison Mode Loisirs Autre"`
}

// UpdateDealRequest is a partial update; nil fields are left untouched.
type UpdateDealRequest struct {
	Title         *string  `json:"title"         validate:"omitempty,min=5,max=100"`
	Description   *string  `json:"description"   validate:"omitempty,min=10,max=500"`
	Price         *float64 `json:"price"         validate:"omitempty,gte=0"`
	OriginalPrice *float64 `json:"originalPrice" validate:"omitempty,gte=0"`
	URL           *string  `json:"url"           validate:"omitempty,url"`
	Category      *string  `json:"category"      validate:"omitempty,oneof=High-Tech Maison Mode Loisirs Autre"`
}

type ModerateDealRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type AuthorSummary struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email,omitempty"`
}

type DealResponse struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Price         float64       `json:"price"`
	OriginalPrice *float64      `json:"originalPrice,omitempty"`
	URL           *string       `json:"url,omitempty"`
	Category      string        `json:"category"`
	Status        string        `json:"status"`
	Temperature   int           `json:"temperature"`
	Author        AuthorSummary `json:"author"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type SearchResponse struct {
	Query string         `json:"query"`
	Count int            `json:"count"`
	Data  []DealResponse `json:"data"`
}

type ListDealsParams struct {
	Page  int
	Limit int
}

func (p *ListDealsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

func (p ListDealsParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func ToDealResponse(d *DealWithAuthor) DealResponse {
	return DealResponse{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		URL:           d.URL,
		Category:      d.Category,
		Status:        d.Status,
		Temperature:   d.Temperature,
		Author: AuthorSummary{
			ID:       d.AuthorID,
			Username: d.AuthorUsername,
			Email:    d.AuthorEmail,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func ToDealResponseList(deals []DealWithAuthor) []DealResponse {
	responses := make([]DealResponse, 0, len(deals))
	for i := range deals {
		responses = append(responses, ToDealResponse(&deals[i]))
	}
	return responses
}
