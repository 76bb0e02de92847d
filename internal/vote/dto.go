// AngelaMos | 2026
// dto.go

package vote

type CastVoteRequest struct {
	Type string `json:"type" validate:"required,oneof=hot cold"`
}

type VoteResponse struct {
	DealID      string `json:"dealId"`
	VoteType    string `json:"voteType,omitempty"`
	Temperature int    `json:"temperature"`
	HotCount    int    `json:"hotCount"`
	ColdCount   int    `json:"coldCount"`
	Message     string `json:"message,omitempty"`
}
