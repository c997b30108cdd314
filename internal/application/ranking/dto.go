package ranking

import (
	"time"

	"github.com/marketloop/backend/internal/domain/ranking"
)

// ScoreEntryResponse represents a score entry in API responses
type ScoreEntryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Category  string    `json:"category"`
	Score     float64   `json:"score"`
	UpdatedBy *string   `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserAggregateResponse represents a user's summed score across categories
type UserAggregateResponse struct {
	UserID     string  `json:"user_id"`
	TotalScore float64 `json:"total_score"`
}

func toScoreEntryResponse(e *ranking.ScoreEntry) ScoreEntryResponse {
	resp := ScoreEntryResponse{
		ID:        e.ID.String(),
		UserID:    e.UserID.String(),
		Category:  e.Category.String(),
		Score:     e.Score,
		UpdatedAt: e.UpdatedAt,
	}
	if e.UpdatedBy != nil {
		s := e.UpdatedBy.String()
		resp.UpdatedBy = &s
	}
	return resp
}

func toScoreEntryResponses(entries []ranking.ScoreEntry) []ScoreEntryResponse {
	out := make([]ScoreEntryResponse, len(entries))
	for i := range entries {
		out[i] = toScoreEntryResponse(&entries[i])
	}
	return out
}
