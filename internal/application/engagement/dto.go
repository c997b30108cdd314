package engagement

import (
	"time"

	"github.com/marketloop/backend/internal/domain/engagement"
)

// EngagementResponse represents an engagement record in API responses
type EngagementResponse struct {
	ID          string    `json:"id"`
	ActorID     string    `json:"actor_id"`
	ContentID   string    `json:"content_id"`
	ContentKind string    `json:"content_kind"`
	Kind        string    `json:"kind"`
	Body        string    `json:"body,omitempty"`
	ParentID    *string   `json:"parent_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toEngagementResponse(e *engagement.Engagement) EngagementResponse {
	resp := EngagementResponse{
		ID:          e.ID.String(),
		ActorID:     e.ActorID.String(),
		ContentID:   e.ContentID.String(),
		ContentKind: e.ContentKind,
		Kind:        e.Kind.String(),
		Body:        e.Body,
		CreatedAt:   e.CreatedAt,
	}
	if e.ParentID != nil {
		s := e.ParentID.String()
		resp.ParentID = &s
	}
	return resp
}

func toEngagementResponses(records []engagement.Engagement) []EngagementResponse {
	out := make([]EngagementResponse, len(records))
	for i := range records {
		out[i] = toEngagementResponse(&records[i])
	}
	return out
}
