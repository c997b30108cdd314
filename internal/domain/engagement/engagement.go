package engagement

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marketloop/backend/internal/domain/shared"
)

// Kind represents the kind of engagement
type Kind string

const (
	KindReaction Kind = "reaction"
	KindComment  Kind = "comment"
	KindReshare  Kind = "reshare"
)

// IsValid checks if the kind is a known engagement kind
func (k Kind) IsValid() bool {
	switch k {
	case KindReaction, KindComment, KindReshare:
		return true
	}
	return false
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// Engagement is a reaction, comment, or reshare tied to a piece of content.
// It is owned by the actor and read by anyone with content-view access.
type Engagement struct {
	ID          uuid.UUID
	ActorID     uuid.UUID
	ContentID   uuid.UUID
	ContentKind string
	Kind        Kind
	Body        string
	ParentID    *uuid.UUID
	CreatedAt   time.Time
}

// NewEngagement creates an engagement record
func NewEngagement(actorID, contentID uuid.UUID, contentKind string, kind Kind) (*Engagement, error) {
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Actor ID cannot be empty")
	}
	if contentID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Content ID cannot be empty")
	}
	if strings.TrimSpace(contentKind) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Content kind cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown engagement kind: "+string(kind))
	}

	return &Engagement{
		ID:          uuid.New(),
		ActorID:     actorID,
		ContentID:   contentID,
		ContentKind: contentKind,
		Kind:        kind,
		CreatedAt:   time.Now(),
	}, nil
}

// NewComment creates a comment engagement with a text body and optional parent
func NewComment(actorID, contentID uuid.UUID, contentKind, body string, parentID *uuid.UUID) (*Engagement, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Comment body cannot be empty")
	}

	e, err := NewEngagement(actorID, contentID, contentKind, KindComment)
	if err != nil {
		return nil, err
	}
	e.Body = body
	e.ParentID = parentID
	return e, nil
}

// IsOwnedBy reports whether the engagement belongs to the given actor
func (e *Engagement) IsOwnedBy(actorID uuid.UUID) bool {
	return e.ActorID == actorID
}
