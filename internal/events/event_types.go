package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/blog-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventPostCreated    EventType = "post_created"
	EventPostUpdated    EventType = "post_updated"
	EventPostDeleted    EventType = "post_deleted"
	EventCommentCreated EventType = "comment_created"
	EventCommentDeleted EventType = "comment_deleted"
)

// Actor encapsulates the identity behind an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps an event with a fresh id and timestamp.
func NewEvent(eventType EventType, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// PostPayload payload for post lifecycle events.
type PostPayload struct {
	PostID    string `json:"post_id"`
	Title     string `json:"title"`
	Published bool   `json:"published"`
}

// CommentPayload payload for comment lifecycle events.
type CommentPayload struct {
	CommentID   string `json:"comment_id"`
	PostID      string `json:"post_id"`
	BodyPreview string `json:"body_preview"`
}
