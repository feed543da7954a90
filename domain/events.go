package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType is the routing key of a domain event
type EventType string

const (
	UserRegisteredEvent      EventType = "user.registered"
	UserVerifiedEvent        EventType = "user.verified"
	OrganizationCreatedEvent EventType = "organization.created"
	OrganizationDeletedEvent EventType = "organization.deleted"
	MemberAddedEvent         EventType = "organization.member_added"
	MemberRemovedEvent       EventType = "organization.member_removed"
	ReviewCreatedEvent       EventType = "review.created"
	ReviewDeletedEvent       EventType = "review.deleted"
)

// Event represents a business event that occurred in the system
type Event struct {
	ID         string                 `json:"id"`
	Type       EventType              `json:"type"`
	ActorID    uint                   `json:"actor_id,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

// UserRegistered is the payload of user.registered
type UserRegistered struct {
	UserID   uint     `json:"user_id"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	UserType UserType `json:"user_type"`
}

// MemberAdded is the payload of organization.member_added
type MemberAdded struct {
	OrganizationID   uint       `json:"organization_id"`
	OrganizationName string     `json:"organization_name"`
	UserID           uint       `json:"user_id"`
	Role             MemberRole `json:"role"`
}

// ReviewCreated is the payload of review.created
type ReviewCreated struct {
	ReviewID       uint   `json:"review_id"`
	ProfessionalID uint   `json:"professional_id"`
	AuthorID       uint   `json:"author_id"`
	Rating         int    `json:"rating"`
	AppointmentID  string `json:"appointment_id"`
}

// NewEvent creates a new event with common fields populated
func NewEvent(eventType EventType, actorID uint) *Event {
	return &Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
		Payload:    make(map[string]interface{}),
	}
}

// WithPayload flattens a typed payload into the event
func (e *Event) WithPayload(v interface{}) *Event {
	b, err := json.Marshal(v)
	if err != nil {
		return e
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return e
	}
	for k, val := range m {
		e.Payload[k] = val
	}
	return e
}

// WithMetadata adds a single payload entry
func (e *Event) WithMetadata(key string, value interface{}) *Event {
	e.Payload[key] = value
	return e
}

// DecodePayload decodes an event body published on the broker into T
func DecodePayload[T any](body []byte) (*Event, T, error) {
	var zero T
	var envelope struct {
		Event
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, zero, fmt.Errorf("decode event: %w", err)
	}
	var payload T
	if len(envelope.Payload) > 0 {
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			return nil, zero, fmt.Errorf("decode payload: %w", err)
		}
	}
	ev := envelope.Event
	ev.Payload = nil
	return &ev, payload, nil
}
