package events

import "time"

// EventType enumerates domain events the gateway publishes.
type EventType string

const (
	EventUserRegistered EventType = "user.registered"
	EventRoleChanged    EventType = "user.role_changed"
	EventBookingCreated EventType = "booking.created"
	EventWishlistAdded  EventType = "wishlist.added"
	EventStoryPublished EventType = "story.published"
)

// Event carries a published domain occurrence.
type Event struct {
	ID         string
	Type       EventType
	OccurredAt time.Time
	Payload    map[string]any
}
