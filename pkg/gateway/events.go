package gateway

import "github.com/eludris-community/eludris-go/pkg/models"

// Event is one consumer-facing gateway event. Protocol-internal frames
// (hello, pong, rate limits) are handled by the stream and never surface
// as events.
type Event interface {
	event()
}

// AuthenticatedEvent fires once per session when the gateway accepts the
// token. The stream's user cache has been populated by the time it is
// delivered.
type AuthenticatedEvent struct{}

// MessageEvent fires for every chat message sent on the instance.
type MessageEvent struct {
	Message models.Message
}

// UserUpdateEvent fires when a user's record changes. OldUser is the cached
// record before the update, or nil if the user was unknown to this session.
type UserUpdateEvent struct {
	OldUser *models.User
	User    models.User
}

// PresenceUpdateEvent fires when a user's status changes. OldStatus is the
// cached status before the update, or nil if the user was unknown to this
// session.
type PresenceUpdateEvent struct {
	OldStatus *models.Status
	Status    models.Status
	UserID    uint64
}

func (AuthenticatedEvent) event()  {}
func (MessageEvent) event()        {}
func (UserUpdateEvent) event()     {}
func (PresenceUpdateEvent) event() {}
