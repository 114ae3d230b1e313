package gateway

import (
	"github.com/eludris-community/eludris-go/pkg/models"
	"github.com/eludris-community/eludris-go/pkg/wire"
)

// sessionData is the per-session cache used to enrich events: the
// authenticated user plus the last-known record of every user the gateway
// has mentioned. It is rebuilt from scratch for every session (each
// reconnect re-authenticates and receives a fresh snapshot) and is only
// ever touched from the stream's single decode path.
type sessionData struct {
	user  *models.User
	users map[uint64]models.User
}

func newSessionData() *sessionData {
	return &sessionData{users: make(map[uint64]models.User)}
}

// apply folds one decoded payload into the cache and returns the event to
// deliver, or nil for protocol-internal payloads. Old-value fields on the
// returned event always reflect the cache as it was before this payload.
func (d *sessionData) apply(payload wire.ServerPayload) Event {
	switch p := payload.(type) {
	case wire.Authenticated:
		user := p.User
		d.user = &user
		for _, u := range p.Users {
			d.users[u.ID] = u
		}
		return AuthenticatedEvent{}

	case wire.MessageCreate:
		return MessageEvent{Message: p.Message}

	case wire.UserUpdate:
		var old *models.User
		if prev, ok := d.users[p.User.ID]; ok {
			old = &prev
		}
		d.users[p.User.ID] = p.User
		return UserUpdateEvent{OldUser: old, User: p.User}

	case wire.PresenceUpdate:
		var old *models.Status
		if prev, ok := d.users[p.UserID]; ok {
			old = &prev.Status
		}
		return PresenceUpdateEvent{OldStatus: old, UserID: p.UserID, Status: p.Status}

	default:
		// Hello, Pong and RateLimit are consumed by the protocol layer.
		return nil
	}
}
