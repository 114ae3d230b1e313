// Package wire implements the gateway frame codec. Every frame is a JSON
// object tagged by an "op" discriminator with an optional "d" body; the server
// validates outbound shapes exactly, so encoding must not deviate from them.
package wire

import (
	"encoding/json"
	"time"

	"github.com/eludris-community/eludris-go/pkg/models"
)

// Operation discriminators used on the wire.
const (
	opPing           = "PING"
	opPong           = "PONG"
	opHello          = "HELLO"
	opAuthenticate   = "AUTHENTICATE"
	opAuthenticated  = "AUTHENTICATED"
	opRateLimit      = "RATE_LIMIT"
	opMessageCreate  = "MESSAGE_CREATE"
	opUserUpdate     = "USER_UPDATE"
	opPresenceUpdate = "PRESENCE_UPDATE"
)

// envelope is the outer frame shape: an op tag plus an op-specific body.
type envelope struct {
	D  json.RawMessage `json:"d,omitempty"`
	Op string          `json:"op"`
}

// ServerPayload is one decoded inbound frame. Exactly one of the concrete
// types in this package is returned per frame.
type ServerPayload interface {
	serverPayload()
}

// Hello is the first frame the gateway sends on a fresh connection.
type Hello struct {
	HeartbeatInterval time.Duration
}

// Authenticated confirms a session's token and carries the instance's
// current user snapshot.
type Authenticated struct {
	User  models.User
	Users []models.User
}

// Pong acknowledges a client ping.
type Pong struct{}

// RateLimit tells the client to back off from sending gateway frames.
type RateLimit struct {
	Wait time.Duration
}

// MessageCreate carries a newly sent chat message.
type MessageCreate struct {
	Message models.Message
}

// UserUpdate carries the full new record of a changed user.
type UserUpdate struct {
	User models.User
}

// PresenceUpdate reports a user's status change.
type PresenceUpdate struct {
	Status models.Status
	UserID uint64
}

func (Hello) serverPayload()          {}
func (Authenticated) serverPayload()  {}
func (Pong) serverPayload()           {}
func (RateLimit) serverPayload()      {}
func (MessageCreate) serverPayload()  {}
func (UserUpdate) serverPayload()     {}
func (PresenceUpdate) serverPayload() {}

// DecodeServer decodes one inbound text frame. The second return is false for
// malformed JSON, unknown ops, or bodies that don't match the op's shape;
// callers drop such frames and keep reading.
func DecodeServer(frame string) (ServerPayload, bool) {
	var env envelope
	if err := json.Unmarshal([]byte(frame), &env); err != nil {
		return nil, false
	}

	switch env.Op {
	case opPong:
		return Pong{}, true

	case opHello:
		var d struct {
			HeartbeatInterval int64 `json:"heartbeat_interval"`
		}
		if err := json.Unmarshal(env.D, &d); err != nil || d.HeartbeatInterval <= 0 {
			return nil, false
		}
		return Hello{HeartbeatInterval: time.Duration(d.HeartbeatInterval) * time.Millisecond}, true

	case opRateLimit:
		var d struct {
			Wait int64 `json:"wait"`
		}
		if err := json.Unmarshal(env.D, &d); err != nil {
			return nil, false
		}
		return RateLimit{Wait: time.Duration(d.Wait) * time.Millisecond}, true

	case opAuthenticated:
		var d struct {
			User  models.User   `json:"user"`
			Users []models.User `json:"users"`
		}
		if err := json.Unmarshal(env.D, &d); err != nil {
			return nil, false
		}
		return Authenticated{User: d.User, Users: d.Users}, true

	case opMessageCreate:
		var msg models.Message
		if err := json.Unmarshal(env.D, &msg); err != nil {
			return nil, false
		}
		return MessageCreate{Message: msg}, true

	case opUserUpdate:
		var user models.User
		if err := json.Unmarshal(env.D, &user); err != nil {
			return nil, false
		}
		return UserUpdate{User: user}, true

	case opPresenceUpdate:
		var d struct {
			UserID uint64        `json:"user_id"`
			Status models.Status `json:"status"`
		}
		if err := json.Unmarshal(env.D, &d); err != nil {
			return nil, false
		}
		return PresenceUpdate{UserID: d.UserID, Status: d.Status}, true

	default:
		return nil, false
	}
}

// EncodePing returns the keep-alive frame: {"op":"PING"}.
func EncodePing() string {
	return `{"op":"` + opPing + `"}`
}

// EncodeAuthenticate returns the authentication frame carrying the token:
// {"op":"AUTHENTICATE","d":"<token>"}.
func EncodeAuthenticate(token string) (string, error) {
	b, err := json.Marshal(struct {
		Op string `json:"op"`
		D  string `json:"d"`
	}{Op: opAuthenticate, D: token})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
