package wire

import (
	"reflect"
	"testing"
	"time"

	"github.com/eludris-community/eludris-go/pkg/models"
)

func TestDecodeServerVariants(t *testing.T) {
	tests := []struct {
		want  ServerPayload
		name  string
		frame string
		ok    bool
	}{
		{
			name:  "pong",
			frame: `{"op":"PONG"}`,
			want:  Pong{},
			ok:    true,
		},
		{
			name:  "hello",
			frame: `{"op":"HELLO","d":{"heartbeat_interval":45000}}`,
			want:  Hello{HeartbeatInterval: 45 * time.Second},
			ok:    true,
		},
		{
			name:  "rate limit",
			frame: `{"op":"RATE_LIMIT","d":{"wait":1000}}`,
			want:  RateLimit{Wait: time.Second},
			ok:    true,
		},
		{
			name:  "message create",
			frame: `{"op":"MESSAGE_CREATE","d":{"author":"uwuki","content":"meow"}}`,
			want:  MessageCreate{Message: models.Message{Author: "uwuki", Content: "meow"}},
			ok:    true,
		},
		{
			name:  "user update",
			frame: `{"op":"USER_UPDATE","d":{"id":7,"username":"ooliver","status":{"type":"IDLE"},"social_credit":-5,"badges":0,"permissions":0}}`,
			want: UserUpdate{User: models.User{
				ID:           7,
				Username:     "ooliver",
				Status:       models.Status{Type: models.StatusIdle},
				SocialCredit: -5,
			}},
			ok: true,
		},
		{
			name:  "presence update",
			frame: `{"op":"PRESENCE_UPDATE","d":{"user_id":7,"status":{"type":"ONLINE"}}}`,
			want:  PresenceUpdate{UserID: 7, Status: models.Status{Type: models.StatusOnline}},
			ok:    true,
		},
		{
			name:  "authenticated",
			frame: `{"op":"AUTHENTICATED","d":{"user":{"id":1,"username":"uwuki","status":{"type":"ONLINE"},"social_credit":0,"badges":0,"permissions":0},"users":[]}}`,
			want: Authenticated{
				User:  models.User{ID: 1, Username: "uwuki", Status: models.Status{Type: models.StatusOnline}},
				Users: []models.User{},
			},
			ok: true,
		},
		{
			name:  "malformed json",
			frame: `{"op":`,
		},
		{
			name:  "empty frame",
			frame: "",
		},
		{
			name:  "unknown op",
			frame: `{"op":"EXPLODE","d":{}}`,
		},
		{
			name:  "hello with wrong body shape",
			frame: `{"op":"HELLO","d":"not an object"}`,
		},
		{
			name:  "hello without interval",
			frame: `{"op":"HELLO","d":{}}`,
		},
		{
			name:  "hello with negative interval",
			frame: `{"op":"HELLO","d":{"heartbeat_interval":-1}}`,
		},
		{
			name:  "message create with array body",
			frame: `{"op":"MESSAGE_CREATE","d":[1,2,3]}`,
		},
		{
			name:  "valid json but not an object",
			frame: `[1,2,3]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeServer(tt.frame)
			if ok != tt.ok {
				t.Fatalf("DecodeServer(%q) ok = %v, want %v", tt.frame, ok, tt.ok)
			}
			if !tt.ok {
				if got != nil {
					t.Fatalf("DecodeServer(%q) = %v, want nil payload", tt.frame, got)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeServer(%q) = %#v, want %#v", tt.frame, got, tt.want)
			}
		})
	}
}

// Decoding the same frame twice must yield structurally identical payloads.
func TestDecodeServerIdempotent(t *testing.T) {
	frame := `{"op":"MESSAGE_CREATE","d":{"author":"uwuki","content":"meow"}}`

	first, ok := DecodeServer(frame)
	if !ok {
		t.Fatal("first decode failed")
	}
	second, ok := DecodeServer(frame)
	if !ok {
		t.Fatal("second decode failed")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("decodes differ: %#v vs %#v", first, second)
	}
}

func TestEncodePing(t *testing.T) {
	if got, want := EncodePing(), `{"op":"PING"}`; got != want {
		t.Errorf("EncodePing() = %q, want %q", got, want)
	}
}

func TestEncodeAuthenticate(t *testing.T) {
	got, err := EncodeAuthenticate("my-token")
	if err != nil {
		t.Fatalf("EncodeAuthenticate() error = %v", err)
	}
	if want := `{"op":"AUTHENTICATE","d":"my-token"}`; got != want {
		t.Errorf("EncodeAuthenticate() = %q, want %q", got, want)
	}
}

func TestEncodeAuthenticateEscapesToken(t *testing.T) {
	got, err := EncodeAuthenticate(`tok"en`)
	if err != nil {
		t.Fatalf("EncodeAuthenticate() error = %v", err)
	}
	if want := `{"op":"AUTHENTICATE","d":"tok\"en"}`; got != want {
		t.Errorf("EncodeAuthenticate() = %q, want %q", got, want)
	}
}
