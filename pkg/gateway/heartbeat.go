package gateway

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/net/websocket"

	"github.com/eludris-community/eludris-go/pkg/wire"
)

// heartbeat keeps the session alive by sending a ping frame every interval.
// The first ping is delayed by a uniformly random fraction of the interval so
// a crowd of clients reconnecting together doesn't keep pinging in lockstep.
// A failed send means the socket is dead; the reader observes the closure
// independently, so this task just stops.
func (s *session) heartbeat(ctx context.Context, interval time.Duration) {
	if !sleepCtx(ctx, rand.N(interval)) {
		return
	}
	for {
		if err := websocket.Message.Send(s.ws, wire.EncodePing()); err != nil {
			s.logger.Debug("heartbeat send failed", "error", err)
			return
		}
		s.logger.Debug("sent ping")
		if !sleepCtx(ctx, interval) {
			return
		}
	}
}

// sleepCtx sleeps for d, returning false if ctx is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
