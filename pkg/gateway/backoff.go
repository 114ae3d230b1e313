package gateway

import (
	"time"

	"github.com/codeGROOVE-dev/retry"
)

const (
	baseReconnectDelay = 1 * time.Second
	maxReconnectDelay  = 64 * time.Second
)

// reconnectDelay doubles the wait after every failed attempt: 1s, 2s, 4s,
// ... capped at 64s. Deliberately jitter-free; the jitter that spreads
// clients apart is applied to the first heartbeat instead.
func reconnectDelay(n uint, _ error, _ *retry.Config) time.Duration {
	if n >= 6 {
		return maxReconnectDelay
	}
	return baseReconnectDelay << n
}
