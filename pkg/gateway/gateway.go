package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/codeGROOVE-dev/retry"

	"github.com/eludris-community/eludris-go/pkg/wire"
)

// DefaultURL is the default gateway URL.
const DefaultURL = "wss://eludris.tooty.xyz/ws/"

// ErrStreamClosed is returned by Next once the stream has been closed.
var ErrStreamClosed = errors.New("gateway stream closed")

// Config holds the configuration for a gateway client.
type Config struct {
	// Logger receives connection lifecycle logs. Defaults to a text handler
	// on stderr; use a handler on io.Discard to silence it.
	Logger *slog.Logger

	// URL overrides the gateway URL. Defaults to DefaultURL. Normally this
	// comes from the instance's metadata via rest.Client.CreateGateway.
	URL string

	// Token authenticates the session. Required.
	Token string
}

// Client opens event streams against one gateway.
type Client struct {
	logger *slog.Logger
	url    string
	token  string
}

// New creates a gateway client.
func New(config Config) (*Client, error) {
	if config.Token == "" {
		return nil, errors.New("token is required")
	}
	url := config.URL
	if url == "" {
		url = DefaultURL
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Client{logger: logger, url: url, token: config.Token}, nil
}

// URL returns the gateway URL this client connects to.
func (c *Client) URL() string {
	return c.url
}

// Connect performs the initial handshake synchronously and returns the live
// event stream. This is the only point where a connection problem surfaces
// as an error: once a stream exists, every later disconnect is retried
// indefinitely behind the scenes. Cancelling ctx shuts the stream down.
func (c *Client) Connect(ctx context.Context) (*Stream, error) {
	sess, err := dial(c.logger, c.url, c.token)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		logger:    c.logger,
		url:       c.url,
		token:     c.token,
		events:    make(chan Event),
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
		cancel:    cancel,
		sess:      sess,
	}
	go s.run(ctx)
	return s, nil
}

// Stream is a practically-infinite sequence of gateway events. It holds at
// most one live session at a time; when the socket dies the stream rebuilds
// the session with capped exponential backoff and the consumer only ever
// observes a pause. A stream ends solely through Close or cancellation of
// the context it was connected with.
type Stream struct {
	logger    *slog.Logger
	url       string
	token     string
	events    chan Event
	stopCh    chan struct{}
	stoppedCh chan struct{}
	cancel    context.CancelFunc
	stopOnce  sync.Once

	mu   sync.Mutex
	sess *session // nil while reconnecting
}

// Next blocks until the next event is available. It returns ctx's error if
// ctx is cancelled first, or ErrStreamClosed once the stream is done.
// Disconnects never surface here.
func (s *Stream) Next(ctx context.Context) (Event, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case ev, ok := <-s.events:
		if !ok {
			return nil, ErrStreamClosed
		}
		return ev, nil
	}
}

// Close tears down the live session, cancels the heartbeat and ends the
// stream, interrupting a reconnect backoff sleep if one is in progress. It
// blocks until the background machinery has stopped and is safe to call
// multiple times.
func (s *Stream) Close() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.cancel()
		s.mu.Lock()
		if s.sess != nil {
			s.sess.close()
		}
		s.mu.Unlock()
		<-s.stoppedCh
	})
}

// run owns the session lifecycle: it drains one session at a time and swaps
// in a fresh one whenever the socket dies. The session handle is swapped
// under the mutex so Close never races a rebuild.
func (s *Stream) run(ctx context.Context) {
	defer close(s.stoppedCh)
	defer close(s.events)
	defer s.cancel()
	for {
		s.mu.Lock()
		sess := s.sess
		s.mu.Unlock()

		s.pump(ctx, sess)
		sess.close()

		s.mu.Lock()
		s.sess = nil
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		default:
		}

		s.logger.Warn("gateway connection lost, reconnecting")
		next, err := s.reconnect(ctx)
		if err != nil {
			return
		}
		s.mu.Lock()
		s.sess = next
		s.mu.Unlock()
	}
}

// pump is the stream's single decode path: it turns one session's frames
// into events until that session dies. The cache is created here so every
// session starts from a fresh snapshot.
func (s *Stream) pump(ctx context.Context, sess *session) {
	data := newSessionData()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case frame, open := <-sess.frames:
			if !open {
				return
			}
			payload, ok := wire.DecodeServer(frame)
			if !ok {
				s.logger.Debug("dropping undecodable frame")
				continue
			}
			ev := data.apply(payload)
			if ev == nil {
				continue
			}
			select {
			case s.events <- ev:
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			}
		}
	}
}

// reconnect dials until a new session completes its handshake, waiting
// 1s, 2s, 4s, ... capped at 64s between failed attempts. It only returns an
// error when the stream is shutting down.
func (s *Stream) reconnect(ctx context.Context) (*session, error) {
	var sess *session
	err := retry.Do(func() error {
		select {
		case <-ctx.Done():
			return retry.Unrecoverable(ctx.Err())
		case <-s.stopCh:
			return retry.Unrecoverable(ErrStreamClosed)
		default:
		}
		next, err := dial(s.logger, s.url, s.token)
		if err != nil {
			return err
		}
		sess = next
		return nil
	},
		retry.Context(ctx),
		retry.DelayType(reconnectDelay),
		retry.UntilSucceeded(),
		retry.RetryIf(func(error) bool {
			select {
			case <-s.stopCh:
				return false
			default:
				return true
			}
		}),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warn("reconnect failed, backing off", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	s.logger.Info("gateway reconnected")
	return sess, nil
}
