package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/websocket"

	"github.com/eludris-community/eludris-go/pkg/wire"
)

// session is one live gateway connection that has completed its handshake:
// hello received, authenticate sent, heartbeat running. It owns exactly two
// goroutines, the reader feeding frames and the heartbeat, both of which
// stop when the socket dies or close is called.
type session struct {
	ws        *websocket.Conn
	logger    *slog.Logger
	frames    chan string
	done      chan struct{}
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// dial opens a socket to the gateway, waits for the server's hello frame,
// sends the authenticate frame and starts the heartbeat. Any failure before
// that point tears the socket down and is returned to the caller; the server
// confirms the token later with an AUTHENTICATED frame through the normal
// read path, so no acknowledgement is awaited here.
func dial(logger *slog.Logger, url, token string) (*session, error) {
	origin := "http://localhost/"
	if strings.HasPrefix(url, "wss://") {
		origin = "https://localhost/"
	}
	config, err := websocket.NewConfig(url, origin)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	ws, err := websocket.DialConfig(config)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	logger.Debug("gateway socket established", "url", url)

	interval, err := awaitHello(ws)
	if err != nil {
		closeQuietly(ws, logger)
		return nil, err
	}
	logger.Debug("received hello", "heartbeat_interval", interval)

	auth, err := wire.EncodeAuthenticate(token)
	if err != nil {
		closeQuietly(ws, logger)
		return nil, fmt.Errorf("encode authenticate: %w", err)
	}
	if err := websocket.Message.Send(ws, auth); err != nil {
		closeQuietly(ws, logger)
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	hbCtx, cancel := context.WithCancel(context.Background())
	s := &session{
		ws:     ws,
		logger: logger,
		frames: make(chan string),
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go s.heartbeat(hbCtx, interval)
	go s.read()
	return s, nil
}

// awaitHello reads frames until the server's hello arrives, ignoring any
// other decodable payload. A socket error before hello means the connection
// never became usable and is reported as a connect failure.
func awaitHello(ws *websocket.Conn) (time.Duration, error) {
	for {
		var frame string
		if err := websocket.Message.Receive(ws, &frame); err != nil {
			return 0, fmt.Errorf("awaiting hello: %w", err)
		}
		payload, ok := wire.DecodeServer(frame)
		if !ok {
			continue
		}
		if hello, ok := payload.(wire.Hello); ok {
			return hello.HeartbeatInterval, nil
		}
	}
}

// read feeds inbound text frames to the stream until the socket closes or
// errors. Closing the frames channel is the signal that this session is dead.
func (s *session) read() {
	defer close(s.frames)
	for {
		var frame string
		if err := websocket.Message.Receive(s.ws, &frame); err != nil {
			s.logger.Debug("gateway socket closed", "error", err)
			return
		}
		select {
		case s.frames <- frame:
		case <-s.done:
			return
		}
	}
}

// close tears the session down: cancels the heartbeat (even mid-sleep),
// unblocks the reader and closes the socket. Safe to call more than once.
func (s *session) close() {
	s.closeOnce.Do(func() {
		s.cancel()
		close(s.done)
		closeQuietly(s.ws, s.logger)
	})
}

func closeQuietly(ws *websocket.Conn, logger *slog.Logger) {
	if err := ws.Close(); err != nil {
		logger.Debug("failed to close gateway socket", "error", err)
	}
}
