// Package rest implements the request/response half of the Eludris API:
// fetching instance metadata and sending chat messages. Everything here is a
// one-shot call; the persistent event side lives in pkg/gateway.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/eludris-community/eludris-go/pkg/gateway"
	"github.com/eludris-community/eludris-go/pkg/models"
)

// DefaultURL is the default instance REST URL.
const DefaultURL = "https://eludris.tooty.xyz"

const (
	clientTimeout = 10 * time.Second
	maxBodySize   = 1 << 20 // 1MB limit on response bodies
)

// ErrNoName is returned by Send when the client has no configured name.
var ErrNoName = errors.New("no author name configured")

// ErrNoGateway is returned by CreateGateway when the instance does not
// advertise a gateway URL.
var ErrNoGateway = errors.New("instance advertises no gateway URL")

// Config holds the configuration for a REST client. The zero value is usable
// and talks to the default instance.
type Config struct {
	Logger *slog.Logger
	// HTTPClient overrides the underlying HTTP client, mostly for tests.
	HTTPClient *http.Client
	// URL is the instance's REST URL. Defaults to DefaultURL.
	URL string
	// Name is the author name used by Send.
	Name string
}

// Client is a minimal Eludris REST client.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	url        string
	name       string
}

// New creates a REST client.
func New(config Config) *Client {
	url := config.URL
	if url == "" {
		url = DefaultURL
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: clientTimeout}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Client{
		logger:     logger,
		httpClient: httpClient,
		url:        url,
		name:       config.Name,
	}
}

// InstanceInfo fetches the metadata payload served at the instance's REST
// root. Transient failures are retried with backoff.
func (c *Client) InstanceInfo(ctx context.Context) (*models.InstanceInfo, error) {
	var info *models.InstanceInfo

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				c.logger.Debug("instance info request failed, will retry", "error", err)
				return fmt.Errorf("fetch instance info: %w", err)
			}
			defer func() {
				if err := resp.Body.Close(); err != nil {
					c.logger.Debug("failed to close response body", "error", err)
				}
			}()

			body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
			if err != nil {
				return fmt.Errorf("read instance info: %w", err)
			}

			switch resp.StatusCode {
			case http.StatusOK:
				var i models.InstanceInfo
				if err := json.Unmarshal(body, &i); err != nil {
					return retry.Unrecoverable(fmt.Errorf("parse instance info: %w", err))
				}
				info = &i
				return nil
			case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
				return fmt.Errorf("instance info server error: %d", resp.StatusCode)
			default:
				return retry.Unrecoverable(fmt.Errorf("unexpected status: %d", resp.StatusCode))
			}
		},
		retry.Attempts(3),
		retry.DelayType(retry.BackOffDelay),
		retry.MaxDelay(30*time.Second),
		retry.MaxJitter(time.Second),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// SendMessage posts a message with an explicit author name. If the instance
// rate-limits the request it waits out the advertised retry_after and tries
// again; ctx bounds the overall wait.
func (c *Client) SendMessage(ctx context.Context, author, content string) (*models.Message, error) {
	payload, err := json.Marshal(models.Message{Author: author, Content: content})
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}

	for {
		msg, wait, err := c.postMessage(ctx, payload)
		if err != nil {
			return nil, err
		}
		if msg != nil {
			return msg, nil
		}

		c.logger.Info("rate limited on /messages, waiting", "retry_after", wait)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// Send posts a message using the client's configured name.
func (c *Client) Send(ctx context.Context, content string) (*models.Message, error) {
	if c.name == "" {
		return nil, ErrNoName
	}
	return c.SendMessage(ctx, c.name, content)
}

// CreateGateway fetches the instance's metadata and builds a gateway client
// pointed at its advertised gateway URL.
func (c *Client) CreateGateway(ctx context.Context, token string) (*gateway.Client, error) {
	info, err := c.InstanceInfo(ctx)
	if err != nil {
		return nil, err
	}
	if info.PandemoniumURL == "" {
		return nil, ErrNoGateway
	}
	return gateway.New(gateway.Config{
		Logger: c.logger,
		URL:    info.PandemoniumURL,
		Token:  token,
	})
}

// rateLimitResponse is the shape of a rate-limited /messages response.
type rateLimitResponse struct {
	Data struct {
		RetryAfter int64 `json:"retry_after"`
	} `json:"data"`
}

// postMessage performs one POST to /messages. It returns the created message,
// or a non-zero wait when the instance rate-limited the request.
func (c *Client) postMessage(ctx context.Context, payload []byte) (*models.Message, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("post message: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, 0, fmt.Errorf("read message response: %w", err)
	}

	// A rate-limited response nests retry_after under "data"; a created
	// message has no such field.
	var limited rateLimitResponse
	if err := json.Unmarshal(body, &limited); err == nil && limited.Data.RetryAfter > 0 {
		return nil, time.Duration(limited.Data.RetryAfter) * time.Millisecond, nil
	}

	var msg models.Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, 0, fmt.Errorf("parse message response: %w", err)
	}
	return &msg, 0, nil
}
