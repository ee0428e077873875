// Package realtime implements the client for the third-party bidirectional
// messaging service used by the book-stock tool. Each lookup owns one
// websocket connection for a single request/response cycle: emit one request
// event, accumulate chunked response events until the end-of-response signal
// or the wait bound, then close.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"quotebot/config"
)

// ErrNoData is returned when the wait bound elapses without any response
// data arriving.
var ErrNoData = errors.New("realtime: no data received")

// DefaultWaitBound matches the fixed wait the service is given to answer a
// single lookup.
const DefaultWaitBound = 3 * time.Second

// Credentials is the static credential set the service authenticates
// connections with. The key triple travels as query parameters, the bearer
// token as an Authorization header.
type Credentials struct {
	APIKey         string
	ProjectID      string
	OrganizationID string
	BearerToken    string
}

// Client opens one connection per lookup against the realtime endpoint.
type Client struct {
	endpoint  string
	creds     Credentials
	dialer    *websocket.Dialer
	waitBound time.Duration
}

// NewClient creates a realtime client. endpoint is the websocket URL
// (ws:// or wss://); waitBound <= 0 selects DefaultWaitBound.
func NewClient(endpoint string, creds Credentials, waitBound time.Duration) *Client {
	if waitBound <= 0 {
		waitBound = DefaultWaitBound
	}
	return &Client{
		endpoint:  endpoint,
		creds:     creds,
		dialer:    websocket.DefaultDialer,
		waitBound: waitBound,
	}
}

// event is the JSON envelope both directions use on the wire.
type event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// responseData covers both chunk shapes the service emits: incremental
// answers arrive in "data", book-stock answers in "stock".
type responseData struct {
	Data  string `json:"data"`
	Stock string `json:"stock"`
}

// BookStock looks up the current stock of a book by ISBN.
func (c *Client) BookStock(ctx context.Context, isbn string) (string, error) {
	return c.request(ctx, "get_book_stock", map[string]any{"isbn": isbn})
}

// EvaluateQuery submits a free-form query to the service. The credential
// triple is repeated in the payload, as the query endpoint requires.
func (c *Client) EvaluateQuery(ctx context.Context, query string) (string, error) {
	return c.request(ctx, "evaluate_query", map[string]any{
		"query":          query,
		"apiKey":         c.creds.APIKey,
		"projectId":      c.creds.ProjectID,
		"organizationId": c.creds.OrganizationID,
	})
}

// request runs one request/response cycle. The connection is closed exactly
// once on every exit path. Partial data followed by a disconnect returns
// whatever was accumulated.
func (c *Client) request(ctx context.Context, eventName string, payload map[string]any) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid realtime endpoint: %w", err)
	}
	q := u.Query()
	q.Set("apiKey", c.creds.APIKey)
	q.Set("projectId", c.creds.ProjectID)
	q.Set("organizationId", c.creds.OrganizationID)
	u.RawQuery = q.Encode()

	header := http.Header{}
	if c.creds.BearerToken != "" {
		header.Set("Authorization", "Bearer "+c.creds.BearerToken)
	}

	conn, resp, err := c.dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			return "", fmt.Errorf("realtime connect failed (status %d): %w", resp.StatusCode, err)
		}
		return "", fmt.Errorf("realtime connect failed: %w", err)
	}

	var closeOnce sync.Once
	closeConn := func() {
		closeOnce.Do(func() {
			conn.Close()
		})
	}
	defer closeConn()

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s payload: %w", eventName, err)
	}
	if err := conn.WriteJSON(event{Event: eventName, Data: data}); err != nil {
		return "", fmt.Errorf("failed to send %s: %w", eventName, err)
	}

	deadline := time.Now().Add(c.waitBound)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return "", fmt.Errorf("failed to set read deadline: %w", err)
	}

	var accumulated string
	for {
		var ev event
		if err := conn.ReadJSON(&ev); err != nil {
			closeConn()
			// Partial data followed by a disconnect or timeout returns
			// whatever has accumulated so far.
			if accumulated != "" {
				return accumulated, nil
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return "", ErrNoData
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return "", ErrNoData
			}
			return "", fmt.Errorf("realtime read failed: %w", err)
		}

		switch ev.Event {
		case "response":
			var rd responseData
			if err := json.Unmarshal(ev.Data, &rd); err != nil {
				if config.DebugLog != nil {
					config.DebugLog.Printf("[realtime] malformed response event: %v", err)
				}
				continue
			}
			if rd.Data != "" {
				accumulated += rd.Data
			} else if rd.Stock != "" {
				accumulated += rd.Stock
			}
		case "endOfResponse":
			closeConn()
			if accumulated == "" {
				return "", ErrNoData
			}
			return accumulated, nil
		case "error":
			closeConn()
			if accumulated != "" {
				return accumulated, nil
			}
			return "", fmt.Errorf("realtime service error: %s", string(ev.Data))
		case "disconnect":
			closeConn()
			if accumulated == "" {
				return "", ErrNoData
			}
			return accumulated, nil
		default:
			if config.DebugLog != nil {
				config.DebugLog.Printf("[realtime] ignoring event %q", ev.Event)
			}
		}
	}
}
