package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every backend round trip unless the caller's
// context carries an earlier deadline.
const DefaultTimeout = 10 * time.Second

// Client provides a high-level interface to the case management backend.
// All state-changing auth calls go through it; the session manager layers
// the state machine on top.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// ClientOptions configures SDK client construction.
type ClientOptions struct {
	HTTPClient *http.Client
	Timeout    time.Duration
}

// ClientOption mutates ClientOptions.
type ClientOption func(*ClientOptions)

// WithHTTPClient overrides the HTTP client used for backend calls. The
// supplied client is expected to attach the ambient credential (bearer
// token) when one exists.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(opts *ClientOptions) {
		opts.HTTPClient = client
	}
}

// WithTimeout overrides the per-request deadline applied when the caller's
// context has none.
func WithTimeout(d time.Duration) ClientOption {
	return func(opts *ClientOptions) {
		opts.Timeout = d
	}
}

// NewClient creates a client for the backend at baseURL. An http.Client is
// created automatically when one is not supplied.
func NewClient(baseURL string, optFns ...ClientOption) *Client {
	opts := ClientOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    opts.HTTPClient,
		timeout: opts.Timeout,
	}
}

// roundTrip performs one request and returns the status code and raw body.
// Transport failures come back as typed network errors; HTTP error statuses
// do not, since classification of those belongs to each endpoint.
func (c *Client) roundTrip(ctx context.Context, method, path string, body any) (int, []byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	// JoinPath would percent-escape a query string, so split it off first.
	path, query, _ := strings.Cut(path, "?")
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if query != "" {
		endpoint += "?" + query
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, classifyTransport(err)
	}
	return resp.StatusCode, data, nil
}

// getJSON issues a GET and decodes a 2xx body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	status, data, err := c.roundTrip(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeResource(status, data, out)
}

// postJSON issues a POST and decodes a 2xx body into out (out may be nil).
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	status, data, err := c.roundTrip(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return decodeResource(status, data, out)
}

// putJSON issues a PUT and decodes a 2xx body into out (out may be nil).
func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	status, data, err := c.roundTrip(ctx, http.MethodPut, path, body)
	if err != nil {
		return err
	}
	return decodeResource(status, data, out)
}

func decodeResource(status int, data []byte, out any) error {
	if status < 200 || status >= 300 {
		return fmt.Errorf("backend returned HTTP %d: %s", status, backendMessage(data))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// classifyTransport maps a transport error to the timeout or failure kind.
func classifyTransport(err error) *Error {
	kind := KindNetworkFailure
	message := "request failed"
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindNetworkTimeout
		message = "request timed out"
	} else {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			kind = KindNetworkTimeout
			message = "request timed out"
		}
	}
	return wrapError(kind, message, err)
}

// backendMessage extracts the {"error": "..."} body the backend uses for
// failures, falling back to a trimmed raw body.
func backendMessage(data []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	const limit = 200
	if len(data) > limit {
		data = data[:limit]
	}
	if len(data) == 0 {
		return "(empty body)"
	}
	return string(data)
}

// fieldNames returns the sorted top-level keys of a JSON object, used to
// make malformed-response errors debuggable.
func fieldNames(raw map[string]json.RawMessage) []string {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
