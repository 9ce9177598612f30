package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wtime/internal/domain"
)

// DefaultTimeout bounds a single gateway request.
const DefaultTimeout = 10 * time.Second

// HTTP is an SMS gateway client.
type HTTP struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns a client for the gateway at base, e.g. "http://localhost:8080".
func NewHTTP(base string) *HTTP {
	return &HTTP{
		Base: strings.TrimRight(base, "/"),
		HTTP: &http.Client{Timeout: DefaultTimeout},
	}
}

// Available reports whether the gateway answers its health check.
func (c *HTTP) Available(ctx context.Context) bool {
	if c.Base == "" {
		return false
	}
	return c.do(ctx, http.MethodGet, "/health", nil, nil) == nil
}

// Send posts one message for all recipients.
func (c *HTTP) Send(ctx context.Context, to []string, body string) error {
	return c.do(ctx, http.MethodPost, "/sms", domain.SMSRequest{To: to, Body: body}, nil)
}

// Outbox lists the messages a development gateway has accepted.
func (c *HTTP) Outbox(ctx context.Context) ([]Message, error) {
	var out []Message
	if err := c.do(ctx, http.MethodGet, "/sms", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTP) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("gateway %s %s: %s", strings.ToLower(method), path, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

var _ domain.SMSSender = (*HTTP)(nil)
