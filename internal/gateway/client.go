package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// TokenSource supplies the current bearer token, empty when anonymous.
type TokenSource interface {
	Token() string
}

// Client is the shared HTTP layer under every resource gateway: base URL,
// JSON round-tripping, bearer auth, request IDs, and the error taxonomy.
// Every call takes a context, which is how in-flight requests are dropped
// when the flow that awaited them goes away.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource

	// onUnauthorized fires once per 401 response, after the result is
	// discarded. The session layer hooks it to clear the stored token and
	// force navigation to login, independent of which call tripped it.
	onUnauthorized func()
}

// New creates a gateway client. httpClient may be nil for the default.
func New(baseURL string, httpClient *http.Client, tokens TokenSource) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
	}
}

// OnUnauthorized registers the session-expiry hook.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// Resource gateway accessors.

func (c *Client) Products() *Products           { return &Products{c: c} }
func (c *Client) Orders() *Orders               { return &Orders{c: c} }
func (c *Client) Users() *Users                 { return &Users{c: c} }
func (c *Client) Payments() *Payments           { return &Payments{c: c} }
func (c *Client) Notifications() *Notifications { return &Notifications{c: c} }
func (c *Client) Admin() *Admin                 { return &Admin{c: c} }

// do performs one JSON request. body and out may be nil; query may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		log.Printf("[Gateway] %s %s: unauthorized, session expired", method, path)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrSessionExpired
	}

	if resp.StatusCode >= 400 {
		return &StatusError{Code: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway: decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// errorMessage extracts the server's message field, falling back to a
// generic string when the payload is absent or not the expected shape.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil {
		return genericFailure
	}
	var payload apiErrorBody
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Message == "" {
		return genericFailure
	}
	return payload.Message
}

// StaticToken is a TokenSource holding a fixed token, handy in tests.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }
