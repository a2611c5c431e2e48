// Package backend wraps outbound calls to the member-profile API. Every call
// goes out with the session's current bearer token, and every failure comes
// back as a domain error value: callers never see a raw transport error or
// an unparsed response body.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ringsidehq/member-portal/internal/core/domain"
)

const defaultTimeout = 15 * time.Second

// TokenSource yields a valid access token for a session. Satisfied by the
// session manager.
type TokenSource interface {
	ValidAccessToken(ctx context.Context, sessionID string) (string, error)
}

// Client is the authenticated request gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        log,
	}
}

// upstreamError covers the error envelopes the backend has been seen to use.
type upstreamError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Do issues an authenticated request and decodes a JSON response into out
// (when out is non-nil). Without a usable token it fails immediately with
// domain.ErrUnauthenticated rather than issuing the call.
func (c *Client) Do(ctx context.Context, sessionID, method, path string, body, out any) error {
	token, err := c.tokens.ValidAccessToken(ctx, sessionID)
	if err != nil {
		return domain.ErrUnauthenticated
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend transport failure")
		return domain.NewTransportError()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s %s response: %w", method, path, err)
	}
	return nil
}

// statusError extracts a structured message from the error body when one is
// present, otherwise falls back to the fixed per-status message.
func (c *Client) statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var ue upstreamError
	if err := json.Unmarshal(raw, &ue); err == nil {
		if ue.Error != "" {
			return domain.NewAPIError(resp.StatusCode, ue.Error)
		}
		if ue.Message != "" {
			return domain.NewAPIError(resp.StatusCode, ue.Message)
		}
	}
	return domain.NewAPIError(resp.StatusCode, "")
}
