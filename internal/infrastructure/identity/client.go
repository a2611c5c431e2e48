// Package identity talks to the hosted identity provider the portal
// delegates credential handling to. The provider exposes two endpoints: a
// credential sign-in that yields a long-lived refresh token, and a token
// exchange that trades the refresh token for a short-lived access token.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ringsidehq/member-portal/internal/core/domain"
	"github.com/ringsidehq/member-portal/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Client implements ports.IdentityProvider over HTTP.
type Client struct {
	signInURL string
	tokenURL  string
	apiKey    string

	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(signInURL, tokenURL, apiKey string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		signInURL:  signInURL,
		tokenURL:   tokenURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		log:        log,
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    string `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
}

// providerError is the provider's error envelope.
type providerError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn performs the credential sign-in step.
func (c *Client) SignIn(ctx context.Context, email, password string) (*ports.SignInResult, error) {
	payload, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, fmt.Errorf("identity: encode sign-in request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.keyed(c.signInURL), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("identity: build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("identity sign-in transport failure")
		return nil, domain.NewTransportError()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.credentialError(resp.Body)
	}

	var body signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("identity: decode sign-in response: %w", err)
	}

	return &ports.SignInResult{
		SubjectID:    body.LocalID,
		Email:        body.Email,
		RefreshToken: body.RefreshToken,
	}, nil
}

// ExchangeRefreshToken performs the refresh-token exchange step. The token
// endpoint speaks form encoding, unlike the JSON sign-in endpoint.
func (c *Client) ExchangeRefreshToken(ctx context.Context, refreshToken string) (*ports.TokenExchangeResult, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.keyed(c.tokenURL), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("identity: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("identity token exchange transport failure")
		return nil, domain.NewTransportError()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.credentialError(resp.Body)
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("identity: decode token response: %w", err)
	}

	return &ports.TokenExchangeResult{
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
		ExpiresIn:    parseSeconds(body.ExpiresIn),
	}, nil
}

func (c *Client) keyed(endpoint string) string {
	if c.apiKey == "" {
		return endpoint
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + "key=" + url.QueryEscape(c.apiKey)
}

// credentialError surfaces the provider's message when one is present, and a
// generic invalid-credentials error otherwise.
func (c *Client) credentialError(body io.Reader) error {
	raw, _ := io.ReadAll(io.LimitReader(body, 4096))
	var pe providerError
	if err := json.Unmarshal(raw, &pe); err == nil && pe.Error.Message != "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, pe.Error.Message)
	}
	return domain.ErrInvalidCredentials
}

// parseSeconds handles the provider's habit of sending expiry as a decimal
// string ("3600").
func parseSeconds(s string) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return time.Hour
	}
	return time.Duration(n) * time.Second
}
