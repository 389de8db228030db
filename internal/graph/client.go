// Package graph is a minimal Graph API client covering the Messenger Platform
// calls the bot makes: user profile lookup, sender actions, the Send API and
// persistent menu provisioning.
//
// Every call is at-most-once. Non-2xx answers are returned as a GraphError
// and the caller decides whether the failure matters.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/garyellow/messenger-portfolio-bot/internal/config"
	domerrors "github.com/garyellow/messenger-portfolio-bot/internal/errors"
	"github.com/garyellow/messenger-portfolio-bot/internal/messenger"
	"github.com/garyellow/messenger-portfolio-bot/internal/metrics"
)

// Endpoint labels used for metrics and errors.
const (
	EndpointUserProfile      = "user_profile"
	EndpointSenderAction     = "sender_action"
	EndpointSendMessage      = "send_message"
	EndpointUserSettings     = "custom_user_settings"
	EndpointMessengerProfile = "messenger_profile"
	EndpointMe               = "me"
)

// maxErrorBody bounds how much of a failed response is read for diagnostics.
const maxErrorBody = 64 << 10

// Client talks to the Graph API with a page access token.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	version     string
	accessToken string
	metrics     *metrics.Metrics
}

// Options configures a Client.
type Options struct {
	BaseURL     string // e.g. https://graph.facebook.com
	Version     string // e.g. v8.0
	AccessToken string
	Timeout     time.Duration
	HTTPClient  *http.Client // optional, overrides Timeout
	Metrics     *metrics.Metrics
}

// NewClient creates a Graph API client.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = config.GraphRequest
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimSuffix(opts.BaseURL, "/"),
		version:     opts.Version,
		accessToken: opts.AccessToken,
		metrics:     opts.Metrics,
	}
}

// NewFromConfig creates a client from application configuration.
func NewFromConfig(cfg *config.Config, m *metrics.Metrics) *Client {
	return NewClient(Options{
		BaseURL:     cfg.GraphBaseURL,
		Version:     cfg.GraphVersion,
		AccessToken: cfg.PageAccessToken,
		Timeout:     cfg.GraphTimeout,
		Metrics:     m,
	})
}

// UserProfile fetches the sender's first name, last name and profile picture.
func (c *Client) UserProfile(ctx context.Context, psid string) (*messenger.UserProfile, error) {
	var profile messenger.UserProfile
	query := url.Values{"fields": {messenger.ProfileFields}}
	if err := c.do(ctx, EndpointUserProfile, http.MethodGet, "/"+url.PathEscape(psid), query, nil, &profile); err != nil {
		return nil, domerrors.Op("graph", EndpointUserProfile).FailFor(psid, err)
	}
	return &profile, nil
}

// SenderAction shows or clears a presence indicator for psid.
func (c *Client) SenderAction(ctx context.Context, psid string, action messenger.SenderAction) error {
	req := messenger.SenderActionRequest{
		Recipient:    messenger.Recipient{ID: psid},
		SenderAction: action,
	}
	err := c.do(ctx, EndpointSenderAction, http.MethodPost, c.versioned("/me/messages"), nil, req, nil)
	return domerrors.Op("graph", EndpointSenderAction).FailFor(psid, err)
}

// SendMessage posts msg to psid as a RESPONSE message.
func (c *Client) SendMessage(ctx context.Context, psid string, msg *messenger.Message) (*messenger.Result, error) {
	op := domerrors.Op("graph", EndpointSendMessage)
	if msg == nil {
		return nil, op.FailFor(psid, domerrors.ErrNilPayload)
	}

	var result messenger.Result
	if err := c.do(ctx, EndpointSendMessage, http.MethodPost, c.versioned("/me/messages"), nil, messenger.NewSendRequest(psid, msg), &result); err != nil {
		return nil, op.FailFor(psid, err)
	}
	return &result, nil
}

// SetUserPersistentMenu installs a per-user persistent menu.
func (c *Client) SetUserPersistentMenu(ctx context.Context, psid string, menu []messenger.PersistentMenu) error {
	req := messenger.UserSettingsRequest{PSID: psid, PersistentMenu: menu}
	err := c.do(ctx, EndpointUserSettings, http.MethodPost, c.versioned("/me/custom_user_settings"), nil, req, nil)
	return domerrors.Op("graph", EndpointUserSettings).FailFor(psid, err)
}

// SetMessengerProfile installs the page-wide messenger profile.
func (c *Client) SetMessengerProfile(ctx context.Context, profile messenger.MessengerProfile) error {
	err := c.do(ctx, EndpointMessengerProfile, http.MethodPost, c.versioned("/me/messenger_profile"), nil, profile, nil)
	return domerrors.Op("graph", EndpointMessengerProfile).Fail(err)
}

// Me returns the page the access token belongs to.
func (c *Client) Me(ctx context.Context) (*messenger.PageInfo, error) {
	var page messenger.PageInfo
	query := url.Values{"fields": {"id,name"}}
	if err := c.do(ctx, EndpointMe, http.MethodGet, c.versioned("/me"), query, nil, &page); err != nil {
		return nil, domerrors.Op("graph", EndpointMe).Fail(err)
	}
	return &page, nil
}

func (c *Client) versioned(path string) string {
	if c.version == "" {
		return path
	}
	return "/" + c.version + path
}

// do performs one request. in is JSON-encoded when non-nil, out is decoded
// from a 2xx body when non-nil.
func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, in, out any) error {
	start := time.Now()
	status := "error"
	defer func() {
		c.metrics.RecordGraphRequest(endpoint, status, time.Since(start).Seconds())
	}()

	if query == nil {
		query = url.Values{}
	}
	query.Set("access_token", c.accessToken)
	target := c.baseURL + path + "?" + query.Encode()

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error would echo the access token back into logs.
		return fmt.Errorf("%s %s: %w", method, endpoint, unwrapURLError(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		status = fmt.Sprintf("%dxx", resp.StatusCode/100)
		return decodeGraphError(endpoint, resp)
	}
	status = "success"

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// graphErrorBody is the standard Graph API error envelope.
type graphErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func decodeGraphError(endpoint string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body graphErrorBody
	if err := json.Unmarshal(raw, &body); err != nil || body.Error.Message == "" {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return domerrors.NewGraphError(endpoint, resp.StatusCode, 0, "", msg)
	}
	return domerrors.NewGraphError(endpoint, resp.StatusCode, body.Error.Code, body.Error.Type, body.Error.Message)
}

func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
