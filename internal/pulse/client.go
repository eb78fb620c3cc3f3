package pulse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"ThrowSentinel/internal/model"
)

// DefaultBaseURL is the production Pulse third-party API root.
const DefaultBaseURL = "https://pulse-server.drivelinebaseball.com/third_party_api"

const dateLayout = "2006-01-02"

// ErrNotAuthenticated is returned when an API call is attempted before
// Authenticate has succeeded.
var ErrNotAuthenticated = errors.New("client is not authenticated; call Authenticate first")

// Client makes requests to the Pulse API on behalf of a single session owner.
// All endpoints are POST requests carrying a JSON payload and returning a
// JSON envelope whose "data" field holds the useful response.
type Client struct {
	BaseURL string
	UserID  string // owner of the session; set by Authenticate

	refreshToken string
	conf         *oauth2.Config
	baseClient   *http.Client
	httpClient   *http.Client // token-refreshing client, nil until authenticated
	now          func() time.Time
}

// NewClient builds an unauthenticated client with optional proxy support.
// An empty baseURL selects the production API.
func NewClient(baseURL, clientID, clientSecret, refreshToken, proxyURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		BaseURL:      baseURL,
		refreshToken: refreshToken,
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  baseURL + "/oauth/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		baseClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		now: time.Now,
	}
}

// Authenticate exchanges the refresh token for an access token and captures
// the session owner's user ID from the token response. Subsequent requests
// refresh the token automatically.
func (c *Client) Authenticate(ctx context.Context) error {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.baseClient)
	source := c.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: c.refreshToken})
	token, err := source.Token()
	if err != nil {
		return fmt.Errorf("fetch token: %w", err)
	}
	c.httpClient = oauth2.NewClient(ctx, oauth2.ReuseTokenSource(token, source))

	if c.UserID == "" {
		if v := token.Extra("user_id"); v != nil {
			c.UserID = fmt.Sprint(v)
		}
	}
	return nil
}

// IsAuthenticated reports whether a token has been fetched.
func (c *Client) IsAuthenticated() bool {
	return c.httpClient != nil
}

func (c *Client) String() string {
	if c.UserID == "" {
		return "PulseClient(<Unauthenticated>)"
	}
	return fmt.Sprintf("PulseClient(%s)", c.UserID)
}

// Name identifies this fetcher in logs.
func (c *Client) Name() string { return "pulse" }

// GetProfile returns info about the owner of the session.
func (c *Client) GetProfile(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	if err := c.makeRequest(ctx, "user/get_profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetTeam returns the session owner's team and its members.
func (c *Client) GetTeam(ctx context.Context) (*model.Team, error) {
	var team model.Team
	if err := c.makeRequest(ctx, "user/get_team", nil, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// GetSnapshots returns daily snapshots per user over a date range. The
// session owner must have access to the requested users' data.
//
// Dates are ISO 8601 (YYYY-MM-DD): endDate defaults to today, startDate to
// eight days before endDate, and an empty userIDs list to the session owner.
func (c *Client) GetSnapshots(ctx context.Context, startDate, endDate string, userIDs []string) (map[string][]model.DailySnapshot, error) {
	payload, err := c.formatPayload(startDate, endDate, userIDs)
	if err != nil {
		return nil, err
	}
	snapshots := make(map[string][]model.DailySnapshot)
	if err := c.makeRequest(ctx, "user/get_snapshots", payload, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// GetEvents returns individual throw events per user over a date range.
// Defaulting rules match GetSnapshots.
func (c *Client) GetEvents(ctx context.Context, startDate, endDate string, userIDs []string) (map[string][]model.ThrowEvent, error) {
	payload, err := c.formatPayload(startDate, endDate, userIDs)
	if err != nil {
		return nil, err
	}
	events := make(map[string][]model.ThrowEvent)
	if err := c.makeRequest(ctx, "user/get_events", payload, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) makeRequest(ctx context.Context, slug string, payload, out any) error {
	if c.httpClient == nil {
		return ErrNotAuthenticated
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: marshal payload: %w", slug, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/"+slug, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", slug, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", slug, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: status %d, body: %s", slug, resp.StatusCode, string(respBody))
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%s: decode response: %w", slug, err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%s: decode data: %w", slug, err)
	}
	return nil
}
