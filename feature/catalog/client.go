package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"game-tracker/core/upstream"
	"game-tracker/feature/library/models"
)

// MaxIDsPerLookup is the largest id list accepted by one external id query.
const MaxIDsPerLookup = 500

const (
	serviceName = "catalog"
	gameFields  = "id,name,cover.image_id,genres.name,total_rating,total_rating_count,first_release_date,summary"
)

// Category returns the catalog's external source category for a platform.
func Category(p models.Platform) (int, error) {
	switch p {
	case models.PlatformSteam:
		return 1, nil
	case models.PlatformXbox:
		return 11, nil
	case models.PlatformPSN:
		return 36, nil
	}
	return 0, fmt.Errorf("%w: %q", models.ErrUnknownPlatform, string(p))
}

// Client talks to an IGDB-style catalog API.
type Client struct {
	baseURL     string
	clientID    string
	accessToken string
	searchLimit int
	http        *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client (tests point it at httptest servers).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// NewClient creates a catalog client from configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 8
	}
	limit := cfg.SearchLimit
	if limit <= 0 {
		limit = 10
	}

	c := &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		clientID:    cfg.ClientID,
		accessToken: cfg.AccessToken,
		searchLimit: limit,
		http:        upstream.NewHTTPClient(time.Duration(timeout) * time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LookupByExternalIDs resolves platform ids to catalog entries.
// Ids unknown to the catalog are absent from the result. Lists larger than
// MaxIDsPerLookup are split into several queries; any failing query fails the call.
func (c *Client) LookupByExternalIDs(ctx context.Context, platform models.Platform, ids []string) (map[string]Entry, error) {
	category, err := Category(platform)
	if err != nil {
		return nil, err
	}

	result := make(map[string]Entry, len(ids))
	for start := 0; start < len(ids); start += MaxIDsPerLookup {
		end := start + MaxIDsPerLookup
		if end > len(ids) {
			end = len(ids)
		}

		quoted := make([]string, 0, end-start)
		for _, id := range ids[start:end] {
			quoted = append(quoted, strconv.Quote(id))
		}

		body := fmt.Sprintf("fields uid,%s; where category = %d & uid = (%s); limit %d;",
			prefixFields("game.", gameFields), category, strings.Join(quoted, ","), MaxIDsPerLookup)

		var rows []externalGameDTO
		if err := c.post(ctx, "/external_games", body, &rows); err != nil {
			return nil, fmt.Errorf("lookup external ids: %w", err)
		}
		for _, row := range rows {
			if row.Game == nil || row.UID == "" {
				continue
			}
			result[row.UID] = row.Game.toEntry()
		}
	}
	return result, nil
}

// SearchByName returns candidates ranked by the catalog's own relevance.
func (c *Client) SearchByName(ctx context.Context, query string) ([]Entry, error) {
	body := fmt.Sprintf("search %s; fields %s; limit %d;", strconv.Quote(query), gameFields, c.searchLimit)

	var rows []gameDTO
	if err := c.post(ctx, "/games", body, &rows); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toEntry())
	}
	return entries, nil
}

func (c *Client) post(ctx context.Context, path, body string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.http.Do(req)
	if err != nil {
		return upstream.FromTransport(serviceName, err)
	}
	defer resp.Body.Close()

	if err := upstream.Check(serviceName, resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func prefixFields(prefix, fields string) string {
	parts := strings.Split(fields, ",")
	for i, p := range parts {
		parts[i] = prefix + p
	}
	return strings.Join(parts, ",")
}
