package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"game-tracker/core/upstream"
	"game-tracker/feature/library/models"

	"go.uber.org/zap"
)

// ErrNoCredential is returned when a fetch is attempted without an account id or token.
var ErrNoCredential = errors.New("missing platform credential")

// maxPages bounds the pages one paged fetch reads.
const maxPages = 500

// Credential is an already issued platform credential.
type Credential struct {
	// AccountID is the platform account (steamid, xuid). Optional where the token implies it.
	AccountID string `json:"account_id"`
	// AccessToken is the bearer or XBL token. Steam uses the configured API key instead.
	AccessToken string `json:"access_token"`
}

// Source fetches a user's game library from one platform.
type Source interface {
	Platform() models.Platform
	FetchLibrary(ctx context.Context, cred Credential) ([]models.RawPlatformGame, error)
}

// WishlistSource is implemented by platforms exposing a wishlist.
type WishlistSource interface {
	Source
	FetchWishlist(ctx context.Context, cred Credential) ([]models.RawPlatformGame, error)
}

// Registry resolves a platform to its adapter.
type Registry struct {
	sources map[models.Platform]Source
}

// NewRegistry builds the adapters for every supported platform.
func NewRegistry(cfg Config, logger *zap.Logger, client *http.Client) *Registry {
	if client == nil {
		timeout := cfg.TimeoutSeconds
		if timeout <= 0 {
			timeout = 30
		}
		client = upstream.NewHTTPClient(time.Duration(timeout) * time.Second)
	}

	r := &Registry{sources: make(map[models.Platform]Source)}
	for _, p := range models.Platforms {
		switch p {
		case models.PlatformSteam:
			r.Register(NewSteam(cfg, client, logger))
		case models.PlatformPSN:
			r.Register(NewPSN(cfg, client, logger))
		case models.PlatformXbox:
			r.Register(NewXbox(cfg, client, logger))
		}
	}
	return r
}

// Register adds or replaces the adapter for its platform.
func (r *Registry) Register(s Source) {
	r.sources[s.Platform()] = s
}

// Get returns the adapter for p.
func (r *Registry) Get(p models.Platform) (Source, error) {
	s, ok := r.sources[p]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownPlatform, string(p))
	}
	return s, nil
}

// getJSON performs a GET and decodes a 2xx JSON body into out.
func getJSON(ctx context.Context, client *http.Client, service, url string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return upstream.FromTransport(service, err)
	}
	defer resp.Body.Close()

	if err := upstream.Check(service, resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", service, err)
	}
	return nil
}
