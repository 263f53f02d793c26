package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"game-tracker/core/utils"
	"game-tracker/feature/library/models"

	"go.uber.org/zap"
)

// Steam reads owned games and the wishlist of a Steam profile.
type Steam struct {
	apiURL   string
	storeURL string
	apiKey   string
	client   *http.Client
	logger   *zap.Logger
}

// NewSteam creates the Steam adapter.
func NewSteam(cfg Config, client *http.Client, logger *zap.Logger) *Steam {
	return &Steam{
		apiURL:   strings.TrimSuffix(cfg.SteamAPIURL, "/"),
		storeURL: strings.TrimSuffix(cfg.SteamStoreURL, "/"),
		apiKey:   cfg.SteamAPIKey,
		client:   client,
		logger:   logger,
	}
}

func (s *Steam) Platform() models.Platform { return models.PlatformSteam }

type ownedGamesResponse struct {
	Response struct {
		GameCount int `json:"game_count"`
		Games     []struct {
			AppID           any    `json:"appid"`
			Name            string `json:"name"`
			PlaytimeForever int    `json:"playtime_forever"`
			ImgIconURL      string `json:"img_icon_url"`
		} `json:"games"`
	} `json:"response"`
}

// FetchLibrary returns every owned game, free-to-play titles with playtime included.
func (s *Steam) FetchLibrary(ctx context.Context, cred Credential) ([]models.RawPlatformGame, error) {
	if cred.AccountID == "" {
		return nil, ErrNoCredential
	}

	q := url.Values{}
	q.Set("key", s.apiKey)
	q.Set("steamid", cred.AccountID)
	q.Set("include_appinfo", "1")
	q.Set("include_played_free_games", "1")
	q.Set("format", "json")

	var body ownedGamesResponse
	if err := getJSON(ctx, s.client, "steam", s.apiURL+"/IPlayerService/GetOwnedGames/v1/?"+q.Encode(), nil, &body); err != nil {
		return nil, fmt.Errorf("fetch steam library: %w", err)
	}

	games := make([]models.RawPlatformGame, 0, len(body.Response.Games))
	for _, g := range body.Response.Games {
		id := utils.ToString(g.AppID)
		if id == "" {
			continue
		}
		raw := models.RawPlatformGame{
			ExternalID:      id,
			DisplayName:     g.Name,
			PlaytimeMinutes: g.PlaytimeForever,
		}
		if g.ImgIconURL != "" {
			raw.Images.IconURL = fmt.Sprintf("https://media.steampowered.com/steamcommunity/public/images/apps/%s/%s.jpg", id, g.ImgIconURL)
		}
		games = append(games, raw)
	}
	return games, nil
}

type wishlistItem struct {
	Name    string `json:"name"`
	Capsule string `json:"capsule"`
}

// FetchWishlist pages through the store wishlist until an empty page or a
// page holding no app id seen before.
func (s *Steam) FetchWishlist(ctx context.Context, cred Credential) ([]models.RawPlatformGame, error) {
	if cred.AccountID == "" {
		return nil, ErrNoCredential
	}

	var games []models.RawPlatformGame
	seen := make(map[string]struct{})
	for page := 0; page < maxPages; page++ {
		endpoint := fmt.Sprintf("%s/wishlist/profiles/%s/wishlistdata/?p=%d", s.storeURL, url.PathEscape(cred.AccountID), page)

		var raw json.RawMessage
		if err := getJSON(ctx, s.client, "steam", endpoint, nil, &raw); err != nil {
			if page == 0 {
				return nil, fmt.Errorf("fetch steam wishlist: %w", err)
			}
			s.logger.Warn("Steam wishlist paging stopped early",
				zap.Int("page", page), zap.Int("collected", len(games)), zap.Error(err))
			return games, nil
		}

		// An exhausted wishlist answers with [] rather than {}
		items := map[string]wishlistItem{}
		if trimmed := strings.TrimSpace(string(raw)); trimmed != "[]" {
			if err := json.Unmarshal(raw, &items); err != nil {
				if page == 0 {
					return nil, fmt.Errorf("decode steam wishlist: %w", err)
				}
				s.logger.Warn("Steam wishlist page malformed", zap.Int("page", page), zap.Error(err))
				return games, nil
			}
		}
		if len(items) == 0 {
			return games, nil
		}

		ids := make([]string, 0, len(items))
		for id := range items {
			if _, ok := seen[id]; !ok {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			s.logger.Warn("Steam wishlist repeated a page", zap.Int("page", page), zap.Int("collected", len(games)))
			return games, nil
		}
		sort.Slice(ids, func(i, j int) bool {
			a, _ := strconv.Atoi(ids[i])
			b, _ := strconv.Atoi(ids[j])
			return a < b
		})
		for _, id := range ids {
			seen[id] = struct{}{}
			games = append(games, models.RawPlatformGame{
				ExternalID:  id,
				DisplayName: items[id].Name,
				Images:      models.ImageHints{CoverURL: items[id].Capsule},
			})
		}
	}
	s.logger.Warn("Steam wishlist paging reached the page limit", zap.Int("collected", len(games)))
	return games, nil
}
