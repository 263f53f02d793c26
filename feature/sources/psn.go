package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"game-tracker/feature/library/models"

	"go.uber.org/zap"
)

// PSN reads the played title list of the token's account.
type PSN struct {
	apiURL   string
	pageSize int
	client   *http.Client
	logger   *zap.Logger
}

// NewPSN creates the PlayStation Network adapter.
func NewPSN(cfg Config, client *http.Client, logger *zap.Logger) *PSN {
	size := cfg.PSNPageSize
	if size <= 0 {
		size = 200
	}
	return &PSN{
		apiURL:   strings.TrimSuffix(cfg.PSNAPIURL, "/"),
		pageSize: size,
		client:   client,
		logger:   logger,
	}
}

func (p *PSN) Platform() models.Platform { return models.PlatformPSN }

type psnTitlesResponse struct {
	Titles []struct {
		TitleID      string `json:"titleId"`
		Name         string `json:"name"`
		ImageURL     string `json:"imageUrl"`
		PlayDuration string `json:"playDuration"`
	} `json:"titles"`
	NextOffset     *int `json:"nextOffset"`
	TotalItemCount int  `json:"totalItemCount"`
}

// FetchLibrary pages through the title list. A failure after the first page
// returns what was collected so far.
func (p *PSN) FetchLibrary(ctx context.Context, cred Credential) ([]models.RawPlatformGame, error) {
	if cred.AccessToken == "" {
		return nil, ErrNoCredential
	}
	headers := map[string]string{"Authorization": "Bearer " + cred.AccessToken}

	var games []models.RawPlatformGame
	offset := 0
	for page := 0; ; page++ {
		endpoint := fmt.Sprintf("%s/gamelist/v2/users/me/titles?limit=%d&offset=%d", p.apiURL, p.pageSize, offset)

		var body psnTitlesResponse
		if err := getJSON(ctx, p.client, "psn", endpoint, headers, &body); err != nil {
			if page == 0 {
				return nil, fmt.Errorf("fetch psn library: %w", err)
			}
			p.logger.Warn("PSN paging stopped early",
				zap.Int("offset", offset), zap.Int("collected", len(games)), zap.Error(err))
			return games, nil
		}

		for _, t := range body.Titles {
			minutes, err := ParseISODurationMinutes(t.PlayDuration)
			if err != nil {
				p.logger.Debug("Unparseable play duration", zap.String("title_id", t.TitleID), zap.String("value", t.PlayDuration))
			}
			games = append(games, models.RawPlatformGame{
				ExternalID:      t.TitleID,
				DisplayName:     t.Name,
				PlaytimeMinutes: minutes,
				Images:          models.ImageHints{CoverURL: t.ImageURL},
			})
		}

		if len(body.Titles) == 0 {
			return games, nil
		}
		next := offset + len(body.Titles)
		if body.NextOffset != nil {
			next = *body.NextOffset
		}
		if body.TotalItemCount > 0 && next >= body.TotalItemCount {
			return games, nil
		}
		if next <= offset || page+1 >= maxPages {
			p.logger.Warn("PSN paging stopped without reaching the end",
				zap.Int("offset", offset), zap.Int("next_offset", next), zap.Int("collected", len(games)))
			return games, nil
		}
		offset = next
	}
}
