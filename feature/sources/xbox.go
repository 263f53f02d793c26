package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"game-tracker/core/utils"
	"game-tracker/feature/library/models"

	"go.uber.org/zap"
)

// Xbox reads the title history of an Xbox Live account.
type Xbox struct {
	apiURL string
	client *http.Client
	logger *zap.Logger
}

// NewXbox creates the Xbox Live adapter.
func NewXbox(cfg Config, client *http.Client, logger *zap.Logger) *Xbox {
	return &Xbox{
		apiURL: strings.TrimSuffix(cfg.XboxAPIURL, "/"),
		client: client,
		logger: logger,
	}
}

func (x *Xbox) Platform() models.Platform { return models.PlatformXbox }

type titleHistoryResponse struct {
	Titles []struct {
		TitleID      any    `json:"titleId"`
		Name         string `json:"name"`
		Type         string `json:"type"`
		DisplayImage string `json:"displayImage"`
	} `json:"titles"`
}

// FetchLibrary returns the games in the account's title history. Apps are skipped.
// Title history carries no playtime, so PlaytimeMinutes is always 0.
func (x *Xbox) FetchLibrary(ctx context.Context, cred Credential) ([]models.RawPlatformGame, error) {
	if cred.AccountID == "" || cred.AccessToken == "" {
		return nil, ErrNoCredential
	}

	endpoint := fmt.Sprintf("%s/users/xuid(%s)/titles/titlehistory/decoration/detail,image", x.apiURL, url.PathEscape(cred.AccountID))
	headers := map[string]string{
		"Authorization":          cred.AccessToken,
		"x-xbl-contract-version": "2",
		"Accept-Language":        "en-US",
	}

	var body titleHistoryResponse
	if err := getJSON(ctx, x.client, "xbox", endpoint, headers, &body); err != nil {
		return nil, fmt.Errorf("fetch xbox library: %w", err)
	}

	games := make([]models.RawPlatformGame, 0, len(body.Titles))
	for _, t := range body.Titles {
		if t.Type != "" && t.Type != "Game" {
			continue
		}
		id := utils.ToString(t.TitleID)
		if id == "" {
			continue
		}
		games = append(games, models.RawPlatformGame{
			ExternalID:  id,
			DisplayName: t.Name,
			Images:      models.ImageHints{CoverURL: t.DisplayImage},
		})
	}
	x.logger.Debug("Fetched xbox title history", zap.Int("titles", len(body.Titles)), zap.Int("games", len(games)))
	return games, nil
}
