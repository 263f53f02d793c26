package sources

// Config holds the platform adapter endpoints and credentials.
type Config struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds" default:"30"`
	SteamAPIURL    string `mapstructure:"steam_api_url" default:"https://api.steampowered.com"`
	SteamStoreURL  string `mapstructure:"steam_store_url" default:"https://store.steampowered.com"`
	SteamAPIKey    string `mapstructure:"steam_api_key" default:""`
	PSNAPIURL      string `mapstructure:"psn_api_url" default:"https://m.np.playstation.com/api"`
	PSNPageSize    int    `mapstructure:"psn_page_size" default:"200"`
	XboxAPIURL     string `mapstructure:"xbox_api_url" default:"https://titlehub.xboxlive.com"`
}
