package catalog

// Config holds the catalog service connection settings.
type Config struct {
	BaseURL         string `mapstructure:"base_url" default:"https://api.igdb.com/v4"`
	ClientID        string `mapstructure:"client_id" default:""`
	AccessToken     string `mapstructure:"access_token" default:""`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" default:"8"`
	SearchLimit     int    `mapstructure:"search_limit" default:"10"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" default:"600"`
}
