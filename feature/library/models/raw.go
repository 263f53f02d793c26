package models

// ImageHints carries optional artwork reported by a platform.
type ImageHints struct {
	IconURL  string `json:"icon_url,omitempty"`
	CoverURL string `json:"cover_url,omitempty"`
}

// RawPlatformGame is one game as reported by a platform, before matching.
type RawPlatformGame struct {
	ExternalID      string     `json:"external_id"`
	DisplayName     string     `json:"display_name"`
	PlaytimeMinutes int        `json:"playtime_minutes"`
	Images          ImageHints `json:"images"`
}

// SyncResult summarizes one synchronization run.
// Matched+Unmatched equals TotalGames; Imported+Updated+Failed never exceeds it.
type SyncResult struct {
	TotalGames int `json:"total_games"`
	Matched    int `json:"matched"`
	Unmatched  int `json:"unmatched"`
	Imported   int `json:"imported"`
	Updated    int `json:"updated"`
	Failed     int `json:"failed"`
}
