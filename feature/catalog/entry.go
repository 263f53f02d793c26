package catalog

import "time"

// Entry is the catalog service's record for a game. It is never written back.
type Entry struct {
	CatalogID   int64      `json:"catalog_id"`
	Name        string     `json:"name"`
	CoverURL    string     `json:"cover_url,omitempty"`
	Genres      []string   `json:"genres,omitempty"`
	Rating      *float64   `json:"rating,omitempty"`
	RatingCount *int       `json:"rating_count,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Summary     string     `json:"summary,omitempty"`
}

// wire types

type gameDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Cover *struct {
		ImageID string `json:"image_id"`
	} `json:"cover"`
	Genres []struct {
		Name string `json:"name"`
	} `json:"genres"`
	TotalRating      *float64 `json:"total_rating"`
	TotalRatingCount *int     `json:"total_rating_count"`
	FirstReleaseDate *int64   `json:"first_release_date"`
	Summary          string   `json:"summary"`
}

type externalGameDTO struct {
	UID  string   `json:"uid"`
	Game *gameDTO `json:"game"`
}

func (g gameDTO) toEntry() Entry {
	e := Entry{
		CatalogID:   g.ID,
		Name:        g.Name,
		Rating:      g.TotalRating,
		RatingCount: g.TotalRatingCount,
		Summary:     g.Summary,
	}
	if g.Cover != nil && g.Cover.ImageID != "" {
		e.CoverURL = CoverURL(g.Cover.ImageID)
	}
	for _, genre := range g.Genres {
		e.Genres = append(e.Genres, genre.Name)
	}
	if g.FirstReleaseDate != nil {
		t := time.Unix(*g.FirstReleaseDate, 0).UTC()
		e.ReleaseDate = &t
	}
	return e
}

// CoverURL builds the big cover image URL for an image id.
func CoverURL(imageID string) string {
	return "https://images.igdb.com/igdb/image/upload/t_cover_big/" + imageID + ".jpg"
}
