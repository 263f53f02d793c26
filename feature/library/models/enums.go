package models

import (
	"errors"
	"fmt"
)

// ErrUnknownPlatform is returned for a platform tag outside the closed set.
var ErrUnknownPlatform = errors.New("unknown platform")

// Platform identifies an external game library provider.
type Platform string

const (
	PlatformSteam Platform = "steam"
	PlatformPSN   Platform = "psn"
	PlatformXbox  Platform = "xbox"
)

// Platforms lists every supported platform.
var Platforms = []Platform{PlatformSteam, PlatformPSN, PlatformXbox}

// ParsePlatform validates a platform tag.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
	return p, nil
}

// Valid reports whether p is a known platform.
func (p Platform) Valid() bool {
	switch p {
	case PlatformSteam, PlatformPSN, PlatformXbox:
		return true
	}
	return false
}

// ForeignKeyColumn returns the library_entries column holding this platform's id.
func (p Platform) ForeignKeyColumn() (string, error) {
	switch p {
	case PlatformSteam:
		return "steam_app_id", nil
	case PlatformPSN:
		return "psn_title_id", nil
	case PlatformXbox:
		return "xbox_title_id", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, string(p))
}

// Source returns the provenance tag recorded on entries imported from p.
func (p Platform) Source() (Source, error) {
	switch p {
	case PlatformSteam:
		return SourceSteam, nil
	case PlatformPSN:
		return SourcePSN, nil
	case PlatformXbox:
		return SourceXbox, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, string(p))
}

// DefaultStatus is the status given to a newly imported entry.
func (p Platform) DefaultStatus(mode Mode) (Status, error) {
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, string(p))
	}
	switch mode {
	case ModeWishlist:
		return StatusWishlist, nil
	case ModeLibrary:
		return StatusPlaying, nil
	}
	return "", fmt.Errorf("unknown sync mode %q", string(mode))
}

// FallbackCoverURL builds a cover image for an unmatched game from the platform's CDN.
// Platforms without a predictable image URL return "".
func (p Platform) FallbackCoverURL(externalID string) (string, error) {
	switch p {
	case PlatformSteam:
		return fmt.Sprintf("https://cdn.cloudflare.steamstatic.com/steam/apps/%s/library_600x900.jpg", externalID), nil
	case PlatformPSN, PlatformXbox:
		return "", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, string(p))
}

// Source records how an entry first entered a user's library.
type Source string

const (
	SourceManual Source = "manual"
	SourceSteam  Source = "steam"
	SourcePSN    Source = "psn"
	SourceXbox   Source = "xbox"
)

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	switch s {
	case SourceManual, SourceSteam, SourcePSN, SourceXbox:
		return true
	}
	return false
}

// Status is the user-facing play status of an entry.
type Status string

const (
	StatusWishlist  Status = "wishlist"
	StatusPlaying   Status = "playing"
	StatusCompleted Status = "completed"
	StatusDropped   Status = "dropped"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusWishlist, StatusPlaying, StatusCompleted, StatusDropped:
		return true
	}
	return false
}

// Mode selects between a full library import and a wishlist import.
type Mode string

const (
	ModeLibrary  Mode = "library"
	ModeWishlist Mode = "wishlist"
)
