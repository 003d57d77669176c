package models

import (
	"fmt"
	"time"
)

// PageSize is the fixed number of tracks in a [ListingPage].
const PageSize = 50

// Thumbnail dimensions reported to the picker.
const (
	ThumbnailWidth  = 64
	ThumbnailHeight = 64
)

// Sharing values reported by the API.
const (
	SharingPublic  = "public"
	SharingPrivate = "private"
)

// Credential is the OAuth2 client issued to the operator out-of-band.
type Credential struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// Validate checks that the client id and secret are present.
func (c Credential) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("missing client id")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("missing client secret")
	}
	return nil
}

// Track represents a SoundCloud track.
type Track struct {
	ID                 int64  `json:"id"`
	Title              string `json:"title"`
	OriginalFormat     string `json:"original_format"`
	ArtworkURL         string `json:"artwork_url"`
	Sharing            string `json:"sharing"`
	SecretToken        string `json:"secret_token"`
	PermalinkURL       string `json:"permalink_url"`
	URI                string `json:"uri"`
	CreatedAt          string `json:"created_at"`
	Downloadable       bool   `json:"downloadable"`
	DownloadsRemaining *int   `json:"downloads_remaining"`
}

// IsPrivate reports whether the track is shared privately and needs its secret token.
func (t Track) IsPrivate() bool {
	return t.Sharing == SharingPrivate
}

// Filename is the display name of the original upload, "{title}.{original_format}".
func (t Track) Filename() string {
	return t.Title + "." + t.OriginalFormat
}

// QuotaExhausted reports whether the API says no downloads remain.
//
// An absent downloads_remaining means the account has no download quota.
func (t Track) QuotaExhausted() bool {
	return t.DownloadsRemaining != nil && *t.DownloadsRemaining == 0
}

// TrackSummary is one row of a [ListingPage].
type TrackSummary struct {
	Title           string `json:"title"`
	Thumbnail       string `json:"thumbnail"`
	ThumbnailWidth  int    `json:"thumbnail_width"`
	ThumbnailHeight int    `json:"thumbnail_height"`
	Size            string `json:"size"`
	Date            string `json:"date"`
	Source          int64  `json:"source"`
}

// CreatedTime parses Date, accepting both the legacy "2006/01/02 15:04:05 -0700" layout and RFC 3339.
func (s TrackSummary) CreatedTime() (time.Time, error) {
	for _, layout := range []string{"2006/01/02 15:04:05 -0700", time.RFC3339} {
		if ts, err := time.Parse(layout, s.Date); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s.Date)
}

// ListingPage is a bounded window over the user's track collection.
type ListingPage struct {
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
	Tracks     []TrackSummary `json:"tracks"`
}

// HasNext reports whether a later page exists.
func (p ListingPage) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrev reports whether an earlier page exists.
func (p ListingPage) HasPrev() bool {
	return p.Page > 1
}

// DownloadResult describes a completed download.
type DownloadResult struct {
	Path      string `json:"path"`
	SourceURL string `json:"url"`
}

// Me is the authenticated user's profile.
type Me struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	PermalinkURL      string `json:"permalink_url"`
	PublicTrackCount  int    `json:"track_count"`
	PrivateTrackCount int    `json:"private_tracks_count"`
}

// TotalTracks is the number of tracks the user can list, public plus private.
func (m Me) TotalTracks() int {
	return m.PublicTrackCount + m.PrivateTrackCount
}

// TotalPages returns ceil(total / [PageSize]).
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}

// PluginVersion records an installed schema version, as written by migrations.
type PluginVersion struct {
	Plugin      string    `json:"plugin"`
	Version     int64     `json:"version"`
	Release     string    `json:"release"`
	InstalledAt time.Time `json:"installed_at"`
}
