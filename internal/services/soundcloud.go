// SoundCloud API implementation of [TrackSource]
//
// Response types follow https://developers.soundcloud.com/docs/api/reference
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/scx/internal/models"
	"github.com/desertthunder/scx/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	soundcloudAuthURL  = "https://soundcloud.com/connect"
	soundcloudTokenURL = "https://api.soundcloud.com/oauth2/token"
	soundcloudBaseURL  = "https://api.soundcloud.com"

	// AccessTokenPreference is the per-user preference key holding the access token.
	AccessTokenPreference = "soundcloud_accesstoken"

	// ScopeNonExpiring requests a token that does not expire.
	ScopeNonExpiring = "non-expiring"
)

var _ TrackSource = (*SoundCloudService)(nil)

// SoundCloudOpts contains the collaborators and endpoints for a [SoundCloudService].
type SoundCloudOpts struct {
	Credential  models.Credential
	User        string
	Preferences PreferenceStore
	Icons       IconResolver
	HTTPClient  *http.Client
	Limiter     *rate.Limiter
	Logger      *log.Logger

	// Endpoint overrides, mainly for tests. Empty values use the public API.
	BaseURL  string
	AuthURL  string
	TokenURL string

	// AccessToken seeds the session. When empty the token is read from Preferences.
	AccessToken string
}

// SoundCloudService implements [TrackSource] against the SoundCloud HTTP API.
//
// The only mutable state is the access token, which is set by [SoundCloudService.HandleCallback]
// and cleared by [SoundCloudService.Logout].
type SoundCloudService struct {
	config     *oauth2.Config
	token      string
	user       string
	prefs      PreferenceStore
	icons      IconResolver
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewSoundCloudService validates the credential and loads the user's stored access token.
func NewSoundCloudService(ctx context.Context, opts SoundCloudOpts) (*SoundCloudService, error) {
	if err := opts.Credential.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMissingCredentials, err)
	}
	if opts.Preferences == nil {
		return nil, fmt.Errorf("%w: preference store is required", shared.ErrInvalidConfig)
	}
	if opts.User == "" {
		return nil, fmt.Errorf("%w: user is required", shared.ErrInvalidConfig)
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Icons == nil {
		opts.Icons = ExtensionIcons{}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}

	s := &SoundCloudService{
		config: &oauth2.Config{
			ClientID:     opts.Credential.ClientID,
			ClientSecret: opts.Credential.ClientSecret,
			RedirectURL:  opts.Credential.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   withDefault(opts.AuthURL, soundcloudAuthURL),
				TokenURL:  withDefault(opts.TokenURL, soundcloudTokenURL),
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		token:      opts.AccessToken,
		user:       opts.User,
		prefs:      opts.Preferences,
		icons:      opts.Icons,
		httpClient: opts.HTTPClient,
		baseURL:    strings.TrimRight(withDefault(opts.BaseURL, soundcloudBaseURL), "/"),
		limiter:    opts.Limiter,
		logger:     shared.WithLogger(opts.Logger, "service", "soundcloud", "user", opts.User),
	}

	if s.token == "" {
		token, err := s.prefs.GetPreference(ctx, s.user, AccessTokenPreference, "")
		if err != nil {
			return nil, fmt.Errorf("failed to load access token: %w", err)
		}
		s.token = token
	}

	return s, nil
}

func (s *SoundCloudService) Name() string {
	return "SoundCloud"
}

// AuthorizeURL returns the connect URL embedding client id, redirect URI and scope.
//
// Extra options (such as a state parameter) are appended as given.
func (s *SoundCloudService) AuthorizeURL(scope string, opts ...oauth2.AuthCodeOption) string {
	all := make([]oauth2.AuthCodeOption, 0, len(opts)+1)
	if scope != "" {
		all = append(all, oauth2.SetAuthURLParam("scope", scope))
	}
	all = append(all, opts...)
	return s.config.AuthCodeURL("", all...)
}

// HandleCallback processes the redirect back from SoundCloud.
//
// An error parameter yields [shared.ErrAuthDenied]; a code is exchanged and persisted;
// neither is a no-op.
func (s *SoundCloudService) HandleCallback(ctx context.Context, params url.Values) error {
	if errParam := params.Get("error"); errParam != "" {
		desc := params.Get("error_description")
		if desc == "" {
			desc = errParam
		}
		s.logger.Warn("authorization denied", "error", errParam, "description", desc)
		return &AuthError{Kind: shared.ErrAuthDenied, Description: desc}
	}

	code := params.Get("code")
	if code == "" {
		return nil
	}

	token, err := s.config.Exchange(s.clientContext(ctx), code)
	if err != nil {
		return &AuthError{Kind: shared.ErrExchangeFailed, Err: err}
	}

	if err := s.prefs.SetPreference(ctx, s.user, AccessTokenPreference, token.AccessToken); err != nil {
		return &AuthError{Kind: shared.ErrExchangeFailed, Err: fmt.Errorf("failed to store access token: %w", err)}
	}

	s.token = token.AccessToken
	s.logger.Info("authorization complete")
	return nil
}

func (s *SoundCloudService) IsAuthenticated() bool {
	return s.token != ""
}

// Logout clears the stored token. Local state is reset even when the store fails.
func (s *SoundCloudService) Logout(ctx context.Context) error {
	s.token = ""
	if err := s.prefs.SetPreference(ctx, s.user, AccessTokenPreference, ""); err != nil {
		return fmt.Errorf("failed to clear access token: %w", err)
	}
	s.logger.Info("logged out")
	return nil
}

// Me retrieves the authenticated user's profile.
func (s *SoundCloudService) Me(ctx context.Context) (*models.Me, error) {
	if !s.IsAuthenticated() {
		return nil, errNotAuthenticated("get profile")
	}

	var me models.Me
	if err := s.getJSON(ctx, "get profile", "/me", &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// Track retrieves one of the user's tracks by id.
func (s *SoundCloudService) Track(ctx context.Context, trackID int64) (*models.Track, error) {
	if !s.IsAuthenticated() {
		return nil, errNotAuthenticated("get track")
	}

	op := fmt.Sprintf("get track %d", trackID)
	var track models.Track
	if err := s.getJSON(ctx, op, fmt.Sprintf("/me/tracks/%d", trackID), &track); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			apiErr.Kind = shared.ErrTrackNotFound
		}
		return nil, err
	}

	if track.ID == 0 {
		return nil, &APIError{Kind: shared.ErrTrackNotFound, Op: op}
	}
	return &track, nil
}

// ListTracks returns one page of the user's tracks.
//
// Pages outside [1, total pages] are clamped to the first page.
func (s *SoundCloudService) ListTracks(ctx context.Context, page int) (*models.ListingPage, error) {
	if !s.IsAuthenticated() {
		return nil, errNotAuthenticated("list tracks")
	}

	me, err := s.Me(ctx)
	if err != nil {
		return nil, err
	}

	total := me.TotalTracks()
	totalPages := models.TotalPages(total)
	if page < 1 || page > totalPages {
		if page != 1 {
			s.logger.Debug("page out of range, using first page", "page", page, "total_pages", totalPages)
		}
		page = 1
	}

	offset := (page - 1) * models.PageSize
	endpoint := fmt.Sprintf("/me/tracks?limit=%d&offset=%d", models.PageSize, offset)

	var collection trackCollection
	if err := s.getJSON(ctx, "list tracks", endpoint, &collection); err != nil {
		return nil, err
	}

	listing := &models.ListingPage{
		Page:       page,
		PageSize:   models.PageSize,
		Total:      total,
		TotalPages: totalPages,
		Tracks:     make([]models.TrackSummary, 0, len(collection)),
	}
	for _, track := range collection {
		listing.Tracks = append(listing.Tracks, s.summarize(track))
	}

	s.logger.Debug("listed tracks", "page", page, "count", len(listing.Tracks), "total", total)
	return listing, nil
}

// ResolveLink returns the track's permalink with a "#title" fragment for link naming.
//
// Private tracks carry their secret token as a path segment.
func (s *SoundCloudService) ResolveLink(ctx context.Context, trackID int64) (string, error) {
	track, err := s.Track(ctx, trackID)
	if err != nil {
		return "", err
	}
	return TrackLink(*track), nil
}

// TrackLink builds the link [SoundCloudService.ResolveLink] returns for track.
func TrackLink(track models.Track) string {
	link := track.PermalinkURL
	if track.IsPrivate() {
		link = strings.TrimSuffix(link, "/") + "/" + track.SecretToken
	}
	return link + "#" + track.Title
}

// DownloadTrack streams the original upload of a track to dest.
//
// dest's directory must already exist. An existing dest is left untouched unless the download completes.
func (s *SoundCloudService) DownloadTrack(ctx context.Context, trackID int64, dest string) (*models.DownloadResult, error) {
	if !s.IsAuthenticated() {
		return nil, &DownloadError{Kind: shared.ErrDownloadFailed, TrackID: trackID, Err: errNotAuthenticated("download")}
	}

	track, err := s.Track(ctx, trackID)
	if err != nil {
		return nil, &DownloadError{Kind: shared.ErrDownloadFailed, TrackID: trackID, Err: err}
	}

	if track.QuotaExhausted() {
		return nil, &DownloadError{Kind: shared.ErrQuotaExceeded, TrackID: trackID}
	}

	resp, err := s.get(ctx, fmt.Sprintf("/tracks/%d/download", trackID))
	if err != nil {
		return nil, &DownloadError{Kind: shared.ErrDownloadFailed, TrackID: trackID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &DownloadError{Kind: shared.ErrDownloadFailed, TrackID: trackID, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	written, err := writeFile(dest, resp.Body)
	if err != nil {
		return nil, &DownloadError{Kind: shared.ErrDownloadFailed, TrackID: trackID, Err: err}
	}

	s.logger.Info("downloaded track", "id", trackID, "path", dest, "bytes", written)
	return &models.DownloadResult{Path: dest, SourceURL: track.URI}, nil
}

func (s *SoundCloudService) summarize(track models.Track) models.TrackSummary {
	thumbnail := track.ArtworkURL
	if thumbnail == "" {
		thumbnail = s.icons.IconForExtension(track.OriginalFormat)
	}

	return models.TrackSummary{
		Title:           track.Filename(),
		Thumbnail:       thumbnail,
		ThumbnailWidth:  models.ThumbnailWidth,
		ThumbnailHeight: models.ThumbnailHeight,
		Date:            track.CreatedAt,
		Source:          track.ID,
	}
}

// get performs an authenticated GET against the API. The caller closes the body.
func (s *SoundCloudService) get(ctx context.Context, endpoint string) (*http.Response, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "OAuth "+s.token)
	req.Header.Set("Accept", "application/json")

	s.logger.Debug("api request", "endpoint", endpoint)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// getJSON performs a GET and decodes the body into result. Every failure is an [APIError].
func (s *SoundCloudService) getJSON(ctx context.Context, op, endpoint string, result any) error {
	resp, err := s.get(ctx, endpoint)
	if err != nil {
		return apiError(op, shared.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			Kind:   shared.ErrTransport,
			Op:     op,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("soundcloud API error: status %d: %s", resp.StatusCode, bytes.TrimSpace(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &APIError{Kind: shared.ErrTransport, Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// clientContext carries the injected http client into the oauth2 token exchange.
func (s *SoundCloudService) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
}

// trackCollection decodes both a bare array and a linked-partitioning {"collection": [...]} page.
type trackCollection []models.Track

func (c *trackCollection) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var page struct {
			Collection []models.Track `json:"collection"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		*c = page.Collection
		return nil
	}

	var tracks []models.Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		return err
	}
	*c = tracks
	return nil
}

// writeFile streams r into a temp file beside dest and renames it into place,
// so an existing dest is only replaced by a complete download.
func writeFile(dest string, r io.Reader) (int64, error) {
	f, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dest, err)
	}
	tmp := f.Name()

	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp, dest)
	}
	if err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			err = errors.Join(err, rmErr)
		}
		return 0, fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return written, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
