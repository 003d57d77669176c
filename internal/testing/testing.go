// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/scx/internal/models"
	"golang.org/x/oauth2"
)

// MockTrackSource is a test double for [services.TrackSource]
type MockTrackSource struct {
	Authenticated bool
	Pages         map[int]*models.ListingPage
	Links         map[int64]string
	Content       string

	CallbackErr error
	ListErr     error
	LinkErr     error
	DownloadErr error
	LogoutErr   error

	Callbacks []url.Values
	Downloads []string
	Requested []int
}

func (m *MockTrackSource) Name() string { return "mock" }

func (m *MockTrackSource) AuthorizeURL(scope string, opts ...oauth2.AuthCodeOption) string {
	cfg := oauth2.Config{ClientID: "mock", Endpoint: oauth2.Endpoint{AuthURL: "https://example.com/connect"}}
	return cfg.AuthCodeURL("", append([]oauth2.AuthCodeOption{oauth2.SetAuthURLParam("scope", scope)}, opts...)...)
}

func (m *MockTrackSource) HandleCallback(ctx context.Context, params url.Values) error {
	m.Callbacks = append(m.Callbacks, params)
	if m.CallbackErr != nil {
		return m.CallbackErr
	}
	if params.Get("code") != "" {
		m.Authenticated = true
	}
	return nil
}

func (m *MockTrackSource) IsAuthenticated() bool { return m.Authenticated }

func (m *MockTrackSource) Logout(ctx context.Context) error {
	m.Authenticated = false
	return m.LogoutErr
}

func (m *MockTrackSource) ListTracks(ctx context.Context, page int) (*models.ListingPage, error) {
	m.Requested = append(m.Requested, page)
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if p, ok := m.Pages[page]; ok {
		return p, nil
	}
	if p, ok := m.Pages[1]; ok {
		return p, nil
	}
	return &models.ListingPage{Page: 1, PageSize: models.PageSize}, nil
}

func (m *MockTrackSource) ResolveLink(ctx context.Context, trackID int64) (string, error) {
	if m.LinkErr != nil {
		return "", m.LinkErr
	}
	link, ok := m.Links[trackID]
	if !ok {
		return "", fmt.Errorf("no link for track %d", trackID)
	}
	return link, nil
}

// DownloadTrack writes Content to dest and records the path.
func (m *MockTrackSource) DownloadTrack(ctx context.Context, trackID int64, dest string) (*models.DownloadResult, error) {
	if m.DownloadErr != nil {
		return nil, m.DownloadErr
	}
	if err := os.WriteFile(dest, []byte(m.Content), 0o644); err != nil {
		return nil, err
	}
	m.Downloads = append(m.Downloads, dest)
	return &models.DownloadResult{Path: dest, SourceURL: fmt.Sprintf("https://api.example.com/tracks/%d", trackID)}, nil
}

// MockPreferenceStore is an in-memory [services.PreferenceStore]
type MockPreferenceStore struct {
	mu     sync.Mutex
	values map[string]string
	GetErr error
	SetErr error
}

func NewMockPreferenceStore() *MockPreferenceStore {
	return &MockPreferenceStore{values: map[string]string{}}
}

func (m *MockPreferenceStore) GetPreference(ctx context.Context, user, key, def string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", m.GetErr
	}
	if v, ok := m.values[user+"/"+key]; ok {
		return v, nil
	}
	return def, nil
}

func (m *MockPreferenceStore) SetPreference(ctx context.Context, user, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[user+"/"+key] = value
	return nil
}

// Value returns the stored value and whether it was ever set.
func (m *MockPreferenceStore) Value(user, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[user+"/"+key]
	return v, ok
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
