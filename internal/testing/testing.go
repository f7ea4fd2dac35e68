// package testing contains shared testing utilities
package testing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/ytlive/internal/models"
	"github.com/desertthunder/ytlive/internal/shared"
)

const (
	DashManifest = "https://manifest.googlevideo.com/api/manifest/dash/id/X/source/yt_live_broadcast"
	HLSManifest  = "https://manifest.googlevideo.com/api/manifest/hls_variant/id/X/index.m3u8"
)

// WatchPage returns a trimmed watch page body embedding the given manifest URLs the way
// the player response does. Empty values leave the field out.
func WatchPage(dash, hls string) string {
	var b strings.Builder
	b.WriteString(`<html><body><script>var ytInitialPlayerResponse = {"streamingData":{"expiresInSeconds":"21540",`)
	if dash != "" {
		fmt.Fprintf(&b, `"dashManifestUrl":"%s",`, dash)
	}
	if hls != "" {
		fmt.Fprintf(&b, `"hlsManifestUrl":"%s",`, hls)
	}
	b.WriteString(`"serverAbrStreamingUrl":"https://rr1---sn.googlevideo.com/videoplayback"}};</script></body></html>`)
	return b.String()
}

// NewTestDB opens an in-memory SQLite database with migrations applied and a single connection.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	if _, err := shared.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
	calls    atomic.Int32
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	m.calls.Add(1)
	return m.response, m.err
}

// Calls reports how many requests went through the round tripper.
func (m *MockRoundTripper) Calls() int {
	return int(m.calls.Load())
}

// PageTransport serves a fixed body with a fixed status for every request and counts them.
type PageTransport struct {
	Status int
	Body   string
	calls  atomic.Int32
}

func (p *PageTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	p.calls.Add(1)
	status := p.Status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
		Body:       io.NopCloser(strings.NewReader(p.Body)),
		Request:    req,
	}, nil
}

// Calls reports how many pages were served.
func (p *PageTransport) Calls() int {
	return int(p.calls.Load())
}

// NewPageClient returns an [http.Client] whose every GET answers with body.
func NewPageClient(body string) (*http.Client, *PageTransport) {
	tr := &PageTransport{Body: body}
	return &http.Client{Transport: tr}, tr
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// StubResolver is a [models.Resolver] returning canned values.
type StubResolver struct {
	Dash  string
	HLS   string
	Err   error
	calls atomic.Int32
}

func (s *StubResolver) DashURL(ctx context.Context, sourceURL string) (string, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return "", s.Err
	}
	if s.Dash == "" {
		return "", shared.ErrManifestNotFound
	}
	return s.Dash, nil
}

func (s *StubResolver) HLSURL(ctx context.Context, sourceURL string) (string, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return "", s.Err
	}
	if s.HLS == "" {
		return "", shared.ErrManifestNotFound
	}
	return s.HLS, nil
}

func (s *StubResolver) Manifests(ctx context.Context, sourceURL string) (*models.Manifests, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	return &models.Manifests{Dash: s.Dash, HLS: s.HLS}, nil
}

// Calls reports how many resolutions were requested.
func (s *StubResolver) Calls() int {
	return int(s.calls.Load())
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}
