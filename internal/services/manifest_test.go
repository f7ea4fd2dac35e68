package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/ytlive/internal/models"
	"github.com/desertthunder/ytlive/internal/shared"
	tu "github.com/desertthunder/ytlive/internal/testing"
)

func TestManifestService(t *testing.T) {
	ctx := context.Background()

	t.Run("New", func(t *testing.T) {
		t.Run("Defaults", func(t *testing.T) {
			srv := NewManifestService(ManifestOpts{Timeout: 5 * time.Second})

			if srv.httpClient == nil || srv.httpClient.Timeout != 5*time.Second {
				t.Error("expected client with configured timeout")
			}
			if srv.userAgent != defaultUserAgent {
				t.Errorf("expected default user agent, got %s", srv.userAgent)
			}
			if srv.dash == nil || srv.hls == nil {
				t.Error("expected default extractors")
			}
		})

		t.Run("With Custom Client", func(t *testing.T) {
			client := &http.Client{}
			srv := NewManifestService(ManifestOpts{HTTPClient: client, UserAgent: "ytlive-test"})

			if srv.httpClient != client {
				t.Error("expected custom client to be used")
			}
			if srv.userAgent != "ytlive-test" {
				t.Errorf("expected custom user agent, got %s", srv.userAgent)
			}
		})
	})

	t.Run("DashURL", func(t *testing.T) {
		t.Run("Extracts From Served Page", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}
				if r.URL.Query().Get("v") != "X" {
					t.Errorf("expected v=X, got %s", r.URL.RawQuery)
				}
				if !strings.HasPrefix(r.Header.Get("User-Agent"), "Mozilla/5.0") {
					t.Errorf("expected browser user agent, got %s", r.Header.Get("User-Agent"))
				}
				w.Header().Set("Content-Type", "text/html")
				w.Write([]byte(tu.WatchPage(tu.DashManifest, tu.HLSManifest)))
			}))
			defer server.Close()

			srv := NewManifestService(ManifestOpts{})
			got, err := srv.DashURL(ctx, server.URL+"/watch?v=X")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tu.DashManifest {
				t.Errorf("expected %s, got %s", tu.DashManifest, got)
			}
		})

		t.Run("No Marker", func(t *testing.T) {
			client, _ := tu.NewPageClient(tu.WatchPage("", tu.HLSManifest))
			srv := NewManifestService(ManifestOpts{HTTPClient: client})

			_, err := srv.DashURL(ctx, "https://www.youtube.com/watch?v=X")
			if !errors.Is(err, shared.ErrManifestNotFound) {
				t.Errorf("expected ErrManifestNotFound, got %v", err)
			}
		})

		t.Run("Every Call Fetches", func(t *testing.T) {
			client, tr := tu.NewPageClient(tu.WatchPage(tu.DashManifest, ""))
			srv := NewManifestService(ManifestOpts{HTTPClient: client})

			for range 3 {
				if _, err := srv.DashURL(ctx, "https://www.youtube.com/watch?v=X"); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			if tr.Calls() != 3 {
				t.Errorf("expected 3 fetches, got %d", tr.Calls())
			}
		})
	})

	t.Run("HLSURL", func(t *testing.T) {
		client, _ := tu.NewPageClient(`"hlsManifestUrl":"https://example/index.m3u8`)
		srv := NewManifestService(ManifestOpts{HTTPClient: client})

		got, err := srv.HLSURL(ctx, "https://www.youtube.com/watch?v=X")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != "https://example/index.m3u8" {
			t.Errorf("expected https://example/index.m3u8, got %s", got)
		}
	})

	t.Run("Manifest", func(t *testing.T) {
		client, _ := tu.NewPageClient(tu.WatchPage(tu.DashManifest, tu.HLSManifest))
		srv := NewManifestService(ManifestOpts{HTTPClient: client})

		got, err := srv.Manifest(ctx, "https://www.youtube.com/watch?v=X", models.FormatHLS)
		if err != nil || got != tu.HLSManifest {
			t.Errorf("Manifest(hls) = %q, %v", got, err)
		}

		if _, err := srv.Manifest(ctx, "https://www.youtube.com/watch?v=X", models.Format("flv")); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Manifests", func(t *testing.T) {
		t.Run("Both Fields In One Fetch", func(t *testing.T) {
			client, tr := tu.NewPageClient(tu.WatchPage(tu.DashManifest, tu.HLSManifest))
			srv := NewManifestService(ManifestOpts{HTTPClient: client})

			got, err := srv.Manifests(ctx, "https://www.youtube.com/watch?v=X")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got.Dash != tu.DashManifest || got.HLS != tu.HLSManifest {
				t.Errorf("unexpected manifests %+v", got)
			}
			if tr.Calls() != 1 {
				t.Errorf("expected a single fetch, got %d", tr.Calls())
			}
		})

		t.Run("Only HLS", func(t *testing.T) {
			client, _ := tu.NewPageClient(tu.WatchPage("", tu.HLSManifest))
			srv := NewManifestService(ManifestOpts{HTTPClient: client})

			got, err := srv.Manifests(ctx, "https://www.youtube.com/watch?v=X")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got.Dash != "" || got.HLS != tu.HLSManifest {
				t.Errorf("unexpected manifests %+v", got)
			}
		})

		t.Run("Neither Field", func(t *testing.T) {
			client, _ := tu.NewPageClient("<html>offline</html>")
			srv := NewManifestService(ManifestOpts{HTTPClient: client})

			_, err := srv.Manifests(ctx, "https://www.youtube.com/watch?v=X")
			if !errors.Is(err, shared.ErrManifestNotFound) {
				t.Errorf("expected ErrManifestNotFound, got %v", err)
			}
		})
	})

	t.Run("Fetch Failures", func(t *testing.T) {
		t.Run("Failed Request Creation", func(t *testing.T) {
			srv := NewManifestService(ManifestOpts{})
			_, err := srv.DashURL(ctx, "http://example.com/\x00invalid")
			if !errors.Is(err, shared.ErrFetchFailed) {
				t.Errorf("expected ErrFetchFailed, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
			srv := NewManifestService(ManifestOpts{HTTPClient: client})

			_, err := srv.HLSURL(ctx, "https://www.youtube.com/watch?v=X")
			if !errors.Is(err, shared.ErrFetchFailed) {
				t.Errorf("expected ErrFetchFailed, got %v", err)
			}
			if !strings.Contains(err.Error(), "connection refused") {
				t.Errorf("expected transport error in message, got %v", err)
			}
		})

		t.Run("Non 2xx Status", func(t *testing.T) {
			tr := &tu.PageTransport{Status: http.StatusTooManyRequests, Body: tu.WatchPage(tu.DashManifest, "")}
			srv := NewManifestService(ManifestOpts{HTTPClient: &http.Client{Transport: tr}})

			_, err := srv.DashURL(ctx, "https://www.youtube.com/watch?v=X")
			if !errors.Is(err, shared.ErrFetchFailed) {
				t.Errorf("expected ErrFetchFailed, got %v", err)
			}
		})

		t.Run("Failed Body Read", func(t *testing.T) {
			resp := &http.Response{StatusCode: http.StatusOK, Body: &tu.FCloser{}, Header: http.Header{}}
			client := &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)}
			srv := NewManifestService(ManifestOpts{HTTPClient: client})

			_, err := srv.Manifests(ctx, "https://www.youtube.com/watch?v=X")
			if !errors.Is(err, shared.ErrFetchFailed) {
				t.Errorf("expected ErrFetchFailed, got %v", err)
			}
		})

		t.Run("Canceled Context", func(t *testing.T) {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			defer server.Close()

			srv := NewManifestService(ManifestOpts{})
			_, err := srv.DashURL(cctx, server.URL)
			if !errors.Is(err, shared.ErrFetchFailed) {
				t.Errorf("expected ErrFetchFailed, got %v", err)
			}
		})
	})
}
