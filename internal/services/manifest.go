// Manifest extraction from YouTube watch pages
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/desertthunder/ytlive/internal/models"
	"github.com/desertthunder/ytlive/internal/shared"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/121.0"

// ManifestService fetches watch pages and extracts their DASH and HLS manifest URLs.
//
// Every call issues a fresh GET: there is no cache, no retry and no coalescing of concurrent requests.
type ManifestService struct {
	httpClient *http.Client
	userAgent  string
	dash       FieldExtractor
	hls        FieldExtractor
}

// ManifestOpts configures a [ManifestService]. Zero values select the defaults.
type ManifestOpts struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
	Dash       FieldExtractor
	HLS        FieldExtractor
}

// NewManifestService creates a [ManifestService].
//
// When no client is given a new one is built with opts.Timeout; a zero timeout means none.
func NewManifestService(opts ManifestOpts) *ManifestService {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Dash == nil {
		opts.Dash = NewDashExtractor()
	}
	if opts.HLS == nil {
		opts.HLS = NewHLSExtractor()
	}

	return &ManifestService{
		httpClient: opts.HTTPClient,
		userAgent:  opts.UserAgent,
		dash:       opts.Dash,
		hls:        opts.HLS,
	}
}

// DashURL fetches sourceURL and returns the DASH manifest URL embedded in it.
func (m *ManifestService) DashURL(ctx context.Context, sourceURL string) (string, error) {
	return m.extractOne(ctx, sourceURL, m.dash, models.FormatDash)
}

// HLSURL fetches sourceURL and returns the HLS manifest URL embedded in it.
func (m *ManifestService) HLSURL(ctx context.Context, sourceURL string) (string, error) {
	return m.extractOne(ctx, sourceURL, m.hls, models.FormatHLS)
}

// Manifest dispatches to [ManifestService.DashURL] or [ManifestService.HLSURL].
func (m *ManifestService) Manifest(ctx context.Context, sourceURL string, format models.Format) (string, error) {
	switch format {
	case models.FormatDash:
		return m.DashURL(ctx, sourceURL)
	case models.FormatHLS:
		return m.HLSURL(ctx, sourceURL)
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// Manifests fetches sourceURL once and extracts both manifest URLs.
//
// It fails with [shared.ErrManifestNotFound] only when neither field is present.
func (m *ManifestService) Manifests(ctx context.Context, sourceURL string) (*models.Manifests, error) {
	body, err := m.fetch(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	result := &models.Manifests{}
	result.Dash, _ = m.dash.Extract(body)
	result.HLS, _ = m.hls.Extract(body)

	if result.Dash == "" && result.HLS == "" {
		return nil, fmt.Errorf("%w: no dash or hls field in %s", shared.ErrManifestNotFound, sourceURL)
	}

	return result, nil
}

func (m *ManifestService) extractOne(ctx context.Context, sourceURL string, e FieldExtractor, format models.Format) (string, error) {
	body, err := m.fetch(ctx, sourceURL)
	if err != nil {
		return "", err
	}

	value, ok := e.Extract(body)
	if !ok {
		return "", fmt.Errorf("%w: no %s field in %s", shared.ErrManifestNotFound, format, sourceURL)
	}

	return value, nil
}

// fetch performs the GET and returns the whole body as text.
func (m *ManifestService) fetch(ctx context.Context, sourceURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", shared.ErrFetchFailed, err)
	}

	req.Header.Set("User-Agent", m.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request failed: %v", shared.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d from %s", shared.ErrFetchFailed, resp.StatusCode, sourceURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", shared.ErrFetchFailed, err)
	}

	return string(body), nil
}
