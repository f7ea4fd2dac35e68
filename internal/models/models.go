// package models defines the data model for the live stream redirector
package models

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// StreamEntry is a registered watch page.
//
// ID is the positional index in the memory registry and the autoincrement row id in SQLite.
type StreamEntry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks that the entry carries an absolute http(s) URL.
func (s *StreamEntry) Validate() error {
	if strings.TrimSpace(s.URL) == "" {
		return fmt.Errorf("url is required")
	}

	u, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url has no host")
	}

	return nil
}

// User is a login credential. PasswordHash holds a bcrypt hash, never the password.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Manifests holds the manifest URLs extracted from one watch page. Either may be empty.
type Manifests struct {
	Dash string `json:"dash"`
	HLS  string `json:"hls"`
}

// Format names a manifest flavour.
type Format string

const (
	FormatDash Format = "dash"
	FormatHLS  Format = "hls"
)

// ParseFormat maps "dash"/"mpd" and "hls"/"m3u8" to a [Format].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dash", "mpd":
		return FormatDash, nil
	case "hls", "m3u8":
		return FormatHLS, nil
	default:
		return "", fmt.Errorf("unknown manifest format %q", s)
	}
}

// Registry stores registered streams.
//
// Implementations return an error wrapping shared.ErrStreamNotFound on lookup misses.
type Registry interface {
	Add(ctx context.Context, name, url string) (*StreamEntry, error) // Add registers a watch page
	Get(ctx context.Context, id int64) (*StreamEntry, error)         // Get looks up an entry by index or row id
	GetByName(ctx context.Context, name string) (*StreamEntry, error) // GetByName returns the first entry with name
	List(ctx context.Context) ([]*StreamEntry, error)                 // List returns every entry in insertion order
}

// Resolver turns a watch page into manifest URLs.
type Resolver interface {
	DashURL(ctx context.Context, sourceURL string) (string, error)
	HLSURL(ctx context.Context, sourceURL string) (string, error)
	Manifests(ctx context.Context, sourceURL string) (*Manifests, error)
}

// Authenticator checks login credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*User, error)
}
