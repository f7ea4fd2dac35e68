package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/desertthunder/ytlive/internal/shared"
)

const sessionUserKey = "username"

// Sessions tracks logins in a server-side [scs.SessionManager].
//
// A session has two states: anonymous, and authenticated once [Sessions.Login] stored a username.
type Sessions struct {
	manager *scs.SessionManager
	store   *sqlite3store.SQLite3Store
}

// NewSessions creates the session manager.
//
// With a database the sessions table holds the data and survives restarts; without one sessions live in memory.
// Sessions expire after cfg.SessionLifetime (24h when zero).
func NewSessions(cfg shared.AuthConfig, db *sql.DB) *Sessions {
	manager := scs.New()
	if cfg.SessionLifetime > 0 {
		manager.Lifetime = cfg.SessionLifetime
	}
	if cfg.CookieName != "" {
		manager.Cookie.Name = cfg.CookieName
	}
	manager.Cookie.HttpOnly = true
	manager.Cookie.SameSite = http.SameSiteLaxMode
	manager.Cookie.Secure = cfg.SecureCookie

	s := &Sessions{manager: manager}
	if db != nil {
		s.store = sqlite3store.NewWithCleanupInterval(db, 30*time.Minute)
		manager.Store = s.store
	}

	return s
}

// Middleware loads the session before the handler runs and saves it afterwards.
func (s *Sessions) Middleware() Middleware {
	return s.manager.LoadAndSave
}

// Login renews the session token and marks the session authenticated.
func (s *Sessions) Login(ctx context.Context, username string) error {
	if err := s.manager.RenewToken(ctx); err != nil {
		return err
	}
	s.manager.Put(ctx, sessionUserKey, username)
	return nil
}

// Logout destroys the session.
func (s *Sessions) Logout(ctx context.Context) error {
	return s.manager.Destroy(ctx)
}

// Username returns the authenticated username, or "" for an anonymous session.
func (s *Sessions) Username(ctx context.Context) string {
	return s.manager.GetString(ctx, sessionUserKey)
}

// Authenticated reports whether the session holds a username.
func (s *Sessions) Authenticated(ctx context.Context) bool {
	return s.Username(ctx) != ""
}

// Close stops the background cleanup of expired sessions.
func (s *Sessions) Close() {
	if s.store != nil {
		s.store.StopCleanup()
	}
}

// RequireSession rejects requests without an authenticated session with 403.
func (s *Sessions) RequireSession() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.Authenticated(r.Context()) {
				writeError(w, http.StatusForbidden, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
