package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlive/internal/models"
	"github.com/desertthunder/ytlive/internal/shared"
)

// App wires the stream registry, the manifest resolver and the login gate to HTTP routes.
type App struct {
	registry models.Registry
	resolver models.Resolver
	auth     models.Authenticator
	sessions *Sessions
	logger   *log.Logger
}

// AppOpts contains the dependencies of an [App].
//
// Leaving Auth nil disables the login gate: every route is open and /login is not served.
type AppOpts struct {
	Registry models.Registry
	Resolver models.Resolver
	Auth     models.Authenticator
	Sessions *Sessions
	Logger   *log.Logger
}

// NewApp creates an [App]. A nil Sessions gets in-memory defaults.
func NewApp(opts AppOpts) *App {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Sessions == nil {
		opts.Sessions = NewSessions(shared.AuthConfig{}, nil)
	}

	return &App{
		registry: opts.Registry,
		resolver: opts.Resolver,
		auth:     opts.Auth,
		sessions: opts.Sessions,
		logger:   opts.Logger,
	}
}

// AuthEnabled reports whether protected routes require a login.
func (a *App) AuthEnabled() bool {
	return a.auth != nil
}

// Routes builds the router serving every endpoint.
func (a *App) Routes() *BasicRouter {
	r := NewBasicRouter()
	r.Use(RequestLogger(a.logger), Recoverer(a.logger), a.sessions.Middleware())

	protected := func(h http.HandlerFunc) http.Handler {
		if !a.AuthEnabled() {
			return h
		}
		return Chain(h, a.sessions.RequireSession())
	}

	r.HandleFunc(http.MethodGet, "/{$}", a.Index)
	r.HandleFunc(http.MethodPost, "/add-url", a.AddURL)
	r.HandleFunc(http.MethodGet, "/stream/{id}/master.mpd", a.StreamDash)
	r.HandleFunc(http.MethodGet, "/stream/{id}/master.m3u8", a.StreamHLS)
	r.HandleFunc(http.MethodGet, "/hls/{file}", a.NamedHLS)
	r.HandleFunc(http.MethodGet, "/dash/{file}", a.NamedDash)
	r.Handle(http.MethodPost, "/fetch-urls", protected(a.FetchURLs))
	r.Handle(http.MethodGet, "/streams", protected(a.Streams))

	if a.AuthEnabled() {
		r.Handler(NewAuthHandler(a.auth, a.sessions, a.logger))
	}

	return r
}

// Index renders the add form and the registered streams.
//
// With the login gate on, anonymous visitors are sent to /login.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	username := a.sessions.Username(r.Context())
	if a.AuthEnabled() && username == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	entries, err := a.registry.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := renderHTML(w, "index.html", indexPage{Username: username, Streams: entries}); err != nil {
		a.logger.Error("failed to render index", "error", err)
	}
}

// AddURL registers the submitted form url and redirects back to the listing.
func (a *App) AddURL(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	entry := &models.StreamEntry{
		Name: strings.TrimSpace(r.PostForm.Get("name")),
		URL:  strings.TrimSpace(r.PostForm.Get("url")),
	}
	if err := entry.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if entry.Name == "" {
		entry.Name = DefaultName(entry.URL)
	}

	added, err := a.registry.Add(r.Context(), entry.Name, entry.URL)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	a.logger.Info("stream registered", "id", added.ID, "name", added.Name, "url", added.URL)
	http.Redirect(w, r, "/", http.StatusFound)
}

// StreamDash redirects to the DASH manifest of the stream at {id}.
func (a *App) StreamDash(w http.ResponseWriter, r *http.Request) {
	a.redirectByID(w, r, models.FormatDash)
}

// StreamHLS redirects to the HLS manifest of the stream at {id}.
func (a *App) StreamHLS(w http.ResponseWriter, r *http.Request) {
	a.redirectByID(w, r, models.FormatHLS)
}

// NamedHLS serves /hls/{name}.m3u8.
func (a *App) NamedHLS(w http.ResponseWriter, r *http.Request) {
	a.redirectByName(w, r, ".m3u8", models.FormatHLS)
}

// NamedDash serves /dash/{name}.mpd.
func (a *App) NamedDash(w http.ResponseWriter, r *http.Request) {
	a.redirectByName(w, r, ".mpd", models.FormatDash)
}

func (a *App) redirectByID(w http.ResponseWriter, r *http.Request, format models.Format) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	entry, err := a.registry.Get(r.Context(), id)
	if err != nil {
		a.lookupFailed(w, err)
		return
	}

	a.redirectToManifest(w, r, entry, format)
}

// parseID accepts canonical decimal ids only: "+1" and "01" name no entry.
func parseID(s string) (int64, error) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, strconv.ErrSyntax
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.ParseInt(s, 10, 64)
}

func (a *App) redirectByName(w http.ResponseWriter, r *http.Request, ext string, format models.Format) {
	name, ok := strings.CutSuffix(r.PathValue("file"), ext)
	if !ok || name == "" {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	entry, err := a.registry.GetByName(r.Context(), name)
	if err != nil {
		a.lookupFailed(w, err)
		return
	}

	a.redirectToManifest(w, r, entry, format)
}

func (a *App) lookupFailed(w http.ResponseWriter, err error) {
	if errors.Is(err, shared.ErrStreamNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// redirectToManifest resolves the entry's watch page synchronously and issues a 302.
// Fetch failures and missing fields both answer 500 with the same body.
func (a *App) redirectToManifest(w http.ResponseWriter, r *http.Request, entry *models.StreamEntry, format models.Format) {
	var (
		target string
		err    error
	)
	switch format {
	case models.FormatDash:
		target, err = a.resolver.DashURL(r.Context(), entry.URL)
	default:
		target, err = a.resolver.HLSURL(r.Context(), entry.URL)
	}

	if err != nil {
		a.logger.Warn("manifest extraction failed", "id", entry.ID, "format", format, "error", err)
		if format == models.FormatDash {
			http.Error(w, "Error fetching DASH URL", http.StatusInternalServerError)
		} else {
			http.Error(w, "Error fetching HLS URL", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, target, http.StatusFound)
}

type fetchRequest struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// FetchURLs extracts both manifests for the posted url, stores the entry and returns the pair.
func (a *App) FetchURLs(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	entry := &models.StreamEntry{Name: strings.TrimSpace(req.Name), URL: strings.TrimSpace(req.URL)}
	if err := entry.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if entry.Name == "" {
		entry.Name = DefaultName(entry.URL)
	}

	manifests, err := a.resolver.Manifests(r.Context(), entry.URL)
	if err != nil {
		a.logger.Warn("manifest extraction failed", "url", entry.URL, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch manifest URLs")
		return
	}

	if _, err := a.registry.Add(r.Context(), entry.Name, entry.URL); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, manifests)
}

// Streams returns every registered entry as JSON.
func (a *App) Streams(w http.ResponseWriter, r *http.Request) {
	entries, err := a.registry.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// DefaultName derives a lookup name for an entry registered without one:
// the watch page's v parameter when present, the url itself otherwise.
func DefaultName(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if v := u.Query().Get("v"); v != "" {
			return v
		}
	}
	return rawURL
}
