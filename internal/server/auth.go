package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlive/internal/models"
	"github.com/desertthunder/ytlive/internal/shared"
)

// AuthHandler serves the login form and the login and logout actions.
// Implements the [Handler] interface for registration with a [Router].
type AuthHandler struct {
	auth     models.Authenticator
	sessions *Sessions
	logger   *log.Logger
}

// NewAuthHandler creates a new [AuthHandler].
func NewAuthHandler(auth models.Authenticator, sessions *Sessions, logger *log.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *AuthHandler) Routes() []string {
	return []string{"GET /login", "POST /login", "POST /logout"}
}

// ServeHTTP dispatches on method and path.
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/logout":
		h.Logout(w, r)
	case r.Method == http.MethodPost:
		h.Login(w, r)
	default:
		h.Form(w, r)
	}
}

// Form renders the login page.
func (h *AuthHandler) Form(w http.ResponseWriter, r *http.Request) {
	if err := renderHTML(w, "login.html", nil); err != nil {
		h.logger.Error("failed to render login", "error", err)
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the submitted credentials (form or JSON) and authenticates the session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if isJSON(r) {
		if err := decodeJSON(r, &creds); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid form")
			return
		}
		creds.Username = r.PostForm.Get("username")
		creds.Password = r.PostForm.Get("password")
	}

	user, err := h.auth.Authenticate(r.Context(), creds.Username, creds.Password)
	if errors.Is(err, shared.ErrInvalidCredentials) {
		h.logger.Warn("login failed", "username", creds.Username)
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.sessions.Login(r.Context(), user.Username); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info("login succeeded", "username", user.Username)
	writeMessage(w, http.StatusOK, "Logged in successfully")
}

// Logout destroys the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v)
}
