package handler

import (
	"net/http"
	"strings"

	"github.com/hemolink/donation-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: auth}
}

// Login redirects the browser to the Google consent screen.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state, err := h.authService.GenerateState()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not start login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   300,
	})
	http.Redirect(w, r, h.authService.GetAuthURL(state), http.StatusFound)
}

type loginResponse struct {
	Token string `json:"token"`
}

// LoginCallback handles the provider redirect and returns the system JWT.
func (h *AuthHandler) LoginCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		writeError(w, http.StatusBadRequest, "invalid oauth state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	token, err := h.authService.Authenticate(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication failed")
		return
	}

	writeData(w, http.StatusOK, "Login successful", loginResponse{Token: token})
}

// Logout denylists the presented bearer token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		writeError(w, http.StatusBadRequest, "missing bearer token")
		return
	}

	if err := h.authService.Logout(r.Context(), parts[1]); err != nil {
		writeError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	writeData(w, http.StatusOK, "Logged out", nil)
}
