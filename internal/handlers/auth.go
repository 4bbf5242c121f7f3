package handlers

import (
	"log"
	"net/http"

	"github.com/voguesoftware/projectdash/auth"
	"github.com/voguesoftware/projectdash/httpx"
	"github.com/voguesoftware/projectdash/internal/api"
	"github.com/voguesoftware/projectdash/internal/prefs"
	"github.com/voguesoftware/projectdash/validation"
)

type AuthHandler struct {
	API   *api.Client
	Prefs prefs.Store
}

func NewAuthHandler(client *api.Client, store prefs.Store) *AuthHandler {
	return &AuthHandler{API: client, Prefs: store}
}

// Login delegates to the backend, then persists the token and user
// snapshot locally and opens a shell session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds api.Credentials
	if err := httpx.ReadJSON(r, &creds); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("email", creds.Email, v)
	validation.Required("password", creds.Password, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	res, err := h.API.Login(r.Context(), creds)
	if err != nil {
		remoteFail(w, err, "login_failed", "Login failed.")
		return
	}
	if err := h.Prefs.SetToken(res.Token); err != nil {
		log.Printf("persist token: %v", err)
	}
	if err := h.Prefs.SetUser(res.User); err != nil {
		log.Printf("persist user: %v", err)
	}
	auth.CreateSession(w, res.User.Email)
	httpx.JSON(w, http.StatusOK, res.User)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var s api.Signup
	if err := httpx.ReadJSON(r, &s); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("firstName", s.FirstName, v)
	validation.Required("lastName", s.LastName, v)
	validation.Required("email", s.Email, v)
	validation.Required("password", s.Password, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	user, err := h.API.Register(r.Context(), s)
	if err != nil {
		remoteFail(w, err, "signup_failed", "Signup failed.")
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

// Logout tears down the session and clears token + user from the store.
// Theme and favorites stay.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Prefs.Clear(); err != nil {
		log.Printf("clear prefs: %v", err)
	}
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Profile returns the locally stored user snapshot.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.Prefs.GetUser()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "prefs_unavailable", nil)
		return
	}
	if user == nil {
		httpx.JSONError(w, http.StatusNotFound, "no_user", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
