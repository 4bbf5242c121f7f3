package handlers

import (
	"net/http"

	"github.com/voguesoftware/projectdash/httpx"
	"github.com/voguesoftware/projectdash/internal/prefs"
)

type ThemeHandler struct {
	Prefs prefs.Store
}

func NewThemeHandler(store prefs.Store) *ThemeHandler {
	return &ThemeHandler{Prefs: store}
}

func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	theme, err := h.Prefs.GetTheme()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "prefs_unavailable", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"theme": theme})
}

func (h *ThemeHandler) Set(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Theme string `json:"theme"`
	}
	if err := httpx.ReadJSON(r, &body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	switch body.Theme {
	case prefs.ThemeLight, prefs.ThemeDark, prefs.ThemeSystem:
	default:
		httpx.JSONError(w, http.StatusBadRequest, "invalid_theme", nil)
		return
	}
	if err := h.Prefs.SetTheme(body.Theme); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "prefs_unavailable", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"theme": body.Theme})
}
