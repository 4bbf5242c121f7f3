package handlers

import (
	"net/http"

	"github.com/voguesoftware/projectdash/httpx"
	"github.com/voguesoftware/projectdash/internal/api"
	"github.com/voguesoftware/projectdash/internal/prefs"
)

type DashboardHandler struct {
	API   *api.Client
	Prefs prefs.Store
}

func NewDashboardHandler(client *api.Client, store prefs.Store) *DashboardHandler {
	return &DashboardHandler{API: client, Prefs: store}
}

// Overview resolves the locally favorited project ids against the full
// project collection. No favorites means no network call at all; ids
// with no matching project are silently skipped (they were deleted on
// the backend but linger in the local store).
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	favs, err := h.Prefs.GetFavorites(prefs.FavoriteProjects)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "prefs_unavailable", nil)
		return
	}
	if len(favs) == 0 {
		httpx.JSON(w, http.StatusOK, map[string]any{"favoriteProjects": []projectView{}})
		return
	}
	projects, err := h.API.ListProjects(r.Context())
	if err != nil {
		remoteFail(w, err, "failed_to_load_dashboard", "Could not load favorite projects.")
		return
	}
	views := make([]projectView, 0, len(favs))
	for _, p := range projects {
		if contains(favs, p.ID) {
			views = append(views, projectView{Project: p, Favorite: true, Progress: p.Progress()})
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"favoriteProjects": views})
}
