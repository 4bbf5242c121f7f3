package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/voguesoftware/projectdash/httpx"
	"github.com/voguesoftware/projectdash/internal/api"
	"github.com/voguesoftware/projectdash/internal/models"
	"github.com/voguesoftware/projectdash/internal/prefs"
)

type ProjectHandler struct {
	API   *api.Client
	Prefs prefs.Store
}

func NewProjectHandler(client *api.Client, store prefs.Store) *ProjectHandler {
	return &ProjectHandler{API: client, Prefs: store}
}

// projectView overlays local-only state onto the remote record.
type projectView struct {
	models.Project
	Favorite bool `json:"favorite"`
	Progress int  `json:"progress"`
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.API.ListProjects(r.Context())
	if err != nil {
		remoteFail(w, err, "failed_to_list_projects", "Could not load projects.")
		return
	}
	favs, _ := h.Prefs.GetFavorites(prefs.FavoriteProjects)
	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, projectView{Project: p, Favorite: contains(favs, p.ID), Progress: p.Progress()})
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	p, err := h.API.GetProject(r.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		remoteFail(w, err, "failed_to_load_project", "Could not load project.")
		return
	}
	favs, _ := h.Prefs.GetFavorites(prefs.FavoriteProjects)
	httpx.JSON(w, http.StatusOK, projectView{Project: *p, Favorite: contains(favs, p.ID), Progress: p.Progress()})
}

// Create accepts the same multipart shape the backend expects — a
// JSON-encoded projectData field plus raw file parts — and forwards it.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_multipart", nil)
		return
	}
	var p models.Project
	if err := json.Unmarshal([]byte(r.FormValue("projectData")), &p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_project_data", nil)
		return
	}
	if p.Name == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required"})
		return
	}
	files, closeAll, err := formFiles(r, "files")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_files", nil)
		return
	}
	defer closeAll()
	created, err := h.API.CreateProject(r.Context(), p, files)
	if err != nil {
		remoteFail(w, err, "failed_to_create_project", "Could not create project.")
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var p models.Project
	if err := httpx.ReadJSON(r, &p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	updated, err := h.API.UpdateProject(r.Context(), id, p)
	if err != nil {
		remoteFail(w, err, "failed_to_update_project", "Could not update project.")
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := h.API.DeleteProject(r.Context(), id); err != nil {
		remoteFail(w, err, "failed_to_delete_project", "Could not delete project.")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ToggleFavorite flips the local favorite mark and returns the updated
// id set. No network call: favorites are device-local only.
func (h *ProjectHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	ids, err := h.Prefs.ToggleFavorite(prefs.FavoriteProjects, id)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "prefs_unavailable", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"favoriteProjects": ids})
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
