package handlers

import (
	"net/http"

	"github.com/voguesoftware/projectdash/httpx"
	"github.com/voguesoftware/projectdash/internal/api"
	"github.com/voguesoftware/projectdash/internal/models"
	"github.com/voguesoftware/projectdash/internal/prefs"
)

type ResourceHandler struct {
	API   *api.Client
	Prefs prefs.Store
}

func NewResourceHandler(client *api.Client, store prefs.Store) *ResourceHandler {
	return &ResourceHandler{API: client, Prefs: store}
}

type resourceView struct {
	models.Resource
	Favorite bool `json:"favorite"`
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	resources, err := h.API.ListResources(r.Context())
	if err != nil {
		remoteFail(w, err, "failed_to_list_resources", "Could not load resources.")
		return
	}
	favs, _ := h.Prefs.GetFavorites(prefs.FavoriteResources)
	views := make([]resourceView, 0, len(resources))
	for _, res := range resources {
		views = append(views, resourceView{Resource: res, Favorite: contains(favs, res.ID)})
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	res, err := h.API.GetResource(r.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		remoteFail(w, err, "failed_to_load_resource", "Could not load resource.")
		return
	}
	favs, _ := h.Prefs.GetFavorites(prefs.FavoriteResources)
	httpx.JSON(w, http.StatusOK, resourceView{Resource: *res, Favorite: contains(favs, res.ID)})
}

func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_multipart", nil)
		return
	}
	name := r.FormValue("name")
	if name == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required"})
		return
	}
	files, closeAll, err := formFiles(r, "files")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_files", nil)
		return
	}
	defer closeAll()
	created, err := h.API.CreateResource(r.Context(), name, files)
	if err != nil {
		remoteFail(w, err, "failed_to_create_resource", "Could not create resource.")
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := h.API.DeleteResource(r.Context(), id); err != nil {
		remoteFail(w, err, "failed_to_delete_resource", "Could not delete resource.")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ResourceHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	ids, err := h.Prefs.ToggleFavorite(prefs.FavoriteResources, id)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "prefs_unavailable", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"favoriteResources": ids})
}
