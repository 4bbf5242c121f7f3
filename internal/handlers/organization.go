package handlers

import (
	"net/http"

	"github.com/voguesoftware/projectdash/httpx"
	"github.com/voguesoftware/projectdash/internal/api"
	"github.com/voguesoftware/projectdash/internal/models"
)

type OrganizationHandler struct {
	API *api.Client
}

func NewOrganizationHandler(client *api.Client) *OrganizationHandler {
	return &OrganizationHandler{API: client}
}

func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.API.ListOrganizations(r.Context())
	if err != nil {
		remoteFail(w, err, "failed_to_list_organizations", "Could not load organizations.")
		return
	}
	httpx.JSON(w, http.StatusOK, orgs)
}

func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	org, err := h.API.GetOrganization(r.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		remoteFail(w, err, "failed_to_load_organization", "Could not load organization.")
		return
	}
	httpx.JSON(w, http.StatusOK, org)
}

// Create validates the contact-list invariant locally; an invalid
// organization never reaches the network.
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var org models.Organization
	if err := httpx.ReadJSON(r, &org); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := org.Validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"message": v.Summary()})
		return
	}
	created, err := h.API.CreateOrganization(r.Context(), org)
	if err != nil {
		remoteFail(w, err, "failed_to_create_organization", "Could not create organization.")
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var org models.Organization
	if err := httpx.ReadJSON(r, &org); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := org.Validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"message": v.Summary()})
		return
	}
	updated, err := h.API.UpdateOrganization(r.Context(), id, org)
	if err != nil {
		remoteFail(w, err, "failed_to_update_organization", "Could not update organization.")
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := h.API.DeleteOrganization(r.Context(), id); err != nil {
		remoteFail(w, err, "failed_to_delete_organization", "Could not delete organization.")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AddProject appends an embedded project to an organization. Embedded
// projects are their own sub-model, not the top-level Project entity.
func (h *OrganizationHandler) AddProject(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireID(w, r)
	if !ok {
		return
	}
	var p models.OrgProject
	if err := httpx.ReadJSON(r, &p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if p.Name == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required"})
		return
	}
	org, err := h.API.AddOrganizationProject(r.Context(), orgID, p)
	if err != nil {
		remoteFail(w, err, "failed_to_add_project", "Could not add project.")
		return
	}
	httpx.JSON(w, http.StatusCreated, org)
}

func (h *OrganizationHandler) RemoveProject(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireID(w, r)
	if !ok {
		return
	}
	projectID := r.URL.Query().Get("projectId")
	if projectID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_project_id", nil)
		return
	}
	if err := h.API.DeleteOrganizationProject(r.Context(), orgID, projectID); err != nil {
		remoteFail(w, err, "failed_to_remove_project", "Could not remove project.")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UploadDocuments forwards document files for an embedded project:
// a documentType field plus raw file parts.
func (h *OrganizationHandler) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireID(w, r)
	if !ok {
		return
	}
	projectID := r.URL.Query().Get("projectId")
	if projectID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_project_id", nil)
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_multipart", nil)
		return
	}
	docType := r.FormValue("documentType")
	if docType == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"documentType": "required"})
		return
	}
	files, closeAll, err := formFiles(r, "files")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_files", nil)
		return
	}
	defer closeAll()
	if len(files) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"files": "required"})
		return
	}
	org, err := h.API.UploadOrganizationProjectDocuments(r.Context(), orgID, projectID, docType, files)
	if err != nil {
		remoteFail(w, err, "failed_to_upload_documents", "Could not upload documents.")
		return
	}
	httpx.JSON(w, http.StatusOK, org)
}
