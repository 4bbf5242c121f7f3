package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/voguesoftware/projectdash/internal/models"
)

func (c *Client) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	var out []models.Organization
	if err := c.doJSON(ctx, http.MethodGet, "/api/organizations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetOrganization(ctx context.Context, id string) (*models.Organization, error) {
	var out models.Organization
	if err := c.doJSON(ctx, http.MethodGet, "/api/organizations/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateOrganization(ctx context.Context, o models.Organization) (*models.Organization, error) {
	var out models.Organization
	if err := c.doJSON(ctx, http.MethodPost, "/api/organizations", o, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrganization(ctx context.Context, id string, o models.Organization) (*models.Organization, error) {
	var out models.Organization
	if err := c.doJSON(ctx, http.MethodPut, "/api/organizations/"+url.PathEscape(id), o, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOrganization(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/organizations/"+url.PathEscape(id), nil, nil)
}

// AddOrganizationProject appends an embedded project to the organization.
func (c *Client) AddOrganizationProject(ctx context.Context, orgID string, p models.OrgProject) (*models.Organization, error) {
	var out models.Organization
	path := "/api/organizations/" + url.PathEscape(orgID) + "/projects"
	if err := c.doJSON(ctx, http.MethodPost, path, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOrganizationProject(ctx context.Context, orgID, projectID string) error {
	path := "/api/organizations/" + url.PathEscape(orgID) + "/projects/" + url.PathEscape(projectID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// UploadOrganizationProjectDocuments attaches files of one documentType to
// an embedded project.
func (c *Client) UploadOrganizationProjectDocuments(ctx context.Context, orgID, projectID, documentType string, files []FilePart) (*models.Organization, error) {
	var out models.Organization
	path := "/api/organizations/" + url.PathEscape(orgID) + "/projects/" + url.PathEscape(projectID) + "/documents"
	if err := c.postMultipart(ctx, path, map[string]string{"documentType": documentType}, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
