package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/voguesoftware/projectdash/internal/models"
)

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var out models.Project
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProject sends the project as a JSON-encoded "projectData" field
// with optional raw file parts alongside, the backend's multipart contract.
func (c *Client) CreateProject(ctx context.Context, p models.Project, files []FilePart) (*models.Project, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var out models.Project
	if err := c.postMultipart(ctx, "/api/projects", map[string]string{"projectData": string(data)}, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, p models.Project) (*models.Project, error) {
	var out models.Project
	if err := c.doJSON(ctx, http.MethodPut, "/api/projects/"+url.PathEscape(id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, nil)
}
