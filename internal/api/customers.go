package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/voguesoftware/projectdash/internal/models"
)

func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	if err := c.doJSON(ctx, http.MethodGet, "/api/customers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var out models.Customer
	if err := c.doJSON(ctx, http.MethodGet, "/api/customers/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCustomer(ctx context.Context, cu models.Customer) (*models.Customer, error) {
	var out models.Customer
	if err := c.doJSON(ctx, http.MethodPost, "/api/customers", cu, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, cu models.Customer) (*models.Customer, error) {
	var out models.Customer
	if err := c.doJSON(ctx, http.MethodPut, "/api/customers/"+url.PathEscape(id), cu, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/customers/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListResources(ctx context.Context) ([]models.Resource, error) {
	var out []models.Resource
	if err := c.doJSON(ctx, http.MethodGet, "/api/resources", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetResource(ctx context.Context, id string) (*models.Resource, error) {
	var out models.Resource
	if err := c.doJSON(ctx, http.MethodGet, "/api/resources/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateResource uploads the resource name with its raw file parts.
func (c *Client) CreateResource(ctx context.Context, name string, files []FilePart) (*models.Resource, error) {
	var out models.Resource
	if err := c.postMultipart(ctx, "/api/resources", map[string]string{"name": name}, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteResource(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/resources/"+url.PathEscape(id), nil, nil)
}
