package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/voguesoftware/projectdash/internal/models"
)

func (c *Client) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	var out []models.Invoice
	if err := c.doJSON(ctx, http.MethodGet, "/api/invoices", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	var out models.Invoice
	if err := c.doJSON(ctx, http.MethodGet, "/api/invoices/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateInvoice(ctx context.Context, inv models.Invoice) (*models.Invoice, error) {
	var out models.Invoice
	if err := c.doJSON(ctx, http.MethodPost, "/api/invoices", inv, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateInvoice(ctx context.Context, id string, inv models.Invoice) (*models.Invoice, error) {
	var out models.Invoice
	if err := c.doJSON(ctx, http.MethodPut, "/api/invoices/"+url.PathEscape(id), inv, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteInvoice(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/invoices/"+url.PathEscape(id), nil, nil)
}
