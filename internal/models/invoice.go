package models

import "time"

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "Draft"
	InvoiceSent      InvoiceStatus = "Sent"
	InvoicePaid      InvoiceStatus = "Paid"
	InvoiceOverdue   InvoiceStatus = "Overdue"
	InvoiceCancelled InvoiceStatus = "Cancelled"
)

// Invoice mirrors the backend representation. The derived fields
// SubTotal/TaxAmount/Total are computed client-side by the invoice
// package and persisted as-is; the backend stores what it was given.
type Invoice struct {
	ID             string        `json:"_id,omitempty"`
	OrganizationID string        `json:"organizationId"`
	ProjectID      string        `json:"projectId"`
	InvoiceNo      string        `json:"invoiceNo"`
	PONo           string        `json:"poNo"`
	InvoiceDate    time.Time     `json:"invoiceDate"`
	DueDate        time.Time     `json:"dueDate"`
	Status         InvoiceStatus `json:"status"`
	LineItems      []LineItem    `json:"lineItems"`
	Currency       string        `json:"currency"`
	TaxRate        float64       `json:"taxRate"`
	Discount       float64       `json:"discount"`
	Terms          string        `json:"terms"`
	Notes          string        `json:"notes"`
	SubTotal       float64       `json:"subTotal"`
	TaxAmount      float64       `json:"taxAmount"`
	Total          float64       `json:"total"`
}

type LineItem struct {
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unitPrice"`
	Qty         float64 `json:"qty"`
	LineTotal   float64 `json:"lineTotal"`
}
