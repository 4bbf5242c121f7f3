package handlers

import (
	"net/http"
	"strconv"

	"github.com/voguesoftware/projectdash/httpx"
	"github.com/voguesoftware/projectdash/internal/api"
	"github.com/voguesoftware/projectdash/internal/config"
	"github.com/voguesoftware/projectdash/internal/invoice"
	"github.com/voguesoftware/projectdash/internal/models"
	"github.com/voguesoftware/projectdash/internal/pdf"
)

type InvoiceHandler struct {
	API     *api.Client
	Company config.CompanyDetails
	Bank    config.BankDetails
}

func NewInvoiceHandler(client *api.Client, company config.CompanyDetails, bank config.BankDetails) *InvoiceHandler {
	return &InvoiceHandler{API: client, Company: company, Bank: bank}
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.API.ListInvoices(r.Context())
	if err != nil {
		remoteFail(w, err, "failed_to_list_invoices", "Could not load invoices.")
		return
	}
	httpx.JSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	inv, err := h.API.GetInvoice(r.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		remoteFail(w, err, "failed_to_load_invoice", "Could not load invoice.")
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Create recomputes every derived field from the raw inputs, validates,
// and persists the client-computed values. The backend stores exactly
// what is sent; it does not recheck the math.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.decodeAndCompute(w, r)
	if !ok {
		return
	}
	created, err := h.API.CreateInvoice(r.Context(), inv)
	if err != nil {
		remoteFail(w, err, "failed_to_create_invoice", "Could not create invoice.")
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	inv, ok := h.decodeAndCompute(w, r)
	if !ok {
		return
	}
	updated, err := h.API.UpdateInvoice(r.Context(), id, inv)
	if err != nil {
		remoteFail(w, err, "failed_to_update_invoice", "Could not update invoice.")
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *InvoiceHandler) decodeAndCompute(w http.ResponseWriter, r *http.Request) (models.Invoice, bool) {
	var in models.Invoice
	if err := httpx.ReadJSON(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return models.Invoice{}, false
	}
	draft := invoice.FromInvoice(in)
	if err := draft.Validate(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"message": err.Error()})
		return models.Invoice{}, false
	}
	return draft.Invoice(), true
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := h.API.DeleteInvoice(r.Context(), id); err != nil {
		remoteFail(w, err, "failed_to_delete_invoice", "Could not delete invoice.")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// PDF resolves the organization and project names behind the invoice's
// ids, renders the document and streams it as a download named by the
// invoice number. A rendering failure reports an error; the invoice
// itself is untouched.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	inv, err := h.API.GetInvoice(r.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		remoteFail(w, err, "failed_to_load_invoice", "Could not load invoice.")
		return
	}
	org, err := h.API.GetOrganization(r.Context(), inv.OrganizationID)
	if err != nil {
		remoteFail(w, err, "failed_to_load_organization", "Could not load organization.")
		return
	}

	doc := pdf.Document{
		Invoice:             *inv,
		OrganizationName:    org.Name,
		OrganizationAddress: org.Address,
		ContactName:         "N/A",
		ContactRole:         "N/A",
		ProjectName:         "Unknown",
		Company:             h.Company,
		Bank:                h.Bank,
	}
	if len(org.ContactDetails) > 0 {
		doc.ContactName = org.ContactDetails[0].Name
		doc.ContactRole = org.ContactDetails[0].Role
	}
	for _, p := range org.Projects {
		if p.ID == inv.ProjectID {
			doc.ProjectName = p.Name
			break
		}
	}

	data, err := pdf.Render(doc)
	if err != nil {
		remoteFail(w, err, "pdf_generation_failed", "Failed to generate PDF. Please try again.")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename()+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, werr := w.Write(data); werr != nil {
		_ = werr
	}
}
