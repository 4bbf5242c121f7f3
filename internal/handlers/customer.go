package handlers

import (
	"net/http"

	"github.com/voguesoftware/projectdash/httpx"
	"github.com/voguesoftware/projectdash/internal/api"
	"github.com/voguesoftware/projectdash/internal/models"
	"github.com/voguesoftware/projectdash/validation"
)

type CustomerHandler struct {
	API *api.Client
}

func NewCustomerHandler(client *api.Client) *CustomerHandler {
	return &CustomerHandler{API: client}
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.API.ListCustomers(r.Context())
	if err != nil {
		remoteFail(w, err, "failed_to_list_customers", "Could not load customers.")
		return
	}
	httpx.JSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	c, err := h.API.GetCustomer(r.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		remoteFail(w, err, "failed_to_load_customer", "Could not load customer.")
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Customer
	if err := httpx.ReadJSON(r, &c); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", c.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	created, err := h.API.CreateCustomer(r.Context(), c)
	if err != nil {
		remoteFail(w, err, "failed_to_create_customer", "Could not create customer.")
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var c models.Customer
	if err := httpx.ReadJSON(r, &c); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	updated, err := h.API.UpdateCustomer(r.Context(), id, c)
	if err != nil {
		remoteFail(w, err, "failed_to_update_customer", "Could not update customer.")
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := h.API.DeleteCustomer(r.Context(), id); err != nil {
		remoteFail(w, err, "failed_to_delete_customer", "Could not delete customer.")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
