package handlers

import (
	"net/http"

	"github.com/lagape/traiteur/internal/httpx"
	"github.com/lagape/traiteur/internal/services"
)

type ProviderHandler struct {
	Catalog *services.CatalogService
}

func NewProviderHandler(catalog *services.CatalogService) *ProviderHandler {
	return &ProviderHandler{Catalog: catalog}
}

// List: GET /providers
func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	providers, err := h.Catalog.ListProviders()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_providers", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": providers, "total": len(providers)})
}

// Create: POST /providers – quick add, name only
func (h *ProviderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CompanyName string `json:"company_name"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p, err := h.Catalog.AddProvider(req.CompanyName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Get: GET /providers/get?id=...
func (h *ProviderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := queryID(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	p, err := h.Catalog.GetProvider(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Update: POST /providers/update?id=... – detail form, partial fields
func (h *ProviderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := queryID(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req struct {
		CompanyName   *string `json:"company_name"`
		LastName      *string `json:"last_name"`
		FirstName     *string `json:"first_name"`
		AddressStreet *string `json:"address_street"`
		AddressNumber *string `json:"address_number"`
		AddressNPA    *string `json:"address_npa"`
		AddressCity   *string `json:"address_city"`
		Phone         *string `json:"phone"`
		Email         *string `json:"email"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p, err := h.Catalog.UpdateProvider(id, services.ProviderUpdate{
		CompanyName:   req.CompanyName,
		LastName:      req.LastName,
		FirstName:     req.FirstName,
		AddressStreet: req.AddressStreet,
		AddressNumber: req.AddressNumber,
		AddressNPA:    req.AddressNPA,
		AddressCity:   req.AddressCity,
		Phone:         req.Phone,
		Email:         req.Email,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Delete: POST /providers/delete?id=... – idempotent
func (h *ProviderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := queryID(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Catalog.DeleteProvider(id); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_provider", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
