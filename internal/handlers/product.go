package handlers

import (
	"net/http"

	"github.com/lagape/traiteur/internal/httpx"
	"github.com/lagape/traiteur/internal/services"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{Catalog: catalog}
}

// List: GET /products?provider_id=&active=1
// The create form uses provider_id + active=1 to offer only the selected
// provider's active products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := services.ProductFilter{
		ProviderID: queryID(r, "provider_id"),
		ActiveOnly: r.URL.Query().Get("active") == "1",
	}
	products, err := h.Catalog.ListProducts(filter)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products, "total": len(products)})
}

// Create: POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProviderID uint    `json:"provider_id"`
		Name       string  `json:"name"`
		PriceTTC   float64 `json:"price_ttc"`
		CostHT     float64 `json:"cost_ht"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p, err := h.Catalog.AddProduct(services.ProductInput{
		ProviderID: req.ProviderID,
		Name:       req.Name,
		PriceTTC:   req.PriceTTC,
		CostHT:     req.CostHT,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Update: POST /products/update?id=...
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := queryID(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req struct {
		ProviderID *uint    `json:"provider_id"`
		Name       *string  `json:"name"`
		PriceTTC   *float64 `json:"price_ttc"`
		CostHT     *float64 `json:"cost_ht"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p, err := h.Catalog.UpdateProduct(id, services.ProductUpdate{
		ProviderID: req.ProviderID,
		Name:       req.Name,
		PriceTTC:   req.PriceTTC,
		CostHT:     req.CostHT,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// SetActive: POST /products/active?id=...
func (h *ProductHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id := queryID(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req struct {
		Active bool `json:"active"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p, err := h.Catalog.SetProductActive(id, req.Active)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Delete: POST /products/delete?id=... – idempotent
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := queryID(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_product", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
