package handlers

import (
	"net/http"
	"time"

	"github.com/lagape/traiteur/internal/config"
	"github.com/lagape/traiteur/internal/export"
	"github.com/lagape/traiteur/internal/httpx"
	"github.com/lagape/traiteur/internal/models"
	"github.com/lagape/traiteur/internal/pdf"
	"github.com/lagape/traiteur/internal/services"
)

type InvoiceHandler struct {
	Invoices *services.InvoiceService
	Catalog  *services.CatalogService
	Cfg      config.Config
}

func NewInvoiceHandler(invoices *services.InvoiceService, catalog *services.CatalogService, cfg config.Config) *InvoiceHandler {
	return &InvoiceHandler{Invoices: invoices, Catalog: catalog, Cfg: cfg}
}

type lineReq struct {
	ProductID uint     `json:"product_id"`
	Quantity  float64  `json:"quantity"`
	PriceTTC  *float64 `json:"price_ttc"`
	CostHT    *float64 `json:"cost_ht"`
}

type createInvoiceReq struct {
	EventDate       string    `json:"event_date"` // YYYY-MM-DD
	ClientName      string    `json:"client_name"`
	ClientAddress   string    `json:"client_address"`
	DeliveryAddress string    `json:"delivery_address"`
	Contact         string    `json:"contact"`
	Note            string    `json:"note"`
	ProviderID      uint      `json:"provider_id"`
	Lines           []lineReq `json:"lines"`

	HasDelivery    bool     `json:"has_delivery"`
	DeliveryTTC    *float64 `json:"delivery_ttc"`
	DeliveryCostHT *float64 `json:"delivery_cost_ht"`
}

// Create: POST /invoices
// Line prices left null are copied from the referenced product, matching the
// selection-time copy the create form performs. Explicit values win: lines
// are values, not live references.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	var eventDate time.Time
	if req.EventDate != "" {
		d, err := time.Parse("2006-01-02", req.EventDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_event_date", nil)
			return
		}
		eventDate = d
	}

	lines := make([]models.InvoiceLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		line := models.InvoiceLine{ProductID: l.ProductID, Quantity: l.Quantity}
		if l.PriceTTC != nil {
			line.PriceTTC = *l.PriceTTC
		}
		if l.CostHT != nil {
			line.CostHT = *l.CostHT
		}
		if (l.PriceTTC == nil || l.CostHT == nil) && l.ProductID != 0 {
			p, err := h.Catalog.GetProduct(l.ProductID)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			if l.PriceTTC == nil {
				line.PriceTTC = p.PriceTTC
			}
			if l.CostHT == nil {
				line.CostHT = p.CostHT
			}
		}
		lines = append(lines, line)
	}

	draft := services.InvoiceDraft{
		EventDate:       eventDate,
		ClientName:      req.ClientName,
		ClientAddress:   req.ClientAddress,
		DeliveryAddress: req.DeliveryAddress,
		Contact:         req.Contact,
		Note:            req.Note,
		ProviderID:      req.ProviderID,
		Lines:           lines,
		HasDelivery:     req.HasDelivery,
	}
	if req.HasDelivery {
		draft.DeliveryTTC = h.Cfg.DeliveryPriceTTC
		draft.DeliveryCostHT = h.Cfg.DeliveryCostHT
		if req.DeliveryTTC != nil {
			draft.DeliveryTTC = *req.DeliveryTTC
		}
		if req.DeliveryCostHT != nil {
			draft.DeliveryCostHT = *req.DeliveryCostHT
		}
	}

	inv, err := h.Invoices.Create(draft)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

// Preview: POST /invoices/preview – live totals for a draft, nothing saved.
func (h *InvoiceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	lines := make([]models.InvoiceLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		line := models.InvoiceLine{ProductID: l.ProductID, Quantity: l.Quantity}
		if l.PriceTTC != nil {
			line.PriceTTC = *l.PriceTTC
		}
		if l.CostHT != nil {
			line.CostHT = *l.CostHT
		}
		lines = append(lines, line)
	}
	deliveryTTC := h.Cfg.DeliveryPriceTTC
	deliveryCostHT := h.Cfg.DeliveryCostHT
	if req.DeliveryTTC != nil {
		deliveryTTC = *req.DeliveryTTC
	}
	if req.DeliveryCostHT != nil {
		deliveryCostHT = *req.DeliveryCostHT
	}
	totals := services.ComputeTotals(lines, req.HasDelivery, deliveryTTC, deliveryCostHT)
	httpx.JSON(w, http.StatusOK, totals)
}

// List: GET /invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Invoices.List()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invoices, "total": len(invoices)})
}

// Get: GET /invoices/get?id=...
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := queryID(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	inv, err := h.Invoices.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// PDF: GET /invoices/pdf?id=...&kind=facture|couts
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id := queryID(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	inv, err := h.Invoices.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	products, err := h.Catalog.ListProducts(services.ProductFilter{})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}

	var body []byte
	var filename string
	if r.URL.Query().Get("kind") == "couts" {
		body, err = pdf.CostSheet(inv, products)
		filename = export.Filename("Couts", inv)
	} else {
		body, err = pdf.Invoice(inv, products)
		filename = export.Filename("Facture", inv)
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_render_pdf", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(body)
}
