package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/lagape/traiteur/internal/httpx"
	"github.com/lagape/traiteur/internal/models"
	"github.com/lagape/traiteur/internal/services"
)

type StatsHandler struct {
	Stats   *services.StatsService
	Catalog *services.CatalogService
}

func NewStatsHandler(stats *services.StatsService, catalog *services.CatalogService) *StatsHandler {
	return &StatsHandler{Stats: stats, Catalog: catalog}
}

// invoiceRow is one dashboard listing line with the provider name resolved.
type invoiceRow struct {
	models.Invoice
	ProviderName string `json:"provider_name"`
}

func (h *StatsHandler) rows(invoices []models.Invoice) []invoiceRow {
	providers, err := h.Catalog.ListProviders()
	byID := map[uint]string{}
	if err == nil {
		for _, p := range providers {
			byID[p.ID] = p.CompanyName
		}
	}
	rows := make([]invoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		name, ok := byID[inv.ProviderID]
		if !ok {
			// dangling provider reference (deleted provider)
			name = "Inconnu"
		}
		rows = append(rows, invoiceRow{Invoice: inv, ProviderName: name})
	}
	return rows
}

// Month: GET /stats/month?year=&month= – defaults to the current month.
func (h *StatsHandler) Month(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := queryInt(r, "year", now.Year())
	month := time.Month(queryInt(r, "month", int(now.Month())))
	if month < time.January || month > time.December {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_month", nil)
		return
	}

	stats, invoices, err := h.Stats.Month(year, month)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_aggregate", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"year":     year,
		"month":    int(month),
		"stats":    stats,
		"invoices": h.rows(invoices),
	})
}

// Year: GET /stats/year?year=&month=&provider_id=&client=
// Free filters narrow the year window; any filter left unset matches all.
func (h *StatsHandler) Year(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", time.Now().Year())
	filter := services.Filter{
		Month:          time.Month(queryInt(r, "month", 0)),
		ProviderID:     queryID(r, "provider_id"),
		ClientContains: r.URL.Query().Get("client"),
	}
	if filter.Month < 0 || filter.Month > time.December {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_month", nil)
		return
	}

	stats, invoices, err := h.Stats.Year(year, filter)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_aggregate", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"year":     year,
		"stats":    stats,
		"invoices": h.rows(invoices),
	})
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
