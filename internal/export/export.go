// Package export turns a persisted invoice into render-ready rows for the
// document layer. Product names are resolved through an id lookup built from
// the catalog; a deleted product degrades to a sentinel name instead of
// failing the export.
package export

import (
	"fmt"
	"strings"

	"github.com/lagape/traiteur/internal/models"
)

// Kind selects which money column the rows expose. The client-facing rows
// must never leak cost data.
type Kind int

const (
	// KindClient uses the TTC sale price (facture).
	KindClient Kind = iota
	// KindCost uses the HT cost (fiche de coûts, internal only).
	KindCost
)

// UnknownProduct is the fallback name for a dangling product reference.
const UnknownProduct = "Produit inconnu"

// Row is one printable line: resolved name, quantity, the unit amount for
// the chosen kind and the line total.
type Row struct {
	Name      string
	Quantity  float64
	UnitPrice float64
	LineTotal float64
}

// Rows maps each invoice line to a row and appends the synthetic delivery
// row when the invoice carries one. No side effects; rendering is the
// caller's job.
func Rows(inv models.Invoice, products []models.Product, kind Kind) []Row {
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	rows := make([]Row, 0, len(inv.Lines)+1)
	for _, l := range inv.Lines {
		name := UnknownProduct
		if p, ok := byID[l.ProductID]; ok {
			name = p.Name
		}
		unit := l.PriceTTC
		if kind == KindCost {
			unit = l.CostHT
		}
		rows = append(rows, Row{
			Name:      name,
			Quantity:  l.Quantity,
			UnitPrice: unit,
			LineTotal: l.Quantity * unit,
		})
	}

	if inv.HasDelivery {
		switch kind {
		case KindCost:
			rows = append(rows, Row{
				Name:      "Coût Livraison (Prestataire)",
				Quantity:  1,
				UnitPrice: inv.DeliveryCostHT,
				LineTotal: inv.DeliveryCostHT,
			})
		default:
			rows = append(rows, Row{
				Name:      "Livraison",
				Quantity:  1,
				UnitPrice: inv.DeliveryTTC,
				LineTotal: inv.DeliveryTTC,
			})
		}
	}
	return rows
}

// FormatCHF renders an amount for external output: two decimals, explicit
// currency tag.
func FormatCHF(v float64) string {
	return fmt.Sprintf("%.2f CHF", v)
}

// Filename builds the document filename keyed by client name and event
// date, e.g. Facture_Banque_Pictet_2025-06-14.pdf.
func Filename(prefix string, inv models.Invoice) string {
	client := strings.Join(strings.Fields(inv.ClientName), "_")
	if client == "" {
		client = "client"
	}
	return fmt.Sprintf("%s_%s_%s.pdf", prefix, client, inv.EventDate.Format("2006-01-02"))
}
