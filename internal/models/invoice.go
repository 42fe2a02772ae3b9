package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Swiss VAT, included in prices. Food and beverage lines carry 2.6%,
// delivery 8.1%. HT is always derived as TTC / (1 + rate).
const (
	VATFoodRate     = 0.026
	VATDeliveryRate = 0.081

	VATFoodDivisor     = 1 + VATFoodRate
	VATDeliveryDivisor = 1 + VATDeliveryRate
)

// BonusRate is the profit share paid out on a catering event (30% of net
// profit, floored at zero).
const BonusRate = 0.30

// Totals is the financial snapshot of one invoice. It is computed exactly
// once when the invoice is saved and embedded into the row; it is never
// recomputed from the lines afterwards, so later product price edits cannot
// silently reprice history.
type Totals struct {
	TotalTTC    float64 `json:"total_ttc"`
	TotalHT     float64 `json:"total_ht"`
	TotalCostHT float64 `json:"total_cost_ht"`
	NetProfit   float64 `json:"net_profit"`
	Bonus       float64 `json:"bonus"`
	TVA26       float64 `json:"tva26"`
	TVA81       float64 `json:"tva81"`
	FoodTTC     float64 `json:"food_ttc"`
	DeliveryTTC float64 `json:"delivery_ttc"`
}

// Add accumulates another snapshot field-wise. Used by the aggregation layer.
func (t *Totals) Add(o Totals) {
	t.TotalTTC += o.TotalTTC
	t.TotalHT += o.TotalHT
	t.TotalCostHT += o.TotalCostHT
	t.NetProfit += o.NetProfit
	t.Bonus += o.Bonus
	t.TVA26 += o.TVA26
	t.TVA81 += o.TVA81
	t.FoodTTC += o.FoodTTC
	t.DeliveryTTC += o.DeliveryTTC
}

// InvoiceLine is one purchased product line. ProductID is a plain reference,
// not a live association: unit price and cost are copied from the product at
// selection time and stay independently editable until save.
type InvoiceLine struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"index;not null" json:"invoice_id"`

	ProductID uint    `gorm:"index" json:"product_id"`
	Quantity  float64 `gorm:"type:decimal(10,3);not null" json:"quantity"`
	PriceTTC  float64 `gorm:"type:decimal(10,2);not null" json:"price_ttc"`
	CostHT    float64 `gorm:"type:decimal(10,2);not null" json:"cost_ht"`
}

// TotalTTC is the line's sale amount, VAT included.
func (l *InvoiceLine) TotalTTC() float64 { return l.Quantity * l.PriceTTC }

// TotalCostHT is the line's cost amount, VAT excluded.
func (l *InvoiceLine) TotalCostHT() float64 { return l.Quantity * l.CostHT }

// Invoice is the billable record of one catering event. Immutable once
// created: no update path exists, and the embedded Totals snapshot is the
// authoritative figure for every dashboard and export.
type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Number is the human-readable invoice number (LAG-YYYY-NNNN, one
	// counter per year). Reference is an opaque token handed to clients.
	Number    string `gorm:"size:50;uniqueIndex" json:"number"`
	Reference string `gorm:"size:100" json:"reference,omitempty"`

	EventDate  time.Time `gorm:"not null;index" json:"event_date"`
	ClientName string    `gorm:"size:255;not null" json:"client_name"`

	ClientAddress   string `gorm:"size:500" json:"client_address,omitempty"`
	DeliveryAddress string `gorm:"size:500" json:"delivery_address,omitempty"`
	Contact         string `gorm:"size:255" json:"contact,omitempty"`
	Note            string `gorm:"type:text" json:"note,omitempty"`

	ProviderID uint `gorm:"index;not null" json:"provider_id"`

	Lines []InvoiceLine `gorm:"foreignKey:InvoiceID" json:"lines,omitempty"`

	HasDelivery    bool    `gorm:"not null" json:"has_delivery"`
	DeliveryTTC    float64 `gorm:"not null" json:"delivery_ttc"`
	DeliveryCostHT float64 `gorm:"not null" json:"delivery_cost_ht"`

	Totals Totals `gorm:"embedded;embeddedPrefix:totals_" json:"totals"`
}

// GenerateInvoiceNumber issues the next number for the given year.
// Format: LAG-YYYY-NNNN, one monotonic counter per event-date year.
func GenerateInvoiceNumber(db *gorm.DB, year int) (string, error) {
	var count int64
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	err := db.Model(&Invoice{}).
		Where("event_date >= ? AND event_date < ?", start, end).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("LAG-%d-%04d", year, count+1), nil
}
