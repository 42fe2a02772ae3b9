package models

import "time"

// Product is a catalog item (dish or beverage), optionally attached to a
// provider. Prices are absolute CHF amounts per unit: PriceTTC is the sale
// price including VAT, CostHT the purchase cost excluding VAT.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProviderID uint   `gorm:"index" json:"provider_id,omitempty"`
	Name       string `gorm:"size:255;not null" json:"name"`

	PriceTTC float64 `gorm:"not null" json:"price_ttc"`
	CostHT   float64 `gorm:"not null" json:"cost_ht"`

	// Inactive products are hidden from new-invoice selection but stay
	// resolvable for historical invoices.
	Active bool `gorm:"not null;default:true" json:"active"`
}

// UnitMargin is the per-unit spread between HT sale price and HT cost.
func (p *Product) UnitMargin() float64 {
	return p.PriceTTC/VATFoodDivisor - p.CostHT
}
