package services

import (
	"github.com/lagape/traiteur/internal/models"
)

// ComputeTotals turns a set of line items plus the delivery option into the
// tax-split totals snapshot. Pure function: no I/O, no state, inputs are
// assumed normalized (a blank quantity is a zero, never an error).
//
// Two fixed VAT rates apply: food/beverage lines at 2.6%, delivery at 8.1%.
// Prices are VAT-inclusive (Swiss TTC), so HT amounts are derived as
// TTC / (1 + rate) and the VAT amounts by subtraction, which keeps
// HT + TVA == TTC exact even under floating-point rounding.
func ComputeTotals(lines []models.InvoiceLine, hasDelivery bool, deliveryTTC, deliveryCostHT float64) models.Totals {
	var t models.Totals

	for _, l := range lines {
		lineTTC := l.Quantity * l.PriceTTC
		t.FoodTTC += lineTTC
		t.TotalHT += lineTTC / models.VATFoodDivisor
		t.TotalCostHT += l.Quantity * l.CostHT
	}
	foodHT := t.TotalHT
	t.TVA26 = t.FoodTTC - foodHT

	if hasDelivery {
		// The delivery charge is a fixed TTC amount, not derived from
		// the lines. Its cost is tracked separately.
		t.DeliveryTTC = deliveryTTC
		deliveryHT := deliveryTTC / models.VATDeliveryDivisor
		t.TotalHT += deliveryHT
		t.TVA81 = deliveryTTC - deliveryHT
		t.TotalCostHT += deliveryCostHT
	}

	t.TotalTTC = t.FoodTTC + t.DeliveryTTC
	// Profit is measured against HT revenue; costs are HT by definition.
	t.NetProfit = t.TotalHT - t.TotalCostHT
	t.Bonus = t.NetProfit * models.BonusRate
	if t.Bonus < 0 {
		t.Bonus = 0
	}
	return t
}

// MarginPercent reports net profit over HT revenue as a percentage.
// ok is false when TotalHT is zero and the ratio is undefined.
func MarginPercent(t models.Totals) (pct float64, ok bool) {
	if t.TotalHT == 0 {
		return 0, false
	}
	return t.NetProfit / t.TotalHT * 100, true
}
