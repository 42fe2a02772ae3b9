package services

import (
	"math"
	"testing"

	"github.com/lagape/traiteur/internal/models"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestComputeTotals_SingleLineNoDelivery(t *testing.T) {
	lines := []models.InvoiceLine{
		{Quantity: 2, PriceTTC: 10.00, CostHT: 4.00},
	}
	got := ComputeTotals(lines, false, 0, 0)

	if !approx(got.FoodTTC, 20.00) {
		t.Errorf("FoodTTC = %f, want 20.00", got.FoodTTC)
	}
	wantHT := 20.0 / 1.026
	if !approx(got.TotalHT, wantHT) {
		t.Errorf("TotalHT = %f, want %f", got.TotalHT, wantHT)
	}
	if !approx(got.TotalCostHT, 8.00) {
		t.Errorf("TotalCostHT = %f, want 8.00", got.TotalCostHT)
	}
	if !approx(got.NetProfit, wantHT-8.00) {
		t.Errorf("NetProfit = %f, want %f", got.NetProfit, wantHT-8.00)
	}
	if !approx(got.Bonus, (wantHT-8.00)*0.30) {
		t.Errorf("Bonus = %f, want %f", got.Bonus, (wantHT-8.00)*0.30)
	}
	if !approx(got.TVA26, 20.0-wantHT) {
		t.Errorf("TVA26 = %f, want %f", got.TVA26, 20.0-wantHT)
	}
	if got.TVA81 != 0 || got.DeliveryTTC != 0 {
		t.Errorf("delivery split should be zero, got TVA81=%f DeliveryTTC=%f", got.TVA81, got.DeliveryTTC)
	}
}

func TestComputeTotals_WithDelivery(t *testing.T) {
	lines := []models.InvoiceLine{
		{Quantity: 2, PriceTTC: 10.00, CostHT: 4.00},
	}
	got := ComputeTotals(lines, true, 25.00, 0)

	if !approx(got.TotalTTC, 45.00) {
		t.Errorf("TotalTTC = %f, want 45.00", got.TotalTTC)
	}
	deliveryHT := 25.0 / 1.081
	if !approx(got.TVA81, 25.0-deliveryHT) {
		t.Errorf("TVA81 = %f, want %f", got.TVA81, 25.0-deliveryHT)
	}
	if !approx(got.TotalCostHT, 8.00) {
		t.Errorf("TotalCostHT = %f, want 8.00 (delivery cost is zero)", got.TotalCostHT)
	}
	wantHT := 20.0/1.026 + deliveryHT
	if !approx(got.TotalHT, wantHT) {
		t.Errorf("TotalHT = %f, want %f", got.TotalHT, wantHT)
	}
	if !approx(got.NetProfit, wantHT-8.00) {
		t.Errorf("NetProfit = %f, want %f", got.NetProfit, wantHT-8.00)
	}
	if !approx(got.Bonus, (wantHT-8.00)*0.30) {
		t.Errorf("Bonus = %f, want %f", got.Bonus, (wantHT-8.00)*0.30)
	}
}

func TestComputeTotals_EmptyIsAllZero(t *testing.T) {
	got := ComputeTotals(nil, false, 0, 0)
	if got != (models.Totals{}) {
		t.Errorf("expected all-zero totals, got %+v", got)
	}
}

func TestComputeTotals_BonusNeverNegative(t *testing.T) {
	// Cost exceeds HT revenue: a loss-making event pays zero bonus, not a
	// negative one.
	lines := []models.InvoiceLine{
		{Quantity: 1, PriceTTC: 10.00, CostHT: 50.00},
	}
	got := ComputeTotals(lines, false, 0, 0)
	if got.NetProfit >= 0 {
		t.Fatalf("fixture should be loss-making, NetProfit = %f", got.NetProfit)
	}
	if got.Bonus != 0 {
		t.Errorf("Bonus = %f, want 0", got.Bonus)
	}
}

func TestComputeTotals_DeliveryCostCounted(t *testing.T) {
	got := ComputeTotals(nil, true, 25.00, 7.50)
	if !approx(got.TotalCostHT, 7.50) {
		t.Errorf("TotalCostHT = %f, want 7.50", got.TotalCostHT)
	}
	if !approx(got.FoodTTC, 0) || !approx(got.TVA26, 0) {
		t.Errorf("food split should be zero, got FoodTTC=%f TVA26=%f", got.FoodTTC, got.TVA26)
	}
}

// HT + TVA must equal TTC exactly, separately for each split, because the
// VAT amounts are derived by subtraction.
func TestComputeTotals_SplitsReconcile(t *testing.T) {
	tests := []struct {
		name        string
		lines       []models.InvoiceLine
		hasDelivery bool
		deliveryTTC float64
	}{
		{"food only", []models.InvoiceLine{{Quantity: 3, PriceTTC: 17.35, CostHT: 6.2}}, false, 0},
		{"fractional qty", []models.InvoiceLine{{Quantity: 1.5, PriceTTC: 9.99, CostHT: 3.33}}, false, 0},
		{"food and delivery", []models.InvoiceLine{{Quantity: 7, PriceTTC: 12.45, CostHT: 5}}, true, 25},
		{"delivery only", nil, true, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.lines, tt.hasDelivery, tt.deliveryTTC, 0)
			foodHT := got.FoodTTC - got.TVA26
			deliveryHT := got.DeliveryTTC - got.TVA81
			if math.Abs(foodHT+got.TVA26-got.FoodTTC) > eps {
				t.Errorf("food split does not reconcile: HT=%f TVA=%f TTC=%f", foodHT, got.TVA26, got.FoodTTC)
			}
			if math.Abs(deliveryHT+got.TVA81-got.DeliveryTTC) > eps {
				t.Errorf("delivery split does not reconcile: HT=%f TVA=%f TTC=%f", deliveryHT, got.TVA81, got.DeliveryTTC)
			}
			if math.Abs(got.TotalTTC-(got.FoodTTC+got.DeliveryTTC)) > eps {
				t.Errorf("TotalTTC = %f, want %f", got.TotalTTC, got.FoodTTC+got.DeliveryTTC)
			}
		})
	}
}

func TestMarginPercent(t *testing.T) {
	if _, ok := MarginPercent(models.Totals{}); ok {
		t.Error("zero HT revenue should report an undefined margin")
	}
	pct, ok := MarginPercent(models.Totals{TotalHT: 200, NetProfit: 50})
	if !ok || !approx(pct, 25) {
		t.Errorf("MarginPercent = %f, %v; want 25, true", pct, ok)
	}
}
