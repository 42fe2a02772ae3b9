package models

import (
	"testing"
)

func TestProvider_FullAddress(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		want     string
	}{
		{
			name:     "full address",
			provider: Provider{AddressStreet: "Rue du Rhône", AddressNumber: "12", AddressNPA: "1204", AddressCity: "Genève"},
			want:     "Rue du Rhône 12, 1204 Genève",
		},
		{
			name:     "only city",
			provider: Provider{AddressCity: "Genève"},
			want:     "Genève",
		},
		{
			name:     "street without number",
			provider: Provider{AddressStreet: "Rue du Rhône"},
			want:     "Rue du Rhône",
		},
		{
			name:     "empty",
			provider: Provider{},
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.provider.FullAddress(); got != tt.want {
				t.Errorf("FullAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProvider_ContactLine(t *testing.T) {
	p := Provider{Phone: "+41 22 123 45 67", Email: "info@pictet.ch"}
	if got := p.ContactLine(); got != "+41 22 123 45 67 info@pictet.ch" {
		t.Errorf("ContactLine() = %q", got)
	}
	if got := (&Provider{Email: "info@pictet.ch"}).ContactLine(); got != "info@pictet.ch" {
		t.Errorf("ContactLine() = %q, want bare email", got)
	}
}

func TestInvoiceLine_Totals(t *testing.T) {
	l := &InvoiceLine{Quantity: 2.5, PriceTTC: 10, CostHT: 4}
	if got := l.TotalTTC(); got != 25 {
		t.Errorf("TotalTTC() = %f, want 25", got)
	}
	if got := l.TotalCostHT(); got != 10 {
		t.Errorf("TotalCostHT() = %f, want 10", got)
	}
}

func TestTotals_Add(t *testing.T) {
	a := Totals{TotalTTC: 10, TotalHT: 9, TotalCostHT: 4, NetProfit: 5, Bonus: 1.5, TVA26: 1, FoodTTC: 10}
	b := Totals{TotalTTC: 25, TotalHT: 23, TotalCostHT: 0, NetProfit: 23, Bonus: 6.9, TVA81: 2, DeliveryTTC: 25}
	a.Add(b)

	want := Totals{TotalTTC: 35, TotalHT: 32, TotalCostHT: 4, NetProfit: 28, Bonus: 8.4, TVA26: 1, TVA81: 2, FoodTTC: 10, DeliveryTTC: 25}
	if a != want {
		t.Errorf("Add() = %+v, want %+v", a, want)
	}
}

func TestVATConstants(t *testing.T) {
	if VATFoodDivisor != 1.026 {
		t.Errorf("VATFoodDivisor = %f", VATFoodDivisor)
	}
	if VATDeliveryDivisor != 1.081 {
		t.Errorf("VATDeliveryDivisor = %f", VATDeliveryDivisor)
	}
}
