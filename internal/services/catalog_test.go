package services

import (
	"errors"
	"testing"
)

func TestAddProvider_RequiresName(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewCatalogService(conn)

	if _, err := svc.AddProvider("  "); err == nil {
		t.Fatal("expected validation error for blank name")
	}
	p, err := svc.AddProvider("Banque Pictet")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if p.ID == 0 || p.CompanyName != "Banque Pictet" {
		t.Errorf("unexpected provider: %+v", p)
	}
}

func TestUpdateProvider_PartialFields(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewCatalogService(conn)
	p, _ := svc.AddProvider("Banque Pictet")

	city := "Genève"
	phone := "+41 22 123 45 67"
	updated, err := svc.UpdateProvider(p.ID, ProviderUpdate{AddressCity: &city, Phone: &phone})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.AddressCity != "Genève" || updated.Phone != phone {
		t.Errorf("fields not applied: %+v", updated)
	}
	if updated.CompanyName != "Banque Pictet" {
		t.Errorf("untouched field changed: %s", updated.CompanyName)
	}

	if _, err := svc.UpdateProvider(9999, ProviderUpdate{Phone: &phone}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProvider_IdempotentAndNonCascading(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewCatalogService(conn)
	p, _ := svc.AddProvider("Éphémère SA")
	product, err := svc.AddProduct(ProductInput{ProviderID: p.ID, Name: "Canapés", PriceTTC: 5, CostHT: 2})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}

	if err := svc.DeleteProvider(p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// repeated delete of an absent id is a no-op success
	if err := svc.DeleteProvider(p.ID); err != nil {
		t.Errorf("second delete should be idempotent, got %v", err)
	}
	if _, err := svc.GetProvider(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	// the product keeps its dangling provider id
	kept, err := svc.GetProduct(product.ID)
	if err != nil {
		t.Fatalf("product should survive provider deletion: %v", err)
	}
	if kept.ProviderID != p.ID {
		t.Errorf("provider reference rewritten: %d", kept.ProviderID)
	}
}

func TestAddProduct_Validation(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewCatalogService(conn)

	tests := []struct {
		name  string
		in    ProductInput
		field string
	}{
		{"missing name", ProductInput{PriceTTC: 1, CostHT: 1}, "name"},
		{"negative price", ProductInput{Name: "X", PriceTTC: -1, CostHT: 1}, "price_ttc"},
		{"negative cost", ProductInput{Name: "X", PriceTTC: 1, CostHT: -1}, "cost_ht"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddProduct(tt.in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := verr.Violations[tt.field]; !ok {
				t.Errorf("expected violation on %q, got %v", tt.field, verr.Violations)
			}
		})
	}

	// zero prices are legal (free tasting item)
	if _, err := svc.AddProduct(ProductInput{Name: "Dégustation", PriceTTC: 0, CostHT: 0}); err != nil {
		t.Errorf("zero-priced product should be accepted: %v", err)
	}
}

func TestListProducts_Filters(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewCatalogService(conn)
	p1, _ := svc.AddProvider("Pictet")
	p2, _ := svc.AddProvider("Carouge")

	a, _ := svc.AddProduct(ProductInput{ProviderID: p1.ID, Name: "A", PriceTTC: 1, CostHT: 1})
	svc.AddProduct(ProductInput{ProviderID: p1.ID, Name: "B", PriceTTC: 2, CostHT: 1})
	svc.AddProduct(ProductInput{ProviderID: p2.ID, Name: "C", PriceTTC: 3, CostHT: 1})

	if _, err := svc.SetProductActive(a.ID, false); err != nil {
		t.Fatalf("set active: %v", err)
	}

	all, _ := svc.ListProducts(ProductFilter{})
	if len(all) != 3 {
		t.Errorf("expected 3 products, got %d", len(all))
	}
	byProvider, _ := svc.ListProducts(ProductFilter{ProviderID: p1.ID})
	if len(byProvider) != 2 {
		t.Errorf("expected 2 products for provider, got %d", len(byProvider))
	}
	// inactive product drops out of new-invoice selection…
	selectable, _ := svc.ListProducts(ProductFilter{ProviderID: p1.ID, ActiveOnly: true})
	if len(selectable) != 1 || selectable[0].Name != "B" {
		t.Errorf("expected only active product B, got %+v", selectable)
	}
	// …but stays resolvable by id for historical invoices
	if _, err := svc.GetProduct(a.ID); err != nil {
		t.Errorf("inactive product should remain resolvable: %v", err)
	}
}

func TestDeleteProduct_Idempotent(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewCatalogService(conn)
	p, _ := svc.AddProduct(ProductInput{Name: "X", PriceTTC: 1, CostHT: 1})

	if err := svc.DeleteProduct(p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteProduct(p.ID); err != nil {
		t.Errorf("second delete should be idempotent, got %v", err)
	}
	if err := svc.DeleteProduct(12345); err != nil {
		t.Errorf("deleting an id that never existed should succeed, got %v", err)
	}
}

func TestSetProductActive_NotFound(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewCatalogService(conn)
	if _, err := svc.SetProductActive(777, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
