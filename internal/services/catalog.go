package services

import (
	"errors"

	"github.com/lagape/traiteur/internal/models"
	"github.com/lagape/traiteur/internal/validation"
	"gorm.io/gorm"
)

// CatalogService owns all provider and product mutations. Pure relational
// CRUD, no computation; nothing else in the app writes these tables.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService { return &CatalogService{db: db} }

// ProviderUpdate is a partial update; nil fields are left untouched.
type ProviderUpdate struct {
	CompanyName   *string
	LastName      *string
	FirstName     *string
	AddressStreet *string
	AddressNumber *string
	AddressNPA    *string
	AddressCity   *string
	Phone         *string
	Email         *string
}

// AddProvider creates a provider from the quick-add form (name only).
func (s *CatalogService) AddProvider(name string) (models.Provider, error) {
	v := validation.Violations{}
	validation.Required("company_name", name, v)
	if !v.Empty() {
		return models.Provider{}, &ValidationError{Violations: v}
	}
	p := models.Provider{CompanyName: name}
	if err := s.db.Create(&p).Error; err != nil {
		return models.Provider{}, err
	}
	return p, nil
}

func (s *CatalogService) UpdateProvider(id uint, u ProviderUpdate) (models.Provider, error) {
	var p models.Provider
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Provider{}, ErrNotFound
		}
		return models.Provider{}, err
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&p.CompanyName, u.CompanyName)
	apply(&p.LastName, u.LastName)
	apply(&p.FirstName, u.FirstName)
	apply(&p.AddressStreet, u.AddressStreet)
	apply(&p.AddressNumber, u.AddressNumber)
	apply(&p.AddressNPA, u.AddressNPA)
	apply(&p.AddressCity, u.AddressCity)
	apply(&p.Phone, u.Phone)
	apply(&p.Email, u.Email)

	v := validation.Violations{}
	validation.Required("company_name", p.CompanyName, v)
	if !v.Empty() {
		return models.Provider{}, &ValidationError{Violations: v}
	}
	if err := s.db.Save(&p).Error; err != nil {
		return models.Provider{}, err
	}
	return p, nil
}

// DeleteProvider removes a provider. Idempotent: deleting an absent id is a
// no-op success. Referencing invoices and products are left untouched; their
// provider ids dangle and consumers resolve them to a fallback name.
func (s *CatalogService) DeleteProvider(id uint) error {
	return s.db.Delete(&models.Provider{}, id).Error
}

func (s *CatalogService) ListProviders() ([]models.Provider, error) {
	var providers []models.Provider
	if err := s.db.Order("id").Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

func (s *CatalogService) GetProvider(id uint) (models.Provider, error) {
	var p models.Provider
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Provider{}, ErrNotFound
		}
		return models.Provider{}, err
	}
	return p, nil
}

// ProductInput is the payload for creating a product.
type ProductInput struct {
	ProviderID uint
	Name       string
	PriceTTC   float64
	CostHT     float64
}

// ProductUpdate is a partial update; nil fields are left untouched.
type ProductUpdate struct {
	ProviderID *uint
	Name       *string
	PriceTTC   *float64
	CostHT     *float64
}

// ProductFilter narrows ListProducts. Zero value lists everything.
type ProductFilter struct {
	ProviderID uint // 0 = any provider
	ActiveOnly bool
}

func (s *CatalogService) AddProduct(in ProductInput) (models.Product, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.NonNegativeFloat("price_ttc", in.PriceTTC, v)
	validation.NonNegativeFloat("cost_ht", in.CostHT, v)
	if !v.Empty() {
		return models.Product{}, &ValidationError{Violations: v}
	}
	p := models.Product{
		ProviderID: in.ProviderID,
		Name:       in.Name,
		PriceTTC:   in.PriceTTC,
		CostHT:     in.CostHT,
		Active:     true,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) UpdateProduct(id uint, u ProductUpdate) (models.Product, error) {
	var p models.Product
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}
	if u.ProviderID != nil {
		p.ProviderID = *u.ProviderID
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.PriceTTC != nil {
		p.PriceTTC = *u.PriceTTC
	}
	if u.CostHT != nil {
		p.CostHT = *u.CostHT
	}

	v := validation.Violations{}
	validation.Required("name", p.Name, v)
	validation.NonNegativeFloat("price_ttc", p.PriceTTC, v)
	validation.NonNegativeFloat("cost_ht", p.CostHT, v)
	if !v.Empty() {
		return models.Product{}, &ValidationError{Violations: v}
	}
	if err := s.db.Save(&p).Error; err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// DeleteProduct is idempotent like DeleteProvider. Historical invoice lines
// keep the product id and fall back to the unknown-product sentinel on export.
func (s *CatalogService) DeleteProduct(id uint) error {
	return s.db.Delete(&models.Product{}, id).Error
}

// SetProductActive toggles visibility in new-invoice selection without
// touching historical resolvability.
func (s *CatalogService) SetProductActive(id uint, active bool) (models.Product, error) {
	var p models.Product
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}
	if err := s.db.Model(&p).Update("active", active).Error; err != nil {
		return models.Product{}, err
	}
	p.Active = active
	return p, nil
}

func (s *CatalogService) ListProducts(f ProductFilter) ([]models.Product, error) {
	q := s.db.Order("id")
	if f.ProviderID != 0 {
		q = q.Where("provider_id = ?", f.ProviderID)
	}
	if f.ActiveOnly {
		q = q.Where("active = ?", true)
	}
	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *CatalogService) GetProduct(id uint) (models.Product, error) {
	var p models.Product
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}
	return p, nil
}
