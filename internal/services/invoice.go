package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lagape/traiteur/internal/models"
	"github.com/lagape/traiteur/internal/validation"
	"gorm.io/gorm"
)

// InvoiceService creates and reads invoices. There is deliberately no update
// or delete: an invoice is written once, snapshot included, and stays the
// audit record of the event.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService { return &InvoiceService{db: db} }

// InvoiceDraft is the unsaved form of an invoice. Line prices and costs are
// values copied at selection time, not live product references.
type InvoiceDraft struct {
	EventDate       time.Time
	ClientName      string
	ClientAddress   string
	DeliveryAddress string
	Contact         string
	Note            string
	ProviderID      uint
	Lines           []models.InvoiceLine

	HasDelivery    bool
	DeliveryTTC    float64
	DeliveryCostHT float64
}

func (d *InvoiceDraft) validate() error {
	v := validation.Violations{}
	validation.Required("client_name", d.ClientName, v)
	validation.RequiredID("provider_id", d.ProviderID, v)
	if len(d.Lines) == 0 {
		v["lines"] = "required"
	}
	for _, l := range d.Lines {
		if l.Quantity < 0 {
			v["lines"] = "negative_quantity"
		}
	}
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return nil
}

// Create validates the draft, computes the totals snapshot exactly once,
// assigns the id and invoice number and persists everything in a single
// transaction. The stored snapshot is never recomputed afterwards.
func (s *InvoiceService) Create(d InvoiceDraft) (models.Invoice, error) {
	if err := d.validate(); err != nil {
		return models.Invoice{}, err
	}
	eventDate := d.EventDate
	if eventDate.IsZero() {
		eventDate = time.Now()
	}

	inv := models.Invoice{
		Reference:       uuid.NewString(),
		EventDate:       eventDate,
		ClientName:      d.ClientName,
		ClientAddress:   d.ClientAddress,
		DeliveryAddress: d.DeliveryAddress,
		Contact:         d.Contact,
		Note:            d.Note,
		ProviderID:      d.ProviderID,
		HasDelivery:     d.HasDelivery,
		DeliveryTTC:     d.DeliveryTTC,
		DeliveryCostHT:  d.DeliveryCostHT,
		Totals:          ComputeTotals(d.Lines, d.HasDelivery, d.DeliveryTTC, d.DeliveryCostHT),
	}
	if !inv.HasDelivery {
		inv.DeliveryTTC = 0
		inv.DeliveryCostHT = 0
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		number, err := models.GenerateInvoiceNumber(tx, eventDate.Year())
		if err != nil {
			return err
		}
		inv.Number = number
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		lines := make([]models.InvoiceLine, len(d.Lines))
		copy(lines, d.Lines)
		for i := range lines {
			lines[i].ID = 0
			lines[i].InvoiceID = inv.ID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}
		inv.Lines = lines
		return nil
	})
	if err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

// List returns all invoices with their lines, in storage order. Callers
// needing chronological order sort explicitly.
func (s *InvoiceService) List() ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := s.db.Preload("Lines").Order("id").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *InvoiceService) GetByID(id uint) (models.Invoice, error) {
	var inv models.Invoice
	if err := s.db.Preload("Lines").First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Invoice{}, ErrNotFound
		}
		return models.Invoice{}, err
	}
	return inv, nil
}
