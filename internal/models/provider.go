package models

import (
	"strings"
	"time"
)

// Provider is the billable counterparty for a catering event (prestataire).
// Created either name-only from the quick-add form or filled in via the
// detail form. Deleting a provider never cascades: invoices and products
// keep the id and resolve it to a fallback name when it dangles.
type Provider struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CompanyName string `gorm:"size:255;not null" json:"company_name"`
	LastName    string `gorm:"size:100" json:"last_name,omitempty"`
	FirstName   string `gorm:"size:100" json:"first_name,omitempty"`

	// Adresse structurée (rue, numéro, NPA, ville)
	AddressStreet string `gorm:"size:255" json:"address_street,omitempty"`
	AddressNumber string `gorm:"size:20" json:"address_number,omitempty"`
	AddressNPA    string `gorm:"size:10" json:"address_npa,omitempty"`
	AddressCity   string `gorm:"size:100" json:"address_city,omitempty"`

	Phone string `gorm:"size:50" json:"phone,omitempty"`
	Email string `gorm:"size:255" json:"email,omitempty"`
}

// FullAddress renders "street number, NPA city" skipping empty parts,
// the line used to prefill an invoice's client address.
func (p *Provider) FullAddress() string {
	left := strings.TrimSpace(p.AddressStreet + " " + p.AddressNumber)
	right := strings.TrimSpace(p.AddressNPA + " " + p.AddressCity)
	switch {
	case left == "":
		return right
	case right == "":
		return left
	default:
		return left + ", " + right
	}
}

// ContactLine renders "phone email" skipping empty parts.
func (p *Provider) ContactLine() string {
	return strings.TrimSpace(strings.TrimSpace(p.Phone) + " " + strings.TrimSpace(p.Email))
}
