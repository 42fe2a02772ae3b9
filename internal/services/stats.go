package services

import (
	"strings"
	"time"

	"github.com/lagape/traiteur/internal/models"
	"gorm.io/gorm"
)

// AggregateStats is the field-wise sum of invoice snapshots surviving a
// filter. Names mirror the dashboard cards (CA = chiffre d'affaires).
type AggregateStats struct {
	CaTTC     float64 `json:"ca_ttc"`
	CaHT      float64 `json:"ca_ht"`
	CostsHT   float64 `json:"costs_ht"`
	NetProfit float64 `json:"net_profit"`
	Bonus     float64 `json:"bonus"`
	TVA26     float64 `json:"tva26"`
	TVA81     float64 `json:"tva81"`
}

func (a *AggregateStats) add(t models.Totals) {
	a.CaTTC += t.TotalTTC
	a.CaHT += t.TotalHT
	a.CostsHT += t.TotalCostHT
	a.NetProfit += t.NetProfit
	a.Bonus += t.Bonus
	a.TVA26 += t.TVA26
	a.TVA81 += t.TVA81
}

// Add sums another aggregate field-wise.
func (a *AggregateStats) Add(o AggregateStats) {
	a.CaTTC += o.CaTTC
	a.CaHT += o.CaHT
	a.CostsHT += o.CostsHT
	a.NetProfit += o.NetProfit
	a.Bonus += o.Bonus
	a.TVA26 += o.TVA26
	a.TVA81 += o.TVA81
}

// Predicate decides whether an invoice belongs to an aggregation window.
type Predicate func(models.Invoice) bool

// MonthWindow matches invoices whose event date falls in the given month.
// Months are 1-12, matching time.Month.
func MonthWindow(year int, month time.Month) Predicate {
	return func(inv models.Invoice) bool {
		return inv.EventDate.Year() == year && inv.EventDate.Month() == month
	}
}

// YearWindow matches invoices whose event date falls in the given year.
func YearWindow(year int) Predicate {
	return func(inv models.Invoice) bool {
		return inv.EventDate.Year() == year
	}
}

// Filter is the free filter set applied on top of a year window. Zero-value
// fields match everything.
type Filter struct {
	Month          time.Month // 0 = any month
	ProviderID     uint       // 0 = any provider
	ClientContains string     // case-insensitive substring, "" = any client
}

// Predicate compiles the filter.
func (f Filter) Predicate() Predicate {
	needle := strings.ToLower(f.ClientContains)
	return func(inv models.Invoice) bool {
		if f.Month != 0 && inv.EventDate.Month() != f.Month {
			return false
		}
		if f.ProviderID != 0 && inv.ProviderID != f.ProviderID {
			return false
		}
		if needle != "" && !strings.Contains(strings.ToLower(inv.ClientName), needle) {
			return false
		}
		return true
	}
}

// And combines predicates; all must match.
func And(preds ...Predicate) Predicate {
	return func(inv models.Invoice) bool {
		for _, p := range preds {
			if !p(inv) {
				return false
			}
		}
		return true
	}
}

// Aggregate filters invoices by pred, folds the surviving snapshots into an
// all-zero accumulator and returns the fold plus the filtered listing, kept
// in input order.
func Aggregate(invoices []models.Invoice, pred Predicate) (AggregateStats, []models.Invoice) {
	var stats AggregateStats
	var kept []models.Invoice
	for _, inv := range invoices {
		if pred != nil && !pred(inv) {
			continue
		}
		stats.add(inv.Totals)
		kept = append(kept, inv)
	}
	return stats, kept
}

// StatsService reads persisted invoices and rolls their snapshots up for the
// month and year dashboards. Every call hits the store fresh; caching is the
// caller's business.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService { return &StatsService{db: db} }

func (s *StatsService) load() ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := s.db.Preload("Lines").Order("id").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Month aggregates one calendar month.
func (s *StatsService) Month(year int, month time.Month) (AggregateStats, []models.Invoice, error) {
	invoices, err := s.load()
	if err != nil {
		return AggregateStats{}, nil, err
	}
	stats, kept := Aggregate(invoices, MonthWindow(year, month))
	return stats, kept, nil
}

// Year aggregates a calendar year narrowed by the free filter set.
func (s *StatsService) Year(year int, f Filter) (AggregateStats, []models.Invoice, error) {
	invoices, err := s.load()
	if err != nil {
		return AggregateStats{}, nil, err
	}
	stats, kept := Aggregate(invoices, And(YearWindow(year), f.Predicate()))
	return stats, kept, nil
}
