// Package pdf renders the two printable documents: the client-facing
// invoice and the internal cost sheet. It consumes the export rows plus the
// stored totals snapshot; it never recomputes amounts.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/lagape/traiteur/internal/export"
	"github.com/lagape/traiteur/internal/models"
	"github.com/lagape/traiteur/internal/services"
)

var (
	headerBlue  = props.Color{Red: 46, Green: 71, Blue: 93}
	internalRed = props.Color{Red: 200, Green: 50, Blue: 50}
	grey        = props.Color{Red: 100, Green: 100, Blue: 100}
)

func newDoc() core.Maroto {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()
	return maroto.New(cfg)
}

func formatDate(t models.Invoice) string {
	return t.EventDate.Format("02/01/2006")
}

// Invoice renders the client document (Facture). Only TTC sale amounts
// appear; cost data stays internal.
func Invoice(inv models.Invoice, products []models.Product) ([]byte, error) {
	m := newDoc()

	m.AddRows(
		row.New(8).Add(
			text.NewCol(8, "TRAITEUR L'AGAPE", props.Text{Size: 18, Style: fontstyle.Bold, Color: &headerBlue}),
			text.NewCol(4, "Facture: "+inv.Number, props.Text{Size: 9, Align: align.Right}),
		),
		row.New(6).Add(
			text.NewCol(8, "Service Traiteur & Événementiel", props.Text{Size: 9, Color: &grey}),
			text.NewCol(4, "Date: "+inv.CreatedAt.Format("02/01/2006"), props.Text{Size: 9, Align: align.Right}),
		),
		row.New(4),
	)

	m.AddRows(
		row.New(6).Add(
			text.NewCol(6, "Client", props.Text{Size: 11, Style: fontstyle.Bold}),
			text.NewCol(6, "Événement", props.Text{Size: 11, Style: fontstyle.Bold}),
		),
		row.New(5).Add(
			text.NewCol(6, inv.ClientName, props.Text{Size: 9}),
			text.NewCol(6, "Date : "+formatDate(inv), props.Text{Size: 9}),
		),
	)
	eventPlace := inv.DeliveryAddress
	if eventPlace == "" {
		eventPlace = "adresse client"
	}
	m.AddRows(
		row.New(5).Add(
			text.NewCol(6, inv.ClientAddress, props.Text{Size: 9}),
			text.NewCol(6, "Lieu : "+eventPlace, props.Text{Size: 9}),
		),
		row.New(6),
	)

	addTable(m, headerBlue,
		[4]string{"Désignation", "Qté", "Prix Unit. TTC", "Total TTC"},
		export.Rows(inv, products, export.KindClient))

	t := inv.Totals
	m.AddRows(
		row.New(4),
		totalRow("Total HT :", t.TotalHT, false),
		totalRow("TVA (2.6% / 8.1%) :", t.TVA26+t.TVA81, false),
		totalRow("Total TTC :", t.TotalTTC, true),
	)

	if inv.Note != "" {
		m.AddRows(
			row.New(6),
			row.New(5).Add(text.NewCol(12, "Note : "+inv.Note, props.Text{Size: 8, Color: &grey})),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// CostSheet renders the internal profitability document (fiche de coûts).
func CostSheet(inv models.Invoice, products []models.Product) ([]byte, error) {
	m := newDoc()

	m.AddRows(
		row.New(8).Add(
			text.NewCol(12, "FICHE DE COÛT (INTERNE)", props.Text{Size: 16, Style: fontstyle.Bold, Color: &internalRed}),
		),
		row.New(5).Add(
			text.NewCol(8, "Événement: "+inv.ClientName, props.Text{Size: 9}),
			text.NewCol(4, "Ref: "+inv.Number, props.Text{Size: 9, Align: align.Right}),
		),
		row.New(5).Add(text.NewCol(12, "Date: "+formatDate(inv), props.Text{Size: 9})),
		row.New(4),
	)

	addTable(m, internalRed,
		[4]string{"Produit", "Qté", "Coût Unit. HT", "Total Coût HT"},
		export.Rows(inv, products, export.KindCost))

	t := inv.Totals
	marginLabel := "n/a"
	if pct, ok := services.MarginPercent(t); ok {
		marginLabel = fmt.Sprintf("%.1f%%", pct)
	}
	m.AddRows(
		row.New(6),
		row.New(6).Add(text.NewCol(12, "Rentabilité", props.Text{Size: 12, Style: fontstyle.Bold})),
		labelValueRow("Chiffre d'Affaires (HT)", export.FormatCHF(t.TotalHT)),
		labelValueRow("Coût Total (HT)", export.FormatCHF(t.TotalCostHT)),
		labelValueRow("Marge Brute", export.FormatCHF(t.NetProfit)),
		labelValueRow("Marge %", marginLabel),
		labelValueRow("Prime (30%)", export.FormatCHF(t.Bonus)),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate cost sheet pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addTable(m core.Maroto, headColor props.Color, head [4]string, rows []export.Row) {
	white := props.Color{Red: 255, Green: 255, Blue: 255}
	m.AddRows(row.New(7).WithStyle(&props.Cell{BackgroundColor: &headColor}).Add(
		text.NewCol(6, head[0], props.Text{Size: 9, Style: fontstyle.Bold, Color: &white, Left: 2}),
		text.NewCol(2, head[1], props.Text{Size: 9, Style: fontstyle.Bold, Color: &white, Align: align.Center}),
		text.NewCol(2, head[2], props.Text{Size: 9, Style: fontstyle.Bold, Color: &white, Align: align.Right}),
		text.NewCol(2, head[3], props.Text{Size: 9, Style: fontstyle.Bold, Color: &white, Align: align.Right, Right: 2}),
	))
	for _, r := range rows {
		m.AddRows(row.New(6).Add(
			text.NewCol(6, r.Name, props.Text{Size: 9, Left: 2}),
			text.NewCol(2, trimQuantity(r.Quantity), props.Text{Size: 9, Align: align.Center}),
			text.NewCol(2, export.FormatCHF(r.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, export.FormatCHF(r.LineTotal), props.Text{Size: 9, Align: align.Right, Right: 2}),
		))
	}
	m.AddRows(row.New(2).Add(line.NewCol(12)))
}

func totalRow(label string, value float64, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	return row.New(6).Add(
		text.NewCol(8, label, props.Text{Size: 10, Style: style, Align: align.Right}),
		text.NewCol(4, export.FormatCHF(value), props.Text{Size: 10, Style: style, Align: align.Right, Right: 2}),
	)
}

func labelValueRow(label, value string) core.Row {
	return row.New(6).Add(
		text.NewCol(6, label, props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(6, value, props.Text{Size: 10, Align: align.Right}),
	)
}

// Quantities may be fractional (e.g. 1.5 kg); print whole numbers bare.
func trimQuantity(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%.3g", q)
}
