package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"orderpad-service/internal/models"
)

// SheetService renders a submitted batch as a printable order sheet PDF.
type SheetService struct{}

// NewSheetService creates a new sheet service
func NewSheetService() *SheetService {
	return &SheetService{}
}

// Generate renders the order sheet for a batch.
func (s *SheetService) Generate(order *models.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)

	s.addHeader(m, order)
	s.addRowsTable(m, order)
	s.addTotals(m, order)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func (s *SheetService) addHeader(m core.Maroto, order *models.Order) {
	m.AddRow(20,
		col.New(6).Add(
			text.New("ORDER SHEET", props.Text{
				Size:  16,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
			text.New(fmt.Sprintf("Batch: %s", order.ID), props.Text{
				Size:  8,
				Top:   9,
				Align: align.Left,
			}),
		),
		col.New(6).Add(
			text.New(order.Customer, props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
			text.New(fmt.Sprintf("Date: %s", order.Date), props.Text{
				Size:  10,
				Top:   7,
				Align: align.Right,
			}),
			text.New(fmt.Sprintf("Market: %s", order.Market), props.Text{
				Size:  10,
				Top:   12,
				Align: align.Right,
			}),
		),
	)

	m.AddRow(5, line.NewCol(12))
}

func (s *SheetService) addRowsTable(m core.Maroto, order *models.Order) {
	m.AddRow(8,
		col.New(3).Add(
			text.New("Item", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}),
		),
		col.New(2).Add(
			text.New("Variety", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}),
		),
		col.New(2).Add(
			text.New("Color", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}),
		),
		col.New(1).Add(
			text.New("Size", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Center}),
		),
		col.New(1).Add(
			text.New("Qty", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Center}),
		),
		col.New(3).Add(
			text.New("Comment", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}),
		),
	)

	m.AddRow(2, line.NewCol(12))

	for _, row := range order.Rows {
		rowHeight := 7.0
		if len(row.Comment) > 40 {
			rowHeight = 11.0
		}
		m.AddRow(rowHeight,
			col.New(3).Add(
				text.New(row.Item, props.Text{Size: 9, Align: align.Left}),
			),
			col.New(2).Add(
				text.New(row.Variety, props.Text{Size: 9, Align: align.Left}),
			),
			col.New(2).Add(
				text.New(row.Color, props.Text{Size: 9, Align: align.Left}),
			),
			col.New(1).Add(
				text.New(row.Size, props.Text{Size: 9, Align: align.Center}),
			),
			col.New(1).Add(
				text.New(fmt.Sprintf("%d", row.Quantity), props.Text{Size: 9, Align: align.Center}),
			),
			col.New(3).Add(
				text.New(row.Comment, props.Text{Size: 8, Align: align.Left}),
			),
		)
	}

	m.AddRow(3, line.NewCol(12))
}

func (s *SheetService) addTotals(m core.Maroto, order *models.Order) {
	// Per-item totals re-derived from the stored rows so the sheet always
	// matches what was persisted.
	totals := make(map[string]int)
	var itemOrder []string
	for _, row := range order.Rows {
		if _, seen := totals[row.Item]; !seen {
			itemOrder = append(itemOrder, row.Item)
		}
		totals[row.Item] += row.Quantity
	}

	for _, item := range itemOrder {
		m.AddRow(6,
			col.New(8),
			col.New(2).Add(
				text.New(item+":", props.Text{Size: 10, Align: align.Right}),
			),
			col.New(2).Add(
				text.New(fmt.Sprintf("%d", totals[item]), props.Text{Size: 10, Align: align.Right}),
			),
		)
	}

	m.AddRow(8,
		col.New(8),
		col.New(2).Add(
			text.New("Total units:", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
		),
		col.New(2).Add(
			text.New(fmt.Sprintf("%d", order.TotalUnits), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
		),
	)
}
