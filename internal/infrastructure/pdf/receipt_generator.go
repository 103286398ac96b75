// Package pdf genera el comprobante imprimible de una solicitud de suministro.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Organización        │  N° Solicitud + Estado       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SOLICITANTE: email + fechas de uso y devolución             │
//	│  ARTÍCULO: nombre + serie + cantidad + propósito             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SEGUIMIENTO: Fecha | Cant. | Evento                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID de la solicitud                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/application/supply"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa supply.ReceiptRenderer usando Maroto v2.
type ReceiptGenerator struct{}

var _ supply.ReceiptRenderer = (*ReceiptGenerator)(nil)

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// RenderRequestReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) RenderRequestReceipt(_ context.Context, r supply.RequestReceipt) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de solicitud de suministro", true).
		WithAuthor(nonEmpty(r.OrganizationName, "Suministros"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(requesterRow(r))
	m.AddRows(itemRow(r.Request))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(chaseHeaderRow())
	for _, cr := range chaseRows(r.Chase) {
		m.AddRows(cr)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(r.Request))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r supply.RequestReceipt) core.Row {
	kind := "SOLICITUD DE CONSUMO"
	if r.Request.Rental {
		kind = "SOLICITUD DE PRÉSTAMO"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(r.OrganizationName, "-"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+time.Now().Format(dateLayout), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(kind, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(r.Request.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Estado: "+r.Request.Status, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func requesterRow(r supply.RequestReceipt) core.Row {
	returnDate := "-"
	if r.Request.ReturnDate != nil {
		returnDate = r.Request.ReturnDate.Format(dateLayout)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SOLICITANTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Uso: %s   |   Devolución: %s",
				nonEmpty(r.RequesterEmail, r.Request.RequesterID),
				r.Request.UseDate.Format(dateLayout),
				returnDate,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func itemRow(req dto.SupplyRequestResponse) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ARTÍCULO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s  x%d", req.ProductName, req.Quantity), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Serie: %s   |   Propósito: %s",
				nonEmpty(req.SerialNumber, "-"),
				nonEmpty(req.Purpose, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func chaseHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 3, align.Left),
		h("Cant.", 1, align.Center),
		h("Evento", 8, align.Left),
	)
}

// chaseRows: una fila por entrada de seguimiento, en orden cronológico.
func chaseRows(chase []dto.ChaseItemResponse) []core.Row {
	if len(chase) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin movimientos registrados.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		))}
	}
	out := make([]core.Row, 0, len(chase))
	for _, c := range chase {
		out = append(out, row.New(7).Add(
			col.New(3).Add(text.New(
				c.CreatedAt.Format("02/01/2006 15:04"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", c.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(8).Add(text.New(
				c.Issue,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return out
}

func footerRow(req dto.SupplyRequestResponse) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(req.ID, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Identificador de la solicitud:", props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 4, Left: 3,
			}),
			text.New(req.ID, props.Text{
				Size: 7, Top: 10, Left: 3, Color: colorGray,
			}),
			text.New("Presente este comprobante al retirar o devolver el artículo.", props.Text{
				Size: 8, Top: 20, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID recorta un UUID a sus primeros 8 caracteres para el encabezado.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
