package pdf

import (
	"context"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/pkg/errors"
	"github.com/vfg2006/business-reports-api/internal/export"
	"github.com/vfg2006/business-reports-api/pkg/log"
)

const defaultGridSize = 12

var (
	titleColor  = &props.Color{Red: 59, Green: 130, Blue: 246}
	mutedColor  = &props.Color{Red: 128, Green: 128, Blue: 128}
	headerColor = &props.Color{Red: 59, Green: 130, Blue: 246}
)

// TableRenderer desenha relatórios tabulares em PDF usando maroto
type TableRenderer struct{}

func NewTableRenderer() *TableRenderer {
	return &TableRenderer{}
}

// Render gera o PDF com título, data de geração, período e a tabela
func (r *TableRenderer) Render(ctx context.Context, doc export.TabularDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(doc.Headers) == 0 {
		return nil, export.ErrEmptyInput
	}

	grid := defaultGridSize
	if len(doc.Headers) > grid {
		grid = len(doc.Headers)
	}

	cfg := config.NewBuilder().
		WithMaxGridSize(grid).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(grid, doc.Title, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
			Color: titleColor,
		}),
	)

	meta := col.New(grid)
	if !doc.GeneratedAt.IsZero() {
		meta.Add(text.New("Generated: "+doc.GeneratedAt.Format("January 2, 2006"), props.Text{Size: 10, Color: mutedColor}))
	}
	if doc.DateRangeLabel != "" {
		meta.Add(text.New("Period: "+doc.DateRangeLabel, props.Text{Size: 10, Top: 5, Color: mutedColor}))
	}
	m.AddRow(14, meta)

	sizes := columnSizes(len(doc.Headers), grid)

	header := make([]core.Col, len(doc.Headers))
	for i, h := range doc.Headers {
		header[i] = text.NewCol(sizes[i], h, props.Text{
			Size:  9,
			Style: fontstyle.Bold,
			Align: alignFor(i),
			Color: headerColor,
		})
	}
	m.AddRow(10, header...)

	for _, row := range doc.Rows {
		cells := make([]core.Col, len(doc.Headers))
		for i := range doc.Headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			cells[i] = text.NewCol(sizes[i], value, props.Text{Size: 9, Align: alignFor(i)})
		}
		m.AddRow(8, cells...)
	}

	generated, err := m.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar PDF")
	}

	content := generated.GetBytes()
	log.ForContext(ctx).WithFields(log.Fields{
		"title": doc.Title,
		"rows":  len(doc.Rows),
		"bytes": len(content),
	}).Debug("pdf: documento gerado")

	return content, nil
}

// columnSizes divide a grade entre as colunas; a primeira fica com a sobra
func columnSizes(columns, grid int) []int {
	sizes := make([]int, columns)
	base := grid / columns
	for i := range sizes {
		sizes[i] = base
	}
	sizes[0] += grid - base*columns
	return sizes
}

// a primeira coluna é o rótulo, as demais são valores
func alignFor(index int) align.Type {
	if index == 0 {
		return align.Left
	}
	return align.Right
}
