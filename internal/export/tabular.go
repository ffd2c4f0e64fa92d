package export

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/business-reports-api/internal/analytics"
)

// Formatos de exportação suportados
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

const (
	ContentTypeCSV = "text/csv; charset=utf-8"
	ContentTypePDF = "application/pdf"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

var whitespace = regexp.MustCompile(`\s+`)

func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "format %q", value)
	}
}

func (f Format) ContentType() string {
	if f == FormatPDF {
		return ContentTypePDF
	}
	return ContentTypeCSV
}

// TabularDocument é tudo que um renderizador precisa para desenhar a tabela
type TabularDocument struct {
	Title          string
	DateRangeLabel string
	GeneratedAt    time.Time
	Headers        []string
	Rows           [][]string
}

// TableRenderer desenha um TabularDocument no formato binário final
type TableRenderer interface {
	Render(ctx context.Context, doc TabularDocument) ([]byte, error)
}

// ToTabular monta o documento tabular com cabeçalhos legíveis
func ToTabular(title, dateRangeLabel string, rows []Row) (TabularDocument, error) {
	if len(rows) == 0 {
		return TabularDocument{}, ErrEmptyInput
	}

	names := rows[0].Names()
	headers := make([]string, len(names))
	for i, name := range names {
		headers[i] = analytics.Humanize(name)
	}

	body := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(names))
		for j, name := range names {
			value, _ := row.Get(name)
			cells[j] = formatValue(value)
		}
		body[i] = cells
	}

	return TabularDocument{
		Title:          title,
		DateRangeLabel: dateRangeLabel,
		Headers:        headers,
		Rows:           body,
	}, nil
}

// ToTabularPDF monta o documento e delega a renderização
func ToTabularPDF(ctx context.Context, renderer TableRenderer, title, dateRangeLabel string, generatedAt time.Time, rows []Row) ([]byte, error) {
	doc, err := ToTabular(title, dateRangeLabel, rows)
	if err != nil {
		return nil, err
	}
	doc.GeneratedAt = generatedAt

	content, err := renderer.Render(ctx, doc)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao renderizar PDF %q", title)
	}
	return content, nil
}

// CSVFileName gera o nome "<seção>_<yyyy-mm-dd>.csv"
func CSVFileName(section string, at time.Time) string {
	return section + "_" + at.Format(time.DateOnly) + ".csv"
}

// PDFFileName gera o nome "<título_em_snake>_<yyyy-mm-dd>.pdf"
func PDFFileName(title string, at time.Time) string {
	slug := whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "_")
	return slug + "_" + at.Format(time.DateOnly) + ".pdf"
}
