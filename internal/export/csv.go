package export

import (
	"encoding/csv"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptyInput indica que não há linhas para exportar
var ErrEmptyInput = errors.New("no data to export")

// ToCSV gera o CSV das linhas. O cabeçalho segue a ordem dos campos da
// primeira linha; campos ausentes nas demais linhas ficam vazios.
func ToCSV(rows []Row) (string, error) {
	if len(rows) == 0 {
		return "", ErrEmptyInput
	}

	headers := rows[0].Names()

	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if err := writer.Write(headers); err != nil {
		return "", errors.Wrap(err, "erro ao escrever cabeçalho do CSV")
	}

	record := make([]string, len(headers))
	for _, row := range rows {
		for i, h := range headers {
			value, _ := row.Get(h)
			record[i] = formatValue(value)
		}
		if err := writer.Write(record); err != nil {
			return "", errors.Wrap(err, "erro ao escrever linha do CSV")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", errors.Wrap(err, "erro ao finalizar CSV")
	}

	return sb.String(), nil
}
