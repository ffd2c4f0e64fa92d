package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-reports-api/internal/domain"
)

// Field é uma coluna nomeada de uma linha exportável
type Field struct {
	Name  string
	Value any
}

// Row é uma linha exportável; a ordem dos campos define a ordem das colunas
type Row []Field

func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// Get busca o valor de um campo pelo nome
func (r Row) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Names retorna os nomes dos campos na ordem da linha
func (r Row) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// DatasetRows transforma um dataset em uma linha por rótulo, com uma coluna
// por série na ordem de inserção
func DatasetRows(dataset domain.Dataset, labelField string) []Row {
	rows := make([]Row, len(dataset.Labels))
	for i, label := range dataset.Labels {
		row := make(Row, 0, len(dataset.Order)+1)
		row = append(row, F(labelField, label))
		for _, name := range dataset.Order {
			row = append(row, F(name, dataset.Series[name][i]))
		}
		rows[i] = row
	}
	return rows
}

// BreakdownRows transforma um breakdown em uma linha por categoria
func BreakdownRows(breakdown domain.BreakdownResult, labelField string) []Row {
	rows := make([]Row, len(breakdown.Categories))
	for i, c := range breakdown.Categories {
		rows[i] = Row{
			F(labelField, c.Label),
			F("value", c.Value),
			F("count", c.Count),
			F("color", c.Color),
		}
	}
	return rows
}

// MetricRows gera linhas "metric,value" para indicadores avulsos
func MetricRows(metrics ...Field) []Row {
	rows := make([]Row, len(metrics))
	for i, m := range metrics {
		rows[i] = Row{F("metric", m.Name), F("value", m.Value)}
	}
	return rows
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case decimal.Decimal:
		return v.String()
	case *decimal.Decimal:
		if v == nil {
			return ""
		}
		return v.String()
	case time.Time:
		return v.Format(time.RFC3339)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
