package domain

import (
	"fmt"
	"time"
)

// PeriodKeyLayout é o formato mm-yyyy usado para identificar períodos mensais
const PeriodKeyLayout = "01-2006"

// Period representa um mês do calendário no intervalo semiaberto [Start, End)
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
}

// NewPeriod cria o período mensal que contém t, no fuso de t
func NewPeriod(t time.Time) Period {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return Period{
		Year:  start.Year(),
		Month: start.Month(),
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}
}

// Key retorna o período no formato mm-yyyy
func (p Period) Key() string {
	return fmt.Sprintf("%02d-%04d", int(p.Month), p.Year)
}

// Label retorna o rótulo exibido nos gráficos, ex: "Jan 2025"
func (p Period) Label() string {
	return p.Start.Format("Jan 2006")
}

// LastInstant retorna o último instante representável do mês
func (p Period) LastInstant() time.Time {
	return p.End.Add(-time.Nanosecond)
}

// Contains indica se t pertence ao período
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Next retorna o período seguinte
func (p Period) Next() Period {
	return NewPeriod(p.End)
}
