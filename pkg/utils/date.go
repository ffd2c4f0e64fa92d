package utils

import (
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05-07",
	time.DateOnly,
}

// ParseTimestamp interpreta um timestamp vindo de fora (JSON, CSV, banco).
// Valores vazios ou inválidos retornam nil; formatos sem fuso usam loc.
func ParseTimestamp(value string, loc *time.Location) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return &parsed
		}
	}

	return nil
}

// ParseReference interpreta a data de referência de um relatório, aceitando
// data simples ou RFC3339. Uma data simples aponta para o fim daquele dia.
func ParseReference(value string, loc *time.Location) (*time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, true
	}
	if loc == nil {
		loc = time.Local
	}

	if day, err := time.ParseInLocation(time.DateOnly, value, loc); err == nil {
		endOfDay := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
		return &endOfDay, true
	}

	parsed := ParseTimestamp(value, loc)
	if parsed == nil {
		return nil, false
	}
	return parsed, true
}
