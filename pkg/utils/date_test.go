package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  *time.Time
	}{
		{name: "Vazio", value: "", want: nil},
		{name: "Texto inválido", value: "ontem", want: nil},
		{name: "RFC3339 com fuso", value: "2025-03-01T10:00:00-03:00", want: ptrTime(time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC))},
		{name: "RFC3339 com frações", value: "2025-03-01T10:00:00.123Z", want: ptrTime(time.Date(2025, 3, 1, 10, 0, 0, 123000000, time.UTC))},
		{name: "Formato do Postgres", value: "2025-03-01 10:00:00+00", want: ptrTime(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))},
		{name: "Data e hora sem fuso", value: "2025-03-01 10:00:00", want: ptrTime(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))},
		{name: "Somente data", value: " 2025-03-01 ", want: ptrTime(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimestamp(tt.value, time.UTC)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %s", got)
		})
	}
}

func TestParseReference(t *testing.T) {
	got, ok := ParseReference("2025-02-28", time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), *got)

	got, ok = ParseReference("", time.UTC)
	assert.True(t, ok)
	assert.Nil(t, got)

	_, ok = ParseReference("28/02/2025", time.UTC)
	assert.False(t, ok)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
