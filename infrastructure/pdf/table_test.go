package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-reports-api/internal/export"
)

func TestTableRenderer_Render(t *testing.T) {
	renderer := NewTableRenderer()

	content, err := renderer.Render(context.Background(), export.TabularDocument{
		Title:          "Revenue Report",
		DateRangeLabel: "2025-01-01 to 2025-06-30",
		GeneratedAt:    time.Date(2025, 6, 30, 8, 0, 0, 0, time.UTC),
		Headers:        []string{"Month", "Revenue", "Paid", "Pending"},
		Rows: [][]string{
			{"Jan 2025", "350", "100", "250"},
			{"Feb 2025", "0", "0"},
		},
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestTableRenderer_RenderErrors(t *testing.T) {
	renderer := NewTableRenderer()

	_, err := renderer.Render(context.Background(), export.TabularDocument{Title: "Vazio"})
	assert.True(t, errors.Is(err, export.ErrEmptyInput))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = renderer.Render(ctx, export.TabularDocument{Headers: []string{"A"}})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestColumnSizes(t *testing.T) {
	tests := []struct {
		name    string
		columns int
		grid    int
		want    []int
	}{
		{name: "Divisão exata", columns: 4, grid: 12, want: []int{3, 3, 3, 3}},
		{name: "Sobra vai para a primeira coluna", columns: 5, grid: 12, want: []int{4, 2, 2, 2, 2}},
		{name: "Uma coluna por unidade da grade", columns: 14, grid: 14, want: []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, columnSizes(tt.columns, tt.grid))
		})
	}
}
