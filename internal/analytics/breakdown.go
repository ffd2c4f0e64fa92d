package analytics

import (
	"hash/fnv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-reports-api/internal/domain"
)

// DefaultCategory é o rótulo usado quando a categoria do registro está vazia
const DefaultCategory = "Unknown"

// Palette é a paleta de cores dos gráficos categóricos
var Palette = []string{
	"#3B82F6",
	"#10B981",
	"#F59E0B",
	"#EF4444",
	"#8B5CF6",
	"#EC4899",
	"#06B6D4",
	"#84CC16",
}

// ColorAssigner escolhe a cor de uma categoria a partir do rótulo e da
// posição em que ela apareceu pela primeira vez
type ColorAssigner func(label string, index int) string

// EncounterPalette percorre a paleta pela ordem de aparição. A mesma
// categoria pode receber cores diferentes em conjuntos de dados diferentes.
func EncounterPalette(_ string, index int) string {
	return Palette[index%len(Palette)]
}

// StableColors usa o mapa explícito e, para rótulos fora dele, um hash do
// rótulo na paleta. A cor não depende da ordem dos registros.
func StableColors(explicit map[string]string) ColorAssigner {
	return func(label string, _ int) string {
		if color, ok := explicit[label]; ok {
			return color
		}
		h := fnv.New32a()
		_, _ = h.Write([]byte(label))
		return Palette[h.Sum32()%uint32(len(Palette))]
	}
}

type breakdownConfig struct {
	colors  ColorAssigner
	labeler func(string) string
}

type BreakdownOption func(*breakdownConfig)

func WithColorAssigner(assigner ColorAssigner) BreakdownOption {
	return func(c *breakdownConfig) {
		if assigner != nil {
			c.colors = assigner
		}
	}
}

// WithLabeler transforma o valor bruto da categoria em rótulo de exibição
func WithLabeler(labeler func(string) string) BreakdownOption {
	return func(c *breakdownConfig) {
		c.labeler = labeler
	}
}

// Humanize deixa a primeira letra maiúscula e troca "_" por espaço: "ai_agent" vira "Ai agent"
func Humanize(value string) string {
	if value == "" {
		return value
	}
	value = strings.ReplaceAll(value, "_", " ")
	return strings.ToUpper(value[:1]) + value[1:]
}

// Breakdown conta registros por categoria. As categorias saem na ordem
// em que aparecem pela primeira vez e Value é igual a Count.
func Breakdown[T any](records []T, category func(T) string, opts ...BreakdownOption) domain.BreakdownResult {
	return breakdown(records, category, nil, opts)
}

// BreakdownSum agrupa por categoria somando value(r); Count traz a quantidade de registros
func BreakdownSum[T any](records []T, category func(T) string, value func(T) decimal.Decimal, opts ...BreakdownOption) domain.BreakdownResult {
	return breakdown(records, category, value, opts)
}

func breakdown[T any](records []T, category func(T) string, value func(T) decimal.Decimal, opts []BreakdownOption) domain.BreakdownResult {
	cfg := &breakdownConfig{
		colors: EncounterPalette,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	order := make([]string, 0)
	counts := make(map[string]int)
	sums := make(map[string]decimal.Decimal)

	for _, r := range records {
		label := category(r)
		if label != "" && cfg.labeler != nil {
			label = cfg.labeler(label)
		}
		if label == "" {
			label = DefaultCategory
		}

		if _, seen := counts[label]; !seen {
			order = append(order, label)
			sums[label] = decimal.Zero
		}
		counts[label]++
		if value != nil {
			sums[label] = sums[label].Add(value(r))
		}
	}

	categories := make([]domain.Category, len(order))
	for i, label := range order {
		v := float64(counts[label])
		if value != nil {
			v = sums[label].InexactFloat64()
		}
		categories[i] = domain.Category{
			Label: label,
			Value: v,
			Count: counts[label],
			Color: cfg.colors(label, i),
		}
	}

	return domain.BreakdownResult{Categories: categories}
}
