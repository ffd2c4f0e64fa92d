package domain

// SeriesPoint é um valor agregado para um rótulo (período ou data)
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// AggregationResult é uma série ordenada alinhada à janela de períodos
type AggregationResult struct {
	Points []SeriesPoint `json:"points"`
}

func (r AggregationResult) Len() int {
	return len(r.Points)
}

func (r AggregationResult) Labels() []string {
	labels := make([]string, len(r.Points))
	for i, p := range r.Points {
		labels[i] = p.Label
	}
	return labels
}

func (r AggregationResult) Values() []float64 {
	values := make([]float64, len(r.Points))
	for i, p := range r.Points {
		values[i] = p.Value
	}
	return values
}

// Total soma todos os pontos da série
func (r AggregationResult) Total() float64 {
	var total float64
	for _, p := range r.Points {
		total += p.Value
	}
	return total
}

// Last retorna o último valor da série, zero quando vazia
func (r AggregationResult) Last() float64 {
	if len(r.Points) == 0 {
		return 0
	}
	return r.Points[len(r.Points)-1].Value
}

// Category é uma fatia de um breakdown categórico
type Category struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
	Color string  `json:"color"`
}

type BreakdownResult struct {
	Categories []Category `json:"categories"`
}

// Find retorna a categoria com o rótulo informado
func (b BreakdownResult) Find(label string) (Category, bool) {
	for _, c := range b.Categories {
		if c.Label == label {
			return c, true
		}
	}
	return Category{}, false
}

// TotalCount soma as contagens de todas as categorias
func (b BreakdownResult) TotalCount() int {
	total := 0
	for _, c := range b.Categories {
		total += c.Count
	}
	return total
}

// Dataset agrupa séries alinhadas aos mesmos rótulos, pronto para gráficos.
// Order guarda a ordem de inserção das séries, usada na exportação.
type Dataset struct {
	Labels []string             `json:"labels"`
	Series map[string][]float64 `json:"series"`
	Order  []string             `json:"order"`
}
