package domain

import "time"

// ReportSection identifica uma seção do painel de relatórios
type ReportSection string

const (
	SectionOverview      ReportSection = "overview"
	SectionRevenue       ReportSection = "revenue"
	SectionSubscriptions ReportSection = "subscriptions"
	SectionCustomers     ReportSection = "customers"
	SectionCalls         ReportSection = "calls"
	SectionPipeline      ReportSection = "pipeline"
)

// ReportSections lista as seções na ordem em que aparecem no painel
var ReportSections = []ReportSection{
	SectionOverview,
	SectionRevenue,
	SectionSubscriptions,
	SectionCustomers,
	SectionCalls,
	SectionPipeline,
}

func (s ReportSection) IsValid() bool {
	for _, section := range ReportSections {
		if s == section {
			return true
		}
	}
	return false
}

// ReportFilters reúne os parâmetros de uma requisição de relatório
type ReportFilters struct {
	OrganizationID string
	PeriodCount    int
	Granularity    string
	Reference      *time.Time
}

// ReportWindow descreve a janela de períodos usada para montar um relatório
type ReportWindow struct {
	Periods   []string  `json:"periods"`
	Labels    []string  `json:"labels"`
	Reference time.Time `json:"reference"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// DateRangeLabel retorna o intervalo no formato "2025-01-01 to 2025-06-30"
func (w ReportWindow) DateRangeLabel() string {
	if w.Start.IsZero() {
		return ""
	}
	return w.Start.Format(time.DateOnly) + " to " + w.End.Add(-time.Nanosecond).Format(time.DateOnly)
}

// RecordSet agrupa os registros brutos de uma organização
type RecordSet struct {
	Invoices      []Invoice      `json:"invoices"`
	Subscriptions []Subscription `json:"subscriptions"`
	Customers     []Customer     `json:"customers"`
	Calls         []Call         `json:"calls"`
	Deals         []Deal         `json:"deals"`
}

// SubscriptionMetrics é o retrato das assinaturas no período de referência
type SubscriptionMetrics struct {
	MRR               float64 `json:"mrr"`
	ARR               float64 `json:"arr"`
	ARPU              float64 `json:"arpu"`
	ActiveCount       int     `json:"active_count"`
	NewThisPeriod     int     `json:"new_this_period"`
	ChurnedThisPeriod int     `json:"churned_this_period"`
	ChurnRate         float64 `json:"churn_rate"`
}

// MRRTrendPoint é um ponto da tendência de receita recorrente mensal
type MRRTrendPoint struct {
	Label   string  `json:"label"`
	MRR     float64 `json:"mrr"`
	New     int     `json:"new"`
	Churned int     `json:"churned"`
}

type RevenueReport struct {
	Window          ReportWindow    `json:"window"`
	Trend           Dataset         `json:"trend"`
	ByStatus        BreakdownResult `json:"by_status"`
	AmountByStatus  BreakdownResult `json:"amount_by_status"`
	TotalRevenue    float64         `json:"total_revenue"`
	TotalPaid       float64         `json:"total_paid"`
	Outstanding     float64         `json:"outstanding"`
	Overdue         float64         `json:"overdue"`
	CollectionRate  float64         `json:"collection_rate"`
	Growth          float64         `json:"growth"`
	ExcludedRecords int             `json:"excluded_records"`
}

type SubscriptionReport struct {
	Window          ReportWindow        `json:"window"`
	Metrics         SubscriptionMetrics `json:"metrics"`
	MRRTrend        Dataset             `json:"mrr_trend"`
	ByPlan          BreakdownResult     `json:"by_plan"`
	ByStatus        BreakdownResult     `json:"by_status"`
	ExcludedRecords int                 `json:"excluded_records"`
}

type CustomerReport struct {
	Window           ReportWindow      `json:"window"`
	Growth           Dataset           `json:"growth"`
	CumulativeByDate AggregationResult `json:"cumulative_by_date"`
	ByType           BreakdownResult   `json:"by_type"`
	ByStatus         BreakdownResult   `json:"by_status"`
	TotalCustomers   int               `json:"total_customers"`
	ExcludedRecords  int               `json:"excluded_records"`
}

type CallReport struct {
	Window                 ReportWindow      `json:"window"`
	Volume                 Dataset           `json:"volume"`
	CumulativeByDate       AggregationResult `json:"cumulative_by_date"`
	ByType                 BreakdownResult   `json:"by_type"`
	ByDirection            BreakdownResult   `json:"by_direction"`
	BySentiment            BreakdownResult   `json:"by_sentiment"`
	TotalCalls             int               `json:"total_calls"`
	AverageDurationSeconds float64           `json:"average_duration_seconds"`
	PositiveShare          float64           `json:"positive_share"`
	ExcludedRecords        int               `json:"excluded_records"`
}

type PipelineReport struct {
	Window       ReportWindow    `json:"window"`
	ByStage      BreakdownResult `json:"by_stage"`
	ValueByStage BreakdownResult `json:"value_by_stage"`
	TotalDeals   int             `json:"total_deals"`
	OpenValue    float64         `json:"open_value"`
	WinRate      float64         `json:"win_rate"`
}

// OverviewReport traz os totais históricos exibidos nos cards do painel
type OverviewReport struct {
	Window              ReportWindow `json:"window"`
	TotalRevenue        float64      `json:"total_revenue"`
	TotalPaid           float64      `json:"total_paid"`
	CollectionRate      float64      `json:"collection_rate"`
	TotalCustomers      int          `json:"total_customers"`
	TotalCalls          int          `json:"total_calls"`
	MRR                 float64      `json:"mrr"`
	ActiveSubscriptions int          `json:"active_subscriptions"`
	Revenue             Dataset      `json:"revenue"`
}

// ExportFile é o resultado de uma exportação pronto para download ou gravação
type ExportFile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
}
