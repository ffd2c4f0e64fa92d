package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de fatura conhecidos. Outros valores vindos da base são aceitos.
const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
)

const (
	CustomerTypePersonal = "personal"
	CustomerTypeBusiness = "business"
)

const (
	CallTypeHuman   = "human"
	CallTypeAIAgent = "ai_agent"

	CallDirectionInbound  = "inbound"
	CallDirectionOutbound = "outbound"

	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

const (
	DealStatusOpen = "open"
	DealStatusWon  = "won"
	DealStatusLost = "lost"
)

// Invoice representa uma fatura de cobrança já filtrada pela organização
type Invoice struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organization_id"`
	TotalAmount    *decimal.Decimal `json:"total_amount"`
	Status         string           `json:"status"`
	CreatedAt      *time.Time       `json:"created_at"`
}

// Amount retorna o total da fatura, zero quando ausente
func (i Invoice) Amount() decimal.Decimal {
	if i.TotalAmount == nil {
		return decimal.Zero
	}
	return *i.TotalAmount
}

// Subscription representa o ciclo de vida de uma assinatura.
// PlanAmount está em unidades menores da moeda (centavos).
type Subscription struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id"`
	PlanName       string     `json:"plan_name"`
	PlanAmount     *int64     `json:"plan_amount"`
	Interval       string     `json:"interval"`
	Status         string     `json:"status"`
	CreatedAt      *time.Time `json:"created_at"`
	CanceledAt     *time.Time `json:"canceled_at"`
}

// AmountMinorUnits retorna o valor do plano em centavos, zero quando ausente
func (s Subscription) AmountMinorUnits() int64 {
	if s.PlanAmount == nil {
		return 0
	}
	return *s.PlanAmount
}

type Customer struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id"`
	CustomerType   string     `json:"customer_type"`
	Status         string     `json:"status"`
	CreatedAt      *time.Time `json:"created_at"`
}

// Call representa uma ligação (humana ou de agente de IA)
type Call struct {
	ID              string     `json:"id"`
	OrganizationID  string     `json:"organization_id"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationSeconds *int64     `json:"duration"`
	CallType        string     `json:"call_type"`
	Direction       string     `json:"direction"`
	Sentiment       *string    `json:"sentiment"`
}

// Duration retorna a duração em segundos. Sem duração gravada, usa o
// intervalo entre início e fim; sem nenhum dos dois, zero.
func (c Call) Duration() int64 {
	if c.DurationSeconds != nil {
		return *c.DurationSeconds
	}
	if c.StartTime != nil && c.EndTime != nil && c.EndTime.After(*c.StartTime) {
		return int64(c.EndTime.Sub(*c.StartTime) / time.Second)
	}
	return 0
}

// Deal representa uma oportunidade do pipeline de vendas
type Deal struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organization_id"`
	Stage          string           `json:"stage"`
	Value          *decimal.Decimal `json:"value"`
	Status         string           `json:"status"`
	CreatedAt      *time.Time       `json:"created_at"`
}

func (d Deal) Amount() decimal.Decimal {
	if d.Value == nil {
		return decimal.Zero
	}
	return *d.Value
}
