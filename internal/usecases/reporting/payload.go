package reporting

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-reports-api/internal/domain"
	"github.com/vfg2006/business-reports-api/pkg/utils"
)

// RecordPayload é o corpo aceito por Compute. As datas chegam como texto
// e valores que não podem ser interpretados viram datas ausentes.
type RecordPayload struct {
	Invoices      []InvoicePayload      `json:"invoices"`
	Subscriptions []SubscriptionPayload `json:"subscriptions"`
	Customers     []CustomerPayload     `json:"customers"`
	Calls         []CallPayload         `json:"calls"`
	Deals         []DealPayload         `json:"deals"`
}

type InvoicePayload struct {
	ID          string           `json:"id"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	Status      string           `json:"status"`
	CreatedAt   string           `json:"created_at"`
}

type SubscriptionPayload struct {
	ID         string `json:"id"`
	PlanName   string `json:"plan_name"`
	PlanAmount *int64 `json:"plan_amount"`
	Interval   string `json:"interval"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	CanceledAt string `json:"canceled_at"`
}

type CustomerPayload struct {
	ID           string `json:"id"`
	CustomerType string `json:"customer_type"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

type CallPayload struct {
	ID        string  `json:"id"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Duration  *int64  `json:"duration"`
	CallType  string  `json:"call_type"`
	Direction string  `json:"direction"`
	Sentiment *string `json:"sentiment"`
}

type DealPayload struct {
	ID        string           `json:"id"`
	Stage     string           `json:"stage"`
	Value     *decimal.Decimal `json:"value"`
	Status    string           `json:"status"`
	CreatedAt string           `json:"created_at"`
}

// timestampParser conta os textos preenchidos que não puderam ser convertidos
type timestampParser struct {
	loc     *time.Location
	invalid int
}

func (p *timestampParser) parse(value string) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	ts := utils.ParseTimestamp(value, p.loc)
	if ts == nil {
		p.invalid++
	}
	return ts
}

// Records converte o payload em registros de domínio da organização.
// Retorna também quantas datas preenchidas eram inválidas.
func (p RecordPayload) Records(organizationID string, loc *time.Location) (domain.RecordSet, int) {
	parser := &timestampParser{loc: loc}

	records := domain.RecordSet{
		Invoices: lo.Map(p.Invoices, func(i InvoicePayload, _ int) domain.Invoice {
			return domain.Invoice{
				ID:             i.ID,
				OrganizationID: organizationID,
				TotalAmount:    i.TotalAmount,
				Status:         i.Status,
				CreatedAt:      parser.parse(i.CreatedAt),
			}
		}),
		Subscriptions: lo.Map(p.Subscriptions, func(s SubscriptionPayload, _ int) domain.Subscription {
			return domain.Subscription{
				ID:             s.ID,
				OrganizationID: organizationID,
				PlanName:       s.PlanName,
				PlanAmount:     s.PlanAmount,
				Interval:       s.Interval,
				Status:         s.Status,
				CreatedAt:      parser.parse(s.CreatedAt),
				CanceledAt:     parser.parse(s.CanceledAt),
			}
		}),
		Customers: lo.Map(p.Customers, func(c CustomerPayload, _ int) domain.Customer {
			return domain.Customer{
				ID:             c.ID,
				OrganizationID: organizationID,
				CustomerType:   c.CustomerType,
				Status:         c.Status,
				CreatedAt:      parser.parse(c.CreatedAt),
			}
		}),
		Calls: lo.Map(p.Calls, func(c CallPayload, _ int) domain.Call {
			return domain.Call{
				ID:              c.ID,
				OrganizationID:  organizationID,
				StartTime:       parser.parse(c.StartTime),
				EndTime:         parser.parse(c.EndTime),
				DurationSeconds: c.Duration,
				CallType:        c.CallType,
				Direction:       c.Direction,
				Sentiment:       c.Sentiment,
			}
		}),
		Deals: lo.Map(p.Deals, func(d DealPayload, _ int) domain.Deal {
			return domain.Deal{
				ID:             d.ID,
				OrganizationID: organizationID,
				Stage:          d.Stage,
				Value:          d.Value,
				Status:         d.Status,
				CreatedAt:      parser.parse(d.CreatedAt),
			}
		}),
	}

	return records, parser.invalid
}
