package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-reports-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-reports-api/internal/config"
	"github.com/vfg2006/business-reports-api/pkg/log"
	"github.com/vfg2006/business-reports-api/pkg/utils"
)

const (
	demoOrganizations = 2
	demoMonths        = 12
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS organizations (
		id VARCHAR(32) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id VARCHAR(32) PRIMARY KEY,
		organization_id VARCHAR(32) NOT NULL REFERENCES organizations(id),
		total_amount NUMERIC(14, 2),
		status VARCHAR(32),
		created_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS subscriptions (
		id VARCHAR(32) PRIMARY KEY,
		organization_id VARCHAR(32) NOT NULL REFERENCES organizations(id),
		plan_name VARCHAR(255),
		plan_amount BIGINT,
		interval VARCHAR(16),
		status VARCHAR(32),
		created_at TIMESTAMPTZ,
		canceled_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id VARCHAR(32) PRIMARY KEY,
		organization_id VARCHAR(32) NOT NULL REFERENCES organizations(id),
		customer_type VARCHAR(32),
		status VARCHAR(32),
		created_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS calls (
		id VARCHAR(32) PRIMARY KEY,
		organization_id VARCHAR(32) NOT NULL REFERENCES organizations(id),
		start_time TIMESTAMPTZ,
		end_time TIMESTAMPTZ,
		duration BIGINT,
		call_type VARCHAR(32),
		direction VARCHAR(16),
		sentiment VARCHAR(16)
	)`,
	`CREATE TABLE IF NOT EXISTS deals (
		id VARCHAR(32) PRIMARY KEY,
		organization_id VARCHAR(32) NOT NULL REFERENCES organizations(id),
		stage VARCHAR(32),
		value NUMERIC(14, 2),
		status VARCHAR(32),
		created_at TIMESTAMPTZ
	)`,
}

var (
	invoiceStatuses  = []string{"paid", "paid", "paid", "sent", "overdue", "draft"}
	plans            = []string{"Starter", "Pro", "Enterprise"}
	planAmounts      = map[string]int64{"Starter": 2900, "Pro": 9900, "Enterprise": 49900} // centavos
	customerTypes    = []string{"individual", "business"}
	customerStatuses = []string{"active", "active", "lead", "inactive"}
	callTypes        = []string{"human", "ai_agent"}
	directions       = []string{"inbound", "outbound"}
	sentiments       = []string{"positive", "neutral", "negative"}
	dealStages       = []string{"lead", "qualified", "proposal", "negotiation", "won", "lost"}
)

type seeder struct {
	tx  *sql.Tx
	rnd *rand.Rand
	now time.Time
}

func main() {
	log.Configure("info", os.Stdout)
	logrus.Info("Iniciando script de carga de dados de demonstração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx := context.Background()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			logrus.WithError(err).Fatal("Erro ao criar tabelas")
		}
	}
	logrus.Info("Tabelas verificadas")

	startTime := time.Now()
	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		s := seeder{tx: tx, rnd: rand.New(rand.NewSource(42)), now: time.Now().UTC()}
		for i := 0; i < demoOrganizations; i++ {
			if err := s.seedOrganization(ctx, fmt.Sprintf("Organização Demo %d", i+1)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inserir dados de demonstração")
	}

	logrus.Infof("Carga concluída em %v", time.Since(startTime))
}

func (s seeder) seedOrganization(ctx context.Context, name string) error {
	organizationID, err := utils.GenerateID()
	if err != nil {
		return err
	}

	if err := s.insert(ctx, squirrel.Insert("organizations").
		Columns("id", "name", "active").
		Values(organizationID, name, true)); err != nil {
		return errors.Wrap(err, "organizations")
	}

	steps := []struct {
		table string
		fn    func(ctx context.Context, organizationID string) (int, error)
	}{
		{"invoices", s.seedInvoices},
		{"subscriptions", s.seedSubscriptions},
		{"customers", s.seedCustomers},
		{"calls", s.seedCalls},
		{"deals", s.seedDeals},
	}

	for _, step := range steps {
		count, err := step.fn(ctx, organizationID)
		if err != nil {
			return errors.Wrap(err, step.table)
		}
		logrus.WithFields(logrus.Fields{
			"organization_id": organizationID,
			"table":           step.table,
			"count":           count,
		}).Info("Registros inseridos")
	}

	return nil
}

func (s seeder) seedInvoices(ctx context.Context, organizationID string) (int, error) {
	query := squirrel.Insert("invoices").Columns("id", "organization_id", "total_amount", "status", "created_at")
	count := 0
	for month := 0; month < demoMonths; month++ {
		n := 5 + s.rnd.Intn(10)
		for i := 0; i < n; i++ {
			id, err := utils.GenerateID()
			if err != nil {
				return 0, err
			}
			amount := decimal.NewFromInt(int64(50 + s.rnd.Intn(950))).Add(decimal.New(int64(s.rnd.Intn(100)), -2))
			query = query.Values(id, organizationID, amount, pick(s.rnd, invoiceStatuses), s.dayIn(month))
			count++
		}
	}
	return count, s.insert(ctx, query)
}

func (s seeder) seedSubscriptions(ctx context.Context, organizationID string) (int, error) {
	query := squirrel.Insert("subscriptions").
		Columns("id", "organization_id", "plan_name", "plan_amount", "interval", "status", "created_at", "canceled_at")
	count := 0
	for month := 0; month < demoMonths; month++ {
		n := 2 + s.rnd.Intn(4)
		for i := 0; i < n; i++ {
			id, err := utils.GenerateID()
			if err != nil {
				return 0, err
			}
			plan := pick(s.rnd, plans)
			createdAt := s.dayIn(month)
			status := "active"
			var canceledAt *time.Time
			if s.rnd.Intn(5) == 0 && month > 0 {
				status = "canceled"
				canceled := s.dayIn(s.rnd.Intn(month))
				if canceled.After(createdAt) {
					canceledAt = &canceled
				} else {
					status = "active"
				}
			}
			query = query.Values(id, organizationID, plan, planAmounts[plan], "month", status, createdAt, canceledAt)
			count++
		}
	}
	return count, s.insert(ctx, query)
}

func (s seeder) seedCustomers(ctx context.Context, organizationID string) (int, error) {
	query := squirrel.Insert("customers").Columns("id", "organization_id", "customer_type", "status", "created_at")
	count := 0
	for month := 0; month < demoMonths; month++ {
		n := 3 + s.rnd.Intn(8)
		for i := 0; i < n; i++ {
			id, err := utils.GenerateID()
			if err != nil {
				return 0, err
			}
			query = query.Values(id, organizationID, pick(s.rnd, customerTypes), pick(s.rnd, customerStatuses), s.dayIn(month))
			count++
		}
	}
	return count, s.insert(ctx, query)
}

func (s seeder) seedCalls(ctx context.Context, organizationID string) (int, error) {
	query := squirrel.Insert("calls").
		Columns("id", "organization_id", "start_time", "end_time", "duration", "call_type", "direction", "sentiment")
	count := 0
	for month := 0; month < demoMonths; month++ {
		n := 10 + s.rnd.Intn(20)
		for i := 0; i < n; i++ {
			id, err := utils.GenerateID()
			if err != nil {
				return 0, err
			}
			start := s.dayIn(month)
			duration := int64(30 + s.rnd.Intn(1200))
			end := start.Add(time.Duration(duration) * time.Second)
			var sentiment *string
			if s.rnd.Intn(6) > 0 {
				value := pick(s.rnd, sentiments)
				sentiment = &value
			}
			query = query.Values(id, organizationID, start, end, duration, pick(s.rnd, callTypes), pick(s.rnd, directions), sentiment)
			count++
		}
	}
	return count, s.insert(ctx, query)
}

func (s seeder) seedDeals(ctx context.Context, organizationID string) (int, error) {
	query := squirrel.Insert("deals").Columns("id", "organization_id", "stage", "value", "status", "created_at")
	count := 0
	for month := 0; month < demoMonths; month++ {
		n := 2 + s.rnd.Intn(5)
		for i := 0; i < n; i++ {
			id, err := utils.GenerateID()
			if err != nil {
				return 0, err
			}
			stage := pick(s.rnd, dealStages)
			status := "open"
			if stage == "won" || stage == "lost" {
				status = stage
			}
			value := decimal.NewFromInt(int64(500 + s.rnd.Intn(20000)))
			query = query.Values(id, organizationID, stage, value, status, s.dayIn(month))
			count++
		}
	}
	return count, s.insert(ctx, query)
}

// dayIn devolve um instante aleatório dentro do mês monthsAgo meses antes do atual
func (s seeder) dayIn(monthsAgo int) time.Time {
	first := time.Date(s.now.Year(), s.now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -monthsAgo, 0)
	limit := first.AddDate(0, 1, 0)
	if limit.After(s.now) {
		limit = s.now
	}
	span := limit.Sub(first)
	if span <= 0 {
		return first
	}
	return first.Add(time.Duration(s.rnd.Int63n(int64(span))))
}

func (s seeder) insert(ctx context.Context, query squirrel.InsertBuilder) error {
	sqlQuery, args, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}
	_, err = s.tx.ExecContext(ctx, sqlQuery, args...)
	return err
}

func pick(rnd *rand.Rand, values []string) string {
	return values[rnd.Intn(len(values))]
}
