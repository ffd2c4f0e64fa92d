package repository

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow copia valores pré-definidos para os destinos do Scan
type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch target := d.(type) {
		case *string:
			*target = f.values[i].(string)
		case *sql.NullString:
			*target = f.values[i].(sql.NullString)
		case *sql.NullInt64:
			*target = f.values[i].(sql.NullInt64)
		case *sql.NullTime:
			*target = f.values[i].(sql.NullTime)
		case *decimal.NullDecimal:
			*target = f.values[i].(decimal.NullDecimal)
		}
	}
	return nil
}

func TestListByOrganizationQuery(t *testing.T) {
	tests := []struct {
		name     string
		table    string
		columns  []string
		expected string
	}{
		{
			name:     "Faturas",
			table:    invoicesTable,
			columns:  invoiceColumns,
			expected: "SELECT id, organization_id, total_amount, status, created_at FROM invoices WHERE organization_id = $1 ORDER BY created_at ASC",
		},
		{
			name:     "Assinaturas",
			table:    subscriptionsTable,
			columns:  subscriptionColumns,
			expected: "SELECT id, organization_id, plan_name, plan_amount, interval, status, created_at, canceled_at FROM subscriptions WHERE organization_id = $1 ORDER BY created_at ASC",
		},
		{
			name:     "Clientes",
			table:    customersTable,
			columns:  customerColumns,
			expected: "SELECT id, organization_id, customer_type, status, created_at FROM customers WHERE organization_id = $1 ORDER BY created_at ASC",
		},
		{
			name:     "Negócios",
			table:    dealsTable,
			columns:  dealColumns,
			expected: "SELECT id, organization_id, stage, value, status, created_at FROM deals WHERE organization_id = $1 ORDER BY created_at ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := listByOrganization(tt.table, tt.columns, "org-1")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, query)
			assert.Equal(t, []any{"org-1"}, args)
		})
	}
}

func TestListCallsQuery(t *testing.T) {
	query, args, err := listCallsQuery("org-1")
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, organization_id, start_time, end_time, duration, call_type, direction, sentiment FROM calls WHERE organization_id = $1 ORDER BY start_time ASC NULLS LAST", query)
	assert.Equal(t, []any{"org-1"}, args)
}

func TestListActiveOrganizationsQuery(t *testing.T) {
	query, args, err := listActiveOrganizationsQuery()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM organizations WHERE active = $1 ORDER BY id ASC", query)
	assert.Equal(t, []any{true}, args)
}

func TestScanInvoice(t *testing.T) {
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Preenche os campos quando as colunas têm valor", func(t *testing.T) {
		row := fakeRow{values: []any{
			"inv-1",
			"org-1",
			decimal.NullDecimal{Decimal: decimal.RequireFromString("150.75"), Valid: true},
			sql.NullString{String: "paid", Valid: true},
			sql.NullTime{Time: created, Valid: true},
		}}

		invoice, err := scanInvoice(row)
		require.NoError(t, err)
		assert.Equal(t, "inv-1", invoice.ID)
		assert.Equal(t, "org-1", invoice.OrganizationID)
		assert.Equal(t, "paid", invoice.Status)
		require.NotNil(t, invoice.CreatedAt)
		assert.True(t, created.Equal(*invoice.CreatedAt))
		assert.True(t, decimal.RequireFromString("150.75").Equal(invoice.Amount()))
	})

	t.Run("Colunas nulas viram ponteiros nulos", func(t *testing.T) {
		row := fakeRow{values: []any{
			"inv-2",
			"org-1",
			decimal.NullDecimal{},
			sql.NullString{},
			sql.NullTime{},
		}}

		invoice, err := scanInvoice(row)
		require.NoError(t, err)
		assert.Nil(t, invoice.TotalAmount)
		assert.Nil(t, invoice.CreatedAt)
		assert.Empty(t, invoice.Status)
		assert.True(t, invoice.Amount().IsZero())
	})

	t.Run("Propaga erro do scan", func(t *testing.T) {
		_, err := scanInvoice(fakeRow{err: errors.New("boom")})
		assert.EqualError(t, err, "boom")
	})
}

func TestScanSubscription(t *testing.T) {
	created := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	canceled := time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)

	row := fakeRow{values: []any{
		"sub-1",
		"org-1",
		sql.NullString{String: "Pro", Valid: true},
		sql.NullInt64{Int64: 1000, Valid: true},
		sql.NullString{String: "month", Valid: true},
		sql.NullString{String: "canceled", Valid: true},
		sql.NullTime{Time: created, Valid: true},
		sql.NullTime{Time: canceled, Valid: true},
	}}

	sub, err := scanSubscription(row)
	require.NoError(t, err)
	assert.Equal(t, "Pro", sub.PlanName)
	assert.Equal(t, int64(1000), sub.AmountMinorUnits())
	assert.Equal(t, "month", sub.Interval)
	assert.Equal(t, "canceled", sub.Status)
	require.NotNil(t, sub.CanceledAt)
	assert.True(t, canceled.Equal(*sub.CanceledAt))
}

func TestScanCall(t *testing.T) {
	start := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)

	tests := []struct {
		name             string
		duration         sql.NullInt64
		sentiment        sql.NullString
		expectedDuration int64
		expectSentiment  bool
	}{
		{
			name:             "Usa a duração gravada",
			duration:         sql.NullInt64{Int64: 120, Valid: true},
			sentiment:        sql.NullString{String: "positive", Valid: true},
			expectedDuration: 120,
			expectSentiment:  true,
		},
		{
			name:             "Sem duração gravada calcula pelo início e fim",
			duration:         sql.NullInt64{},
			sentiment:        sql.NullString{},
			expectedDuration: 90,
			expectSentiment:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := fakeRow{values: []any{
				"call-1",
				"org-1",
				sql.NullTime{Time: start, Valid: true},
				sql.NullTime{Time: end, Valid: true},
				tt.duration,
				sql.NullString{String: "ai_agent", Valid: true},
				sql.NullString{String: "inbound", Valid: true},
				tt.sentiment,
			}}

			call, err := scanCall(row)
			require.NoError(t, err)
			assert.Equal(t, "ai_agent", call.CallType)
			assert.Equal(t, "inbound", call.Direction)
			assert.Equal(t, tt.expectedDuration, call.Duration())
			assert.Equal(t, tt.expectSentiment, call.Sentiment != nil)
		})
	}
}

func TestScanCustomerAndDeal(t *testing.T) {
	customer, err := scanCustomer(fakeRow{values: []any{
		"cus-1",
		"org-1",
		sql.NullString{String: "business", Valid: true},
		sql.NullString{String: "active", Valid: true},
		sql.NullTime{},
	}})
	require.NoError(t, err)
	assert.Equal(t, "business", customer.CustomerType)
	assert.Nil(t, customer.CreatedAt)

	deal, err := scanDeal(fakeRow{values: []any{
		"deal-1",
		"org-1",
		sql.NullString{String: "proposal", Valid: true},
		decimal.NullDecimal{Decimal: decimal.NewFromInt(5000), Valid: true},
		sql.NullString{String: "open", Valid: true},
		sql.NullTime{},
	}})
	require.NoError(t, err)
	assert.Equal(t, "proposal", deal.Stage)
	assert.True(t, decimal.NewFromInt(5000).Equal(deal.Amount()))
}
