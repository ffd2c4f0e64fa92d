package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-reports-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-reports-api/internal/domain"
)

const invoicesTable = "invoices"

var invoiceColumns = []string{"id", "organization_id", "total_amount", "status", "created_at"}

type InvoiceRepository interface {
	ListByOrganization(ctx context.Context, organizationID string) ([]domain.Invoice, error)
}

type invoiceRepository struct {
	conn postgres.Queryer
}

func NewInvoiceRepository(conn postgres.Queryer) InvoiceRepository {
	return &invoiceRepository{
		conn: conn,
	}
}

func (r *invoiceRepository) ListByOrganization(ctx context.Context, organizationID string) ([]domain.Invoice, error) {
	query, args, err := listByOrganization(invoicesTable, invoiceColumns, organizationID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de faturas")
	}

	invoices, err := queryAll(ctx, r.conn, query, args, scanInvoice)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao listar faturas da organização %s", organizationID)
	}

	return invoices, nil
}

func scanInvoice(row rowScanner) (domain.Invoice, error) {
	var (
		invoice   domain.Invoice
		total     decimal.NullDecimal
		status    sql.NullString
		createdAt sql.NullTime
	)

	if err := row.Scan(&invoice.ID, &invoice.OrganizationID, &total, &status, &createdAt); err != nil {
		return domain.Invoice{}, err
	}

	invoice.TotalAmount = decimalPtr(total)
	invoice.Status = status.String
	invoice.CreatedAt = timePtr(createdAt)

	return invoice, nil
}
