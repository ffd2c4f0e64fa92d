package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/vfg2006/business-reports-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-reports-api/internal/domain"
)

const customersTable = "customers"

var customerColumns = []string{"id", "organization_id", "customer_type", "status", "created_at"}

type CustomerRepository interface {
	ListByOrganization(ctx context.Context, organizationID string) ([]domain.Customer, error)
}

type customerRepository struct {
	conn postgres.Queryer
}

func NewCustomerRepository(conn postgres.Queryer) CustomerRepository {
	return &customerRepository{
		conn: conn,
	}
}

func (r *customerRepository) ListByOrganization(ctx context.Context, organizationID string) ([]domain.Customer, error) {
	query, args, err := listByOrganization(customersTable, customerColumns, organizationID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de clientes")
	}

	customers, err := queryAll(ctx, r.conn, query, args, scanCustomer)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao listar clientes da organização %s", organizationID)
	}

	return customers, nil
}

func scanCustomer(row rowScanner) (domain.Customer, error) {
	var (
		customer     domain.Customer
		customerType sql.NullString
		status       sql.NullString
		createdAt    sql.NullTime
	)

	if err := row.Scan(&customer.ID, &customer.OrganizationID, &customerType, &status, &createdAt); err != nil {
		return domain.Customer{}, err
	}

	customer.CustomerType = customerType.String
	customer.Status = status.String
	customer.CreatedAt = timePtr(createdAt)

	return customer, nil
}
