package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-reports-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-reports-api/internal/domain"
)

const dealsTable = "deals"

var dealColumns = []string{"id", "organization_id", "stage", "value", "status", "created_at"}

type DealRepository interface {
	ListByOrganization(ctx context.Context, organizationID string) ([]domain.Deal, error)
}

type dealRepository struct {
	conn postgres.Queryer
}

func NewDealRepository(conn postgres.Queryer) DealRepository {
	return &dealRepository{
		conn: conn,
	}
}

func (r *dealRepository) ListByOrganization(ctx context.Context, organizationID string) ([]domain.Deal, error) {
	query, args, err := listByOrganization(dealsTable, dealColumns, organizationID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de negócios")
	}

	deals, err := queryAll(ctx, r.conn, query, args, scanDeal)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao listar negócios da organização %s", organizationID)
	}

	return deals, nil
}

func scanDeal(row rowScanner) (domain.Deal, error) {
	var (
		deal      domain.Deal
		stage     sql.NullString
		value     decimal.NullDecimal
		status    sql.NullString
		createdAt sql.NullTime
	)

	if err := row.Scan(&deal.ID, &deal.OrganizationID, &stage, &value, &status, &createdAt); err != nil {
		return domain.Deal{}, err
	}

	deal.Stage = stage.String
	deal.Value = decimalPtr(value)
	deal.Status = status.String
	deal.CreatedAt = timePtr(createdAt)

	return deal, nil
}
