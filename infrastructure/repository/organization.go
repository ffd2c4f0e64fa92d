package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/business-reports-api/infrastructure/database/postgres"
)

const organizationsTable = "organizations"

type OrganizationRepository interface {
	// ListActiveIDs retorna os IDs das organizações ativas, usados na exportação agendada
	ListActiveIDs(ctx context.Context) ([]string, error)
}

type organizationRepository struct {
	conn postgres.Queryer
}

func NewOrganizationRepository(conn postgres.Queryer) OrganizationRepository {
	return &organizationRepository{
		conn: conn,
	}
}

func listActiveOrganizationsQuery() (string, []any, error) {
	return squirrel.
		Select("id").
		From(organizationsTable).
		Where(squirrel.Eq{"active": true}).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *organizationRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	query, args, err := listActiveOrganizationsQuery()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de organizações")
	}

	ids, err := queryAll(ctx, r.conn, query, args, func(row rowScanner) (string, error) {
		var id string
		err := row.Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar organizações ativas")
	}

	return ids, nil
}
