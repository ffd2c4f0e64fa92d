package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/business-reports-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-reports-api/internal/domain"
)

const callsTable = "calls"

var callColumns = []string{
	"id",
	"organization_id",
	"start_time",
	"end_time",
	"duration",
	"call_type",
	"direction",
	"sentiment",
}

type CallRepository interface {
	ListByOrganization(ctx context.Context, organizationID string) ([]domain.Call, error)
}

type callRepository struct {
	conn postgres.Queryer
}

func NewCallRepository(conn postgres.Queryer) CallRepository {
	return &callRepository{
		conn: conn,
	}
}

// ligações não têm created_at; a ordenação segue o início da chamada
func listCallsQuery(organizationID string) (string, []any, error) {
	return squirrel.
		Select(callColumns...).
		From(callsTable).
		Where(squirrel.Eq{"organization_id": organizationID}).
		OrderBy("start_time ASC NULLS LAST").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *callRepository) ListByOrganization(ctx context.Context, organizationID string) ([]domain.Call, error) {
	query, args, err := listCallsQuery(organizationID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de ligações")
	}

	calls, err := queryAll(ctx, r.conn, query, args, scanCall)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao listar ligações da organização %s", organizationID)
	}

	return calls, nil
}

func scanCall(row rowScanner) (domain.Call, error) {
	var (
		call      domain.Call
		startTime sql.NullTime
		endTime   sql.NullTime
		duration  sql.NullInt64
		callType  sql.NullString
		direction sql.NullString
		sentiment sql.NullString
	)

	err := row.Scan(
		&call.ID,
		&call.OrganizationID,
		&startTime,
		&endTime,
		&duration,
		&callType,
		&direction,
		&sentiment,
	)
	if err != nil {
		return domain.Call{}, err
	}

	call.StartTime = timePtr(startTime)
	call.EndTime = timePtr(endTime)
	call.DurationSeconds = int64Ptr(duration)
	call.CallType = callType.String
	call.Direction = direction.String
	call.Sentiment = stringPtr(sentiment)

	return call, nil
}
