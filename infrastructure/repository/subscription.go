package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/vfg2006/business-reports-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-reports-api/internal/domain"
)

const subscriptionsTable = "subscriptions"

var subscriptionColumns = []string{
	"id",
	"organization_id",
	"plan_name",
	"plan_amount",
	"interval",
	"status",
	"created_at",
	"canceled_at",
}

type SubscriptionRepository interface {
	ListByOrganization(ctx context.Context, organizationID string) ([]domain.Subscription, error)
}

type subscriptionRepository struct {
	conn postgres.Queryer
}

func NewSubscriptionRepository(conn postgres.Queryer) SubscriptionRepository {
	return &subscriptionRepository{
		conn: conn,
	}
}

func (r *subscriptionRepository) ListByOrganization(ctx context.Context, organizationID string) ([]domain.Subscription, error) {
	query, args, err := listByOrganization(subscriptionsTable, subscriptionColumns, organizationID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de assinaturas")
	}

	subscriptions, err := queryAll(ctx, r.conn, query, args, scanSubscription)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao listar assinaturas da organização %s", organizationID)
	}

	return subscriptions, nil
}

func scanSubscription(row rowScanner) (domain.Subscription, error) {
	var (
		sub        domain.Subscription
		planName   sql.NullString
		planAmount sql.NullInt64
		interval   sql.NullString
		status     sql.NullString
		createdAt  sql.NullTime
		canceledAt sql.NullTime
	)

	err := row.Scan(
		&sub.ID,
		&sub.OrganizationID,
		&planName,
		&planAmount,
		&interval,
		&status,
		&createdAt,
		&canceledAt,
	)
	if err != nil {
		return domain.Subscription{}, err
	}

	sub.PlanName = planName.String
	sub.PlanAmount = int64Ptr(planAmount)
	sub.Interval = interval.String
	sub.Status = status.String
	sub.CreatedAt = timePtr(createdAt)
	sub.CanceledAt = timePtr(canceledAt)

	return sub, nil
}
