package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ocenagor/admin-backend/internal/models"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// GetByCompanyID возвращает актуальную подписку компании.
func (r *SubscriptionRepository) GetByCompanyID(ctx context.Context, companyID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.GetContext(ctx, &sub, `
		SELECT * FROM subscriptions WHERE company_id = $1 ORDER BY created_at DESC LIMIT 1
	`, companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// ListAll возвращает подписки, опционально отфильтрованные по статусу.
func (r *SubscriptionRepository) ListAll(ctx context.Context, status string) ([]models.Subscription, error) {
	subs := []models.Subscription{}
	if status == "" {
		err := r.db.SelectContext(ctx, &subs, `SELECT * FROM subscriptions ORDER BY created_at DESC`)
		return subs, err
	}
	err := r.db.SelectContext(ctx, &subs, `
		SELECT * FROM subscriptions WHERE status = $1 ORDER BY created_at DESC
	`, status)
	return subs, err
}

// ListByCompanyIDs возвращает подписки компаний из списка.
func (r *SubscriptionRepository) ListByCompanyIDs(ctx context.Context, companyIDs []uuid.UUID, status string) ([]models.Subscription, error) {
	subs := []models.Subscription{}
	if len(companyIDs) == 0 {
		return subs, nil
	}
	raw := make([]string, 0, len(companyIDs))
	for _, id := range companyIDs {
		raw = append(raw, id.String())
	}
	if status == "" {
		err := r.db.SelectContext(ctx, &subs, `
			SELECT * FROM subscriptions WHERE company_id = ANY($1) ORDER BY created_at DESC
		`, pq.Array(raw))
		return subs, err
	}
	err := r.db.SelectContext(ctx, &subs, `
		SELECT * FROM subscriptions WHERE company_id = ANY($1) AND status = $2 ORDER BY created_at DESC
	`, pq.Array(raw), status)
	return subs, err
}

// CountActive возвращает количество действующих подписок
// (оплаченных и триальных).
func (r *SubscriptionRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM subscriptions WHERE status IN ($1, $2)
	`, models.SubscriptionActive, models.SubscriptionTrialing)
	return count, err
}

// CountActiveByCompanyIDs — то же, но только для компаний из списка.
func (r *SubscriptionRepository) CountActiveByCompanyIDs(ctx context.Context, companyIDs []uuid.UUID) (int, error) {
	if len(companyIDs) == 0 {
		return 0, nil
	}
	raw := make([]string, 0, len(companyIDs))
	for _, id := range companyIDs {
		raw = append(raw, id.String())
	}
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM subscriptions WHERE company_id = ANY($1) AND status IN ($2, $3)
	`, pq.Array(raw), models.SubscriptionActive, models.SubscriptionTrialing)
	return count, err
}
