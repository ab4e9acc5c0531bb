package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ocenagor/admin-backend/internal/models"
)

// CommunicationRepository читает журнал исходящих писем и SMS.
// Записи в журнал пишет внешний сервис отправки, здесь только чтение.
type CommunicationRepository struct {
	db *sqlx.DB
}

func NewCommunicationRepository(db *sqlx.DB) *CommunicationRepository {
	return &CommunicationRepository{db: db}
}

// ListAll возвращает журнал целиком, свежие записи первыми.
func (r *CommunicationRepository) ListAll(ctx context.Context, channel string, limit, offset int) ([]models.Communication, error) {
	items := []models.Communication{}
	if channel == "" {
		err := r.db.SelectContext(ctx, &items, `
			SELECT * FROM communications ORDER BY created_at DESC LIMIT $1 OFFSET $2
		`, limit, offset)
		return items, err
	}
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM communications WHERE channel = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, channel, limit, offset)
	return items, err
}

// ListByCompanyIDs возвращает журнал по компаниям из списка.
func (r *CommunicationRepository) ListByCompanyIDs(ctx context.Context, companyIDs []uuid.UUID, channel string, limit, offset int) ([]models.Communication, error) {
	items := []models.Communication{}
	if len(companyIDs) == 0 {
		return items, nil
	}
	raw := make([]string, 0, len(companyIDs))
	for _, id := range companyIDs {
		raw = append(raw, id.String())
	}
	if channel == "" {
		err := r.db.SelectContext(ctx, &items, `
			SELECT * FROM communications WHERE company_id = ANY($1)
			ORDER BY created_at DESC LIMIT $2 OFFSET $3
		`, pq.Array(raw), limit, offset)
		return items, err
	}
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM communications WHERE company_id = ANY($1) AND channel = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4
	`, pq.Array(raw), channel, limit, offset)
	return items, err
}
