package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ocenagor/admin-backend/internal/models"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create создаёт отзыв из публичного потока сбора.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (company_id, rating, email, phone, comment, feedback_options, flow_type, gamification_steps)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	return r.db.QueryRowxContext(ctx, query,
		review.CompanyID, review.Rating, review.Email, review.Phone, review.Comment,
		review.FeedbackOptions, review.FlowType, review.GamificationSteps,
	).Scan(&review.ID, &review.CreatedAt)
}

// GetByID возвращает отзыв по ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.db.GetContext(ctx, &review, `SELECT * FROM reviews WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

// ListAll возвращает отзывы без ограничения по компаниям (для суперадмина).
// limit — потолок выборки, свежие отзывы первыми.
func (r *ReviewRepository) ListAll(ctx context.Context, limit int) ([]models.Review, error) {
	reviews := []models.Review{}
	err := r.db.SelectContext(ctx, &reviews, `
		SELECT * FROM reviews ORDER BY created_at DESC LIMIT $1
	`, limit)
	return reviews, err
}

// ListByCompanyIDs возвращает отзывы компаний из списка.
func (r *ReviewRepository) ListByCompanyIDs(ctx context.Context, companyIDs []uuid.UUID, limit int) ([]models.Review, error) {
	reviews := []models.Review{}
	if len(companyIDs) == 0 {
		return reviews, nil
	}
	ids := make([]string, 0, len(companyIDs))
	for _, id := range companyIDs {
		ids = append(ids, id.String())
	}
	err := r.db.SelectContext(ctx, &reviews, `
		SELECT * FROM reviews WHERE company_id = ANY($1) ORDER BY created_at DESC LIMIT $2
	`, pq.Array(ids), limit)
	return reviews, err
}

// MarkCompleted отмечает завершение потока: completed_at, шаги геймификации
// и, если был переход в Google, момент и способ перехода.
func (r *ReviewRepository) MarkCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time, steps []string, redirectedAt *time.Time, redirectMethod *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reviews
		SET completed_at = $2,
		    gamification_steps = $3,
		    redirected_to_google_at = $4,
		    redirect_method = $5
		WHERE id = $1 AND completed_at IS NULL
	`, id, completedAt, pq.StringArray(steps), redirectedAt, redirectMethod)
	if err != nil {
		return fmt.Errorf("review repository: mark completed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// CountByCompanyID возвращает количество отзывов компании.
func (r *ReviewRepository) CountByCompanyID(ctx context.Context, companyID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM reviews WHERE company_id = $1`, companyID)
	if err != nil {
		return 0, fmt.Errorf("review repository: count by company: %w", err)
	}
	return count, nil
}

// Delete удаляет отзыв.
func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	return err
}
