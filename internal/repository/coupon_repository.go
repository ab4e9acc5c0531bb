package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ocenagor/admin-backend/internal/models"
)

var (
	ErrCouponNotFound = errors.New("coupon not found")
	ErrCouponExists   = errors.New("coupon code already exists")
)

type CouponRepository struct {
	db *sqlx.DB
}

func NewCouponRepository(db *sqlx.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

// Create создаёт промокод. Код хранится в верхнем регистре.
func (r *CouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	coupon.Code = strings.ToUpper(coupon.Code)
	query := `
		INSERT INTO coupons (code, percent_off, max_redemptions, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, redeemed_count, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		coupon.Code, coupon.PercentOff, coupon.MaxRedemptions, coupon.ExpiresAt, coupon.IsActive,
	).Scan(&coupon.ID, &coupon.RedeemedCount, &coupon.CreatedAt)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrCouponExists
	}
	return err
}

// GetByID возвращает промокод по ID.
func (r *CouponRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.GetContext(ctx, &coupon, `SELECT * FROM coupons WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

// ListAll возвращает все промокоды, свежие первыми.
func (r *CouponRepository) ListAll(ctx context.Context) ([]models.Coupon, error) {
	coupons := []models.Coupon{}
	err := r.db.SelectContext(ctx, &coupons, `SELECT * FROM coupons ORDER BY created_at DESC`)
	return coupons, err
}

// Deactivate выключает промокод.
func (r *CouponRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE coupons SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCouponNotFound
	}
	return nil
}
