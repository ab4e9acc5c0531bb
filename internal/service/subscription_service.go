package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ocenagor/admin-backend/internal/models"
	"github.com/ocenagor/admin-backend/internal/pkg/apperror"
	"github.com/ocenagor/admin-backend/internal/validation"
)

// SubscriptionRepository описывает доступ к подпискам.
type SubscriptionRepository interface {
	GetByCompanyID(ctx context.Context, companyID uuid.UUID) (*models.Subscription, error)
	ListAll(ctx context.Context, status string) ([]models.Subscription, error)
	ListByCompanyIDs(ctx context.Context, companyIDs []uuid.UUID, status string) ([]models.Subscription, error)
}

// CouponRepository описывает доступ к промокодам.
type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	ListAll(ctx context.Context) ([]models.Coupon, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// SubscriptionService — подписки и промокоды в админ-панели.
type SubscriptionService struct {
	subscriptions SubscriptionRepository
	coupons       CouponRepository
}

func NewSubscriptionService(subscriptions SubscriptionRepository, coupons CouponRepository) *SubscriptionService {
	return &SubscriptionService{subscriptions: subscriptions, coupons: coupons}
}

// List возвращает подписки в области видимости, опционально по статусу.
func (s *SubscriptionService) List(ctx context.Context, scope models.AccessScope, status string) ([]models.Subscription, error) {
	if _, ok := models.ValidSubscriptionStatuses[status]; status != "" && !ok {
		return nil, fmt.Errorf("subscription service: неизвестный статус %q", status)
	}
	if scope.SuperAdmin {
		return s.subscriptions.ListAll(ctx, status)
	}
	return s.subscriptions.ListByCompanyIDs(ctx, scope.CompanyIDs, status)
}

// GetForCompany возвращает подписку компании с проверкой области видимости.
func (s *SubscriptionService) GetForCompany(ctx context.Context, scope models.AccessScope, companyID uuid.UUID) (*models.Subscription, error) {
	if !scope.Allows(companyID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "компания вне области видимости")
	}
	return s.subscriptions.GetByCompanyID(ctx, companyID)
}

// CreateCouponInput — данные нового промокода.
type CreateCouponInput struct {
	Code           string
	PercentOff     int
	MaxRedemptions *int
	ExpiresAt      *time.Time
}

// CreateCoupon создаёт промокод. Только для суперадмина.
func (s *SubscriptionService) CreateCoupon(ctx context.Context, scope models.AccessScope, in CreateCouponInput) (*models.Coupon, error) {
	if !scope.SuperAdmin {
		return nil, apperror.ErrForbidden
	}
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if err := validation.ValidateCouponCode(code); err != nil {
		return nil, fmt.Errorf("subscription service: %w", err)
	}
	if in.PercentOff < 1 || in.PercentOff > 100 {
		return nil, fmt.Errorf("subscription service: скидка должна быть от 1 до 100 процентов")
	}
	if in.MaxRedemptions != nil && *in.MaxRedemptions < 1 {
		return nil, fmt.Errorf("subscription service: лимит активаций должен быть положительным")
	}
	if in.ExpiresAt != nil && in.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("subscription service: срок действия уже истёк")
	}

	coupon := &models.Coupon{
		Code:           code,
		PercentOff:     in.PercentOff,
		MaxRedemptions: in.MaxRedemptions,
		ExpiresAt:      in.ExpiresAt,
		IsActive:       true,
	}
	if err := s.coupons.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// ListCoupons возвращает все промокоды. Только для суперадмина.
func (s *SubscriptionService) ListCoupons(ctx context.Context, scope models.AccessScope) ([]models.Coupon, error) {
	if !scope.SuperAdmin {
		return nil, apperror.ErrForbidden
	}
	return s.coupons.ListAll(ctx)
}

// DeactivateCoupon выключает промокод. Только для суперадмина.
func (s *SubscriptionService) DeactivateCoupon(ctx context.Context, scope models.AccessScope, id uuid.UUID) error {
	if !scope.SuperAdmin {
		return apperror.ErrForbidden
	}
	if _, err := s.coupons.GetByID(ctx, id); err != nil {
		return err
	}
	return s.coupons.Deactivate(ctx, id)
}
