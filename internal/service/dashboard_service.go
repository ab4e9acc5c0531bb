package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ocenagor/admin-backend/internal/models"
	"github.com/ocenagor/admin-backend/internal/stats"
)

// SubscriptionRepoForDashboard — срез подписок для сводки дашборда.
type SubscriptionRepoForDashboard interface {
	CountActive(ctx context.Context) (int, error)
	CountActiveByCompanyIDs(ctx context.Context, companyIDs []uuid.UUID) (int, error)
}

// DashboardData — сводка для главного экрана админ-панели.
type DashboardData struct {
	Comparison          stats.Comparison `json:"comparison"`
	RatingDistribution  map[int]int      `json:"rating_distribution"`
	RecentReviews       []models.Review  `json:"recent_reviews"`
	TotalCompanies      int              `json:"total_companies"`
	ActiveSubscriptions int              `json:"active_subscriptions"`
	Period              string           `json:"period"`
}

// DashboardService собирает сводку по отзывам и подпискам. Результат
// кешируется на короткий TTL, инвалидация — при новом отзыве.
type DashboardService struct {
	reviews       *ReviewService
	subscriptions SubscriptionRepoForDashboard
	cache         *CacheService
	cacheTTL      time.Duration
}

func NewDashboardService(reviews *ReviewService, subscriptions SubscriptionRepoForDashboard, cache *CacheService, cacheTTL time.Duration) *DashboardService {
	return &DashboardService{
		reviews:       reviews,
		subscriptions: subscriptions,
		cache:         cache,
		cacheTTL:      cacheTTL,
	}
}

// GetDashboard возвращает сводку за период (токен диапазона дат).
// Custom диапазоны не кешируем: ключ строится по токену, и две разные
// пары дат склеились бы в одну запись.
func (s *DashboardService) GetDashboard(ctx context.Context, userID uuid.UUID, scope models.AccessScope, sel stats.Selection) (*DashboardData, error) {
	if sel.Token == stats.RangeCustom {
		return s.buildDashboard(ctx, scope, sel)
	}

	key := DashboardCacheKey(userID, string(sel.Token))

	value, err := s.cache.GetOrSet(ctx, key, s.cacheTTL, func() (interface{}, error) {
		return s.buildDashboard(ctx, scope, sel)
	})
	if err != nil {
		return nil, err
	}
	return value.(*DashboardData), nil
}

// GetComparison возвращает сравнение периодов. Ответы без фильтра по
// компании кешируются по токену периода; custom диапазоны не кешируем.
func (s *DashboardService) GetComparison(ctx context.Context, userID uuid.UUID, scope models.AccessScope, sel stats.Selection, companyID *uuid.UUID) (stats.Comparison, error) {
	if companyID != nil || sel.Token == stats.RangeCustom {
		return s.reviews.GetComparison(ctx, scope, sel, companyID)
	}

	key := ComparisonCacheKey(userID, string(sel.Token))
	value, err := s.cache.GetOrSet(ctx, key, s.cacheTTL, func() (interface{}, error) {
		return s.reviews.GetComparison(ctx, scope, sel, nil)
	})
	if err != nil {
		return stats.Comparison{}, err
	}
	return value.(stats.Comparison), nil
}

// Invalidate сбрасывает кеш сводок (вызывается при новом отзыве).
func (s *DashboardService) Invalidate() {
	s.cache.InvalidateDashboards()
}

// InvalidateFor сбрасывает кеш конкретного сотрудника.
func (s *DashboardService) InvalidateFor(userID uuid.UUID) {
	s.cache.InvalidateUserCache(userID)
}

const recentReviewsLimit = 10

func (s *DashboardService) buildDashboard(ctx context.Context, scope models.AccessScope, sel stats.Selection) (*DashboardData, error) {
	list, err := s.reviews.ListReviews(ctx, scope, ListParams{
		Selection: sel,
		SortKey:   stats.SortKeyCreatedAt,
		SortDir:   stats.SortDesc,
		Page:      1,
		PerPage:   recentReviewsLimit,
	})
	if err != nil {
		return nil, err
	}

	comparison, err := s.reviews.GetComparison(ctx, scope, sel, nil)
	if err != nil {
		return nil, err
	}

	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, r := range list.Result.Filtered {
		if r.HasValidRating() {
			distribution[r.Rating]++
		}
	}

	var activeSubs int
	if scope.SuperAdmin {
		activeSubs, err = s.subscriptions.CountActive(ctx)
	} else {
		activeSubs, err = s.subscriptions.CountActiveByCompanyIDs(ctx, scope.CompanyIDs)
	}
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		Comparison:          comparison,
		RatingDistribution:  distribution,
		RecentReviews:       list.Result.PageItems,
		TotalCompanies:      len(list.Companies),
		ActiveSubscriptions: activeSubs,
		Period:              string(sel.Token),
	}, nil
}
