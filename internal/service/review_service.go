package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ocenagor/admin-backend/internal/models"
	"github.com/ocenagor/admin-backend/internal/pkg/apperror"
	"github.com/ocenagor/admin-backend/internal/stats"
	"github.com/ocenagor/admin-backend/internal/validation"
)

// ReviewRepository описывает зависимости сервиса от хранилища отзывов.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ListAll(ctx context.Context, limit int) ([]models.Review, error)
	ListByCompanyIDs(ctx context.Context, companyIDs []uuid.UUID, limit int) ([]models.Review, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time, steps []string, redirectedAt *time.Time, redirectMethod *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompanyRepoForReviews — доступ к компаниям для построения индекса имён.
type CompanyRepoForReviews interface {
	GetBySlug(ctx context.Context, slug string) (*models.Company, error)
	ListAll(ctx context.Context) ([]models.Company, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Company, error)
}

// ReviewEventSink получает событие о новом отзыве (например, WebSocket hub).
type ReviewEventSink interface {
	ReviewCreated(review *models.Review)
}

// ReviewService — операции над отзывами: публичный приём, выборка для
// админ-панели через конвейер фильтрации и сравнение периодов.
type ReviewService struct {
	reviews    ReviewRepository
	companies  CompanyRepoForReviews
	maxRecords int
	events     ReviewEventSink
}

// NewReviewService создаёт сервис. maxRecords — потолок выборки для
// in-memory конвейера (0 — дефолт конвейера).
func NewReviewService(reviews ReviewRepository, companies CompanyRepoForReviews, maxRecords int) *ReviewService {
	return &ReviewService{
		reviews:    reviews,
		companies:  companies,
		maxRecords: maxRecords,
	}
}

// SetEventSink подключает получателя событий о новых отзывах.
func (s *ReviewService) SetEventSink(sink ReviewEventSink) {
	s.events = sink
}

// ListParams — параметры выборки отзывов в админ-панели.
type ListParams struct {
	Selection stats.Selection
	Search    string
	SortKey   string
	SortDir   stats.SortDirection
	Page      int
	PerPage   int
	// CompanyID сужает выборку до одной компании (должна входить в scope).
	CompanyID *uuid.UUID
}

// ReviewList — результат выборки вместе с индексом имён компаний.
type ReviewList struct {
	Result    stats.FilterResult
	Companies map[uuid.UUID]string
}

// ListReviews возвращает отфильтрованную страницу отзывов в пределах
// области видимости сотрудника.
func (s *ReviewService) ListReviews(ctx context.Context, scope models.AccessScope, p ListParams) (*ReviewList, error) {
	if p.CompanyID != nil && !scope.Allows(*p.CompanyID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "компания вне области видимости")
	}
	if err := validation.ValidateLength("поисковый запрос", p.Search, 0, validation.MaxSearchTermLength); err != nil {
		return nil, fmt.Errorf("review service: %w", err)
	}

	reviews, index, err := s.scopedReviews(ctx, scope, p.CompanyID)
	if err != nil {
		return nil, err
	}

	result := stats.FilterReviews(reviews, index, stats.FilterParams{
		Selection:  p.Selection,
		Search:     p.Search,
		Sort:       stats.SortConfig{Key: p.SortKey, Direction: p.SortDir},
		Page:       p.Page,
		PerPage:    p.PerPage,
		MaxRecords: s.maxRecords,
	})

	return &ReviewList{Result: result, Companies: index}, nil
}

// GetReview возвращает отзыв, проверяя область видимости.
func (s *ReviewService) GetReview(ctx context.Context, scope models.AccessScope, id uuid.UUID) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.Allows(review.CompanyID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "отзыв вне области видимости")
	}
	return review, nil
}

// DeleteReview удаляет отзыв (накрутка, спам). Только для суперадмина.
func (s *ReviewService) DeleteReview(ctx context.Context, scope models.AccessScope, id uuid.UUID) error {
	if !scope.SuperAdmin {
		return apperror.ErrForbidden
	}
	if _, err := s.reviews.GetByID(ctx, id); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, id)
}

// GetComparison считает сравнение текущего и предыдущего периодов
// по отзывам в пределах области видимости.
func (s *ReviewService) GetComparison(ctx context.Context, scope models.AccessScope, sel stats.Selection, companyID *uuid.UUID) (stats.Comparison, error) {
	if companyID != nil && !scope.Allows(*companyID) {
		return stats.Comparison{}, apperror.New(apperror.ErrCodeForbidden, "компания вне области видимости")
	}

	reviews, _, err := s.scopedReviews(ctx, scope, companyID)
	if err != nil {
		return stats.Comparison{}, err
	}

	return stats.ComparePeriods(reviews, sel)
}

// SubmitInput — данные нового отзыва из публичного потока.
type SubmitInput struct {
	Rating          int
	Email           *string
	Phone           *string
	Comment         *string
	FeedbackOptions []string
}

// SubmitReview принимает отзыв из публичного потока (NFC карта / QR код).
// Ветка потока выбирается по оценке: 4-5 — геймификация и Google,
// 1-3 — внутренний сбор причин недовольства.
func (s *ReviewService) SubmitReview(ctx context.Context, companySlug string, in SubmitInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("review service: оценка должна быть от 1 до 5")
	}
	if in.Comment != nil {
		if err := validation.ValidateLength("комментарий", *in.Comment, 0, validation.MaxCommentLength); err != nil {
			return nil, fmt.Errorf("review service: %w", err)
		}
	}
	if in.Email != nil && *in.Email != "" {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, fmt.Errorf("review service: %w", err)
		}
	}

	company, err := s.companies.GetBySlug(ctx, companySlug)
	if err != nil {
		return nil, fmt.Errorf("review service: компания не найдена")
	}
	if !company.IsActive {
		return nil, fmt.Errorf("review service: компания не принимает отзывы")
	}

	flowType := models.FlowLowRating
	if in.Rating >= 4 {
		flowType = models.FlowHighRatingGamification
	}

	review := &models.Review{
		CompanyID:         company.ID,
		Rating:            in.Rating,
		Email:             in.Email,
		Phone:             in.Phone,
		Comment:           in.Comment,
		FeedbackOptions:   in.FeedbackOptions,
		FlowType:          flowType,
		GamificationSteps: []string{},
	}
	if review.FeedbackOptions == nil {
		review.FeedbackOptions = []string{}
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.ReviewCreated(review)
	}

	return review, nil
}

// CompleteInput — завершение потока отзыва.
type CompleteInput struct {
	GamificationSteps  []string
	RedirectedToGoogle bool
	RedirectMethod     *string
}

// CompleteReview отмечает завершение потока. Отметка ставится один раз;
// completed_at всегда не раньше created_at, потому что его ставит сервер.
func (s *ReviewService) CompleteReview(ctx context.Context, id uuid.UUID, in CompleteInput) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.IsCompleted() {
		return nil, fmt.Errorf("review service: отзыв уже завершён")
	}

	now := time.Now()
	var redirectedAt *time.Time
	if in.RedirectedToGoogle {
		redirectedAt = &now
	}
	steps := in.GamificationSteps
	if steps == nil {
		steps = []string{}
	}

	if err := s.reviews.MarkCompleted(ctx, id, now, steps, redirectedAt, in.RedirectMethod); err != nil {
		return nil, err
	}

	return s.reviews.GetByID(ctx, id)
}

// scopedReviews выбирает отзывы и индекс имён компаний по области видимости.
func (s *ReviewService) scopedReviews(ctx context.Context, scope models.AccessScope, companyID *uuid.UUID) ([]models.Review, map[uuid.UUID]string, error) {
	limit := s.maxRecords
	if limit <= 0 {
		limit = stats.DefaultMaxRecords
	}

	var (
		reviews   []models.Review
		companies []models.Company
		err       error
	)

	switch {
	case companyID != nil:
		reviews, err = s.reviews.ListByCompanyIDs(ctx, []uuid.UUID{*companyID}, limit)
		if err != nil {
			return nil, nil, err
		}
		companies, err = s.companies.ListByIDs(ctx, []uuid.UUID{*companyID})
	case scope.SuperAdmin:
		reviews, err = s.reviews.ListAll(ctx, limit)
		if err != nil {
			return nil, nil, err
		}
		companies, err = s.companies.ListAll(ctx)
	default:
		reviews, err = s.reviews.ListByCompanyIDs(ctx, scope.CompanyIDs, limit)
		if err != nil {
			return nil, nil, err
		}
		companies, err = s.companies.ListByIDs(ctx, scope.CompanyIDs)
	}
	if err != nil {
		return nil, nil, err
	}

	index := make(map[uuid.UUID]string, len(companies))
	for _, c := range companies {
		index[c.ID] = c.Name
	}
	return reviews, index, nil
}
