package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ocenagor/admin-backend/internal/models"
	"github.com/ocenagor/admin-backend/internal/repository"
	"github.com/ocenagor/admin-backend/internal/stats"
)

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	if args.Error(0) == nil {
		review.ID = uuid.New()
		review.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *mockReviewRepo) ListAll(ctx context.Context, limit int) ([]models.Review, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *mockReviewRepo) ListByCompanyIDs(ctx context.Context, companyIDs []uuid.UUID, limit int) ([]models.Review, error) {
	args := m.Called(ctx, companyIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *mockReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockReviewRepo) MarkCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time, steps []string, redirectedAt *time.Time, redirectMethod *string) error {
	args := m.Called(ctx, id, completedAt, steps, redirectedAt, redirectMethod)
	return args.Error(0)
}

type mockCompanyRepo struct {
	mock.Mock
}

func (m *mockCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

func (m *mockCompanyRepo) GetBySlug(ctx context.Context, slug string) (*models.Company, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

func (m *mockCompanyRepo) ListAll(ctx context.Context) ([]models.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Company), args.Error(1)
}

func (m *mockCompanyRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Company, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Company), args.Error(1)
}

type recordingSink struct {
	created []*models.Review
}

func (r *recordingSink) ReviewCreated(review *models.Review) {
	r.created = append(r.created, review)
}

func TestListReviews_StaffScope(t *testing.T) {
	reviews := new(mockReviewRepo)
	companies := new(mockCompanyRepo)
	svc := NewReviewService(reviews, companies, 100)

	companyID := uuid.New()
	scope := models.AccessScope{CompanyIDs: []uuid.UUID{companyID}}

	reviews.On("ListByCompanyIDs", mock.Anything, scope.CompanyIDs, 100).
		Return([]models.Review{
			{ID: uuid.New(), CompanyID: companyID, Rating: 5, CreatedAt: time.Now().Add(-time.Hour)},
		}, nil)
	companies.On("ListByIDs", mock.Anything, scope.CompanyIDs).
		Return([]models.Company{{ID: companyID, Name: "Кофейня"}}, nil)

	list, err := svc.ListReviews(context.Background(), scope, ListParams{
		Selection: stats.Selection{Token: stats.RangeMonth},
		Page:      1,
		PerPage:   10,
	})
	require.NoError(t, err)
	assert.Len(t, list.Result.PageItems, 1)
	assert.Equal(t, "Кофейня", list.Companies[companyID])
	reviews.AssertExpectations(t)
}

func TestListReviews_SuperAdminScope(t *testing.T) {
	reviews := new(mockReviewRepo)
	companies := new(mockCompanyRepo)
	svc := NewReviewService(reviews, companies, 100)

	reviews.On("ListAll", mock.Anything, 100).Return([]models.Review{}, nil)
	companies.On("ListAll", mock.Anything).Return([]models.Company{}, nil)

	_, err := svc.ListReviews(context.Background(), models.AccessScope{SuperAdmin: true}, ListParams{
		Selection: stats.Selection{Token: stats.RangeAll},
		Page:      1,
		PerPage:   10,
	})
	require.NoError(t, err)
	reviews.AssertExpectations(t)
}

func TestListReviews_CompanyOutsideScope(t *testing.T) {
	svc := NewReviewService(new(mockReviewRepo), new(mockCompanyRepo), 100)

	outside := uuid.New()
	scope := models.AccessScope{CompanyIDs: []uuid.UUID{uuid.New()}}

	_, err := svc.ListReviews(context.Background(), scope, ListParams{
		Selection: stats.Selection{Token: stats.RangeMonth},
		CompanyID: &outside,
	})
	assert.Error(t, err)
}

func TestGetReview_ScopeCheck(t *testing.T) {
	reviews := new(mockReviewRepo)
	svc := NewReviewService(reviews, new(mockCompanyRepo), 100)

	owned := uuid.New()
	foreign := uuid.New()
	id := uuid.New()
	reviews.On("GetByID", mock.Anything, id).
		Return(&models.Review{ID: id, CompanyID: foreign, Rating: 4, CreatedAt: time.Now()}, nil)

	_, err := svc.GetReview(context.Background(), models.AccessScope{CompanyIDs: []uuid.UUID{owned}}, id)
	assert.Error(t, err)

	got, err := svc.GetReview(context.Background(), models.AccessScope{SuperAdmin: true}, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
}

func TestSubmitReview_FlowBranching(t *testing.T) {
	reviews := new(mockReviewRepo)
	companies := new(mockCompanyRepo)
	svc := NewReviewService(reviews, companies, 100)
	sink := &recordingSink{}
	svc.SetEventSink(sink)

	company := &models.Company{ID: uuid.New(), Slug: "coffee-point", Name: "Кофейня", IsActive: true}
	companies.On("GetBySlug", mock.Anything, "coffee-point").Return(company, nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(nil)

	high, err := svc.SubmitReview(context.Background(), "coffee-point", SubmitInput{Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, models.FlowHighRatingGamification, high.FlowType)

	low, err := svc.SubmitReview(context.Background(), "coffee-point", SubmitInput{Rating: 2})
	require.NoError(t, err)
	assert.Equal(t, models.FlowLowRating, low.FlowType)

	assert.Len(t, sink.created, 2)
}

func TestSubmitReview_Validation(t *testing.T) {
	companies := new(mockCompanyRepo)
	svc := NewReviewService(new(mockReviewRepo), companies, 100)

	_, err := svc.SubmitReview(context.Background(), "coffee-point", SubmitInput{Rating: 0})
	assert.Error(t, err)

	_, err = svc.SubmitReview(context.Background(), "coffee-point", SubmitInput{Rating: 6})
	assert.Error(t, err)

	inactive := &models.Company{ID: uuid.New(), Slug: "closed", IsActive: false}
	companies.On("GetBySlug", mock.Anything, "closed").Return(inactive, nil)
	_, err = svc.SubmitReview(context.Background(), "closed", SubmitInput{Rating: 5})
	assert.Error(t, err)

	companies.On("GetBySlug", mock.Anything, "ghost").Return(nil, repository.ErrCompanyNotFound)
	_, err = svc.SubmitReview(context.Background(), "ghost", SubmitInput{Rating: 5})
	assert.Error(t, err)
}

func TestCompleteReview(t *testing.T) {
	reviews := new(mockReviewRepo)
	svc := NewReviewService(reviews, new(mockCompanyRepo), 100)

	id := uuid.New()
	pending := &models.Review{ID: id, CompanyID: uuid.New(), Rating: 5, CreatedAt: time.Now().Add(-time.Minute)}
	reviews.On("GetByID", mock.Anything, id).Return(pending, nil)
	reviews.On("MarkCompleted", mock.Anything, id, mock.Anything, []string{"wheel_spin"}, mock.Anything, mock.Anything).
		Return(nil)

	_, err := svc.CompleteReview(context.Background(), id, CompleteInput{
		GamificationSteps:  []string{"wheel_spin"},
		RedirectedToGoogle: true,
	})
	require.NoError(t, err)
	reviews.AssertExpectations(t)
}

func TestCompleteReview_AlreadyCompleted(t *testing.T) {
	reviews := new(mockReviewRepo)
	svc := NewReviewService(reviews, new(mockCompanyRepo), 100)

	id := uuid.New()
	done := time.Now().Add(-time.Hour)
	reviews.On("GetByID", mock.Anything, id).
		Return(&models.Review{ID: id, Rating: 5, CreatedAt: done.Add(-time.Minute), CompletedAt: &done}, nil)

	_, err := svc.CompleteReview(context.Background(), id, CompleteInput{})
	assert.Error(t, err)
	reviews.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteReview_SuperAdminOnly(t *testing.T) {
	reviews := new(mockReviewRepo)
	svc := NewReviewService(reviews, new(mockCompanyRepo), 100)

	id := uuid.New()
	err := svc.DeleteReview(context.Background(), models.AccessScope{CompanyIDs: []uuid.UUID{uuid.New()}}, id)
	assert.Error(t, err)
	reviews.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	reviews.On("GetByID", mock.Anything, id).
		Return(&models.Review{ID: id, Rating: 3, CreatedAt: time.Now()}, nil)
	reviews.On("Delete", mock.Anything, id).Return(nil)

	err = svc.DeleteReview(context.Background(), models.AccessScope{SuperAdmin: true}, id)
	require.NoError(t, err)
	reviews.AssertExpectations(t)
}

func TestGetComparison_ScopeCheck(t *testing.T) {
	reviews := new(mockReviewRepo)
	companies := new(mockCompanyRepo)
	svc := NewReviewService(reviews, companies, 100)

	outside := uuid.New()
	scope := models.AccessScope{CompanyIDs: []uuid.UUID{uuid.New()}}
	_, err := svc.GetComparison(context.Background(), scope, stats.Selection{Token: stats.RangeMonth}, &outside)
	assert.Error(t, err)

	reviews.On("ListByCompanyIDs", mock.Anything, scope.CompanyIDs, 100).Return([]models.Review{}, nil)
	companies.On("ListByIDs", mock.Anything, scope.CompanyIDs).Return([]models.Company{}, nil)

	cmp, err := svc.GetComparison(context.Background(), scope, stats.Selection{Token: stats.RangeMonth}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cmp.TotalReviews.Value)
}
