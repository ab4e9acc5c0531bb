package service

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/ocenagor/admin-backend/internal/models"
	"github.com/ocenagor/admin-backend/internal/pkg/apperror"
	"github.com/ocenagor/admin-backend/internal/validation"
)

// CompanyRepository описывает зависимости сервиса компаний.
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	GetBySlug(ctx context.Context, slug string) (*models.Company, error)
	ListAll(ctx context.Context) ([]models.Company, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Company, error)
	UpdateLogoPath(ctx context.Context, id uuid.UUID, logoPath string) error
}

// LogoStorage сохраняет логотипы компаний.
type LogoStorage interface {
	SaveLogo(companyID uuid.UUID, r io.Reader, size int64) (string, error)
}

// ReviewCounter считает отзывы компании для карточки компании.
type ReviewCounter interface {
	CountByCompanyID(ctx context.Context, companyID uuid.UUID) (int, error)
}

// CompanyService — операции над компаниями в админ-панели.
type CompanyService struct {
	companies CompanyRepository
	logos     LogoStorage
	counts    ReviewCounter
}

func NewCompanyService(companies CompanyRepository, logos LogoStorage, counts ReviewCounter) *CompanyService {
	return &CompanyService{companies: companies, logos: logos, counts: counts}
}

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// CreateCompanyInput — данные новой компании.
type CreateCompanyInput struct {
	Name            string
	Slug            string
	GoogleReviewURL *string
	ContactEmail    *string
	ContactPhone    *string
}

// Create создаёт компанию. Только для суперадмина.
func (s *CompanyService) Create(ctx context.Context, scope models.AccessScope, in CreateCompanyInput) (*models.Company, error) {
	if !scope.SuperAdmin {
		return nil, apperror.ErrForbidden
	}
	if err := validation.ValidateLength("название компании", in.Name, 1, 200); err != nil {
		return nil, fmt.Errorf("company service: %w", err)
	}
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if !slugRe.MatchString(slug) {
		return nil, fmt.Errorf("company service: слаг может содержать только латиницу, цифры и дефис")
	}

	if in.ContactEmail != nil && *in.ContactEmail != "" {
		if err := validation.ValidateEmail(*in.ContactEmail); err != nil {
			return nil, fmt.Errorf("company service: %w", err)
		}
	}

	company := &models.Company{
		Name:            strings.TrimSpace(in.Name),
		Slug:            slug,
		GoogleReviewURL: in.GoogleReviewURL,
		ContactEmail:    in.ContactEmail,
		ContactPhone:    in.ContactPhone,
		IsActive:        true,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// List возвращает компании в области видимости сотрудника.
func (s *CompanyService) List(ctx context.Context, scope models.AccessScope) ([]models.Company, error) {
	if scope.SuperAdmin {
		return s.companies.ListAll(ctx)
	}
	return s.companies.ListByIDs(ctx, scope.CompanyIDs)
}

// CompanyDetail — карточка компании со счётчиком отзывов.
type CompanyDetail struct {
	models.Company
	TotalReviews int `json:"total_reviews"`
}

// Get возвращает карточку компании с проверкой области видимости.
func (s *CompanyService) Get(ctx context.Context, scope models.AccessScope, id uuid.UUID) (*CompanyDetail, error) {
	if !scope.Allows(id) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "компания вне области видимости")
	}
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	total, err := s.counts.CountByCompanyID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CompanyDetail{Company: *company, TotalReviews: total}, nil
}

// UploadLogo сохраняет логотип и обновляет путь в базе.
func (s *CompanyService) UploadLogo(ctx context.Context, scope models.AccessScope, id uuid.UUID, r io.Reader, size int64) (string, error) {
	if !scope.Allows(id) {
		return "", apperror.New(apperror.ErrCodeForbidden, "компания вне области видимости")
	}
	if _, err := s.companies.GetByID(ctx, id); err != nil {
		return "", err
	}

	path, err := s.logos.SaveLogo(id, r, size)
	if err != nil {
		return "", err
	}
	if err := s.companies.UpdateLogoPath(ctx, id, path); err != nil {
		return "", err
	}
	return path, nil
}
