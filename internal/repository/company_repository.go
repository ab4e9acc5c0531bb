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

var ErrCompanyNotFound = errors.New("company not found")

type CompanyRepository struct {
	db *sqlx.DB
}

func NewCompanyRepository(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create создаёт компанию.
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (name, slug, google_review_url, contact_email, contact_phone, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowxContext(ctx, query,
		company.Name, company.Slug, company.GoogleReviewURL,
		company.ContactEmail, company.ContactPhone, company.IsActive,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
}

// GetByID возвращает компанию по ID.
func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	err := r.db.GetContext(ctx, &company, `SELECT * FROM companies WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

// GetBySlug возвращает компанию по slug — так её находит публичный поток.
func (r *CompanyRepository) GetBySlug(ctx context.Context, slug string) (*models.Company, error) {
	var company models.Company
	err := r.db.GetContext(ctx, &company, `SELECT * FROM companies WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

// ListAll возвращает все компании (для суперадмина).
func (r *CompanyRepository) ListAll(ctx context.Context) ([]models.Company, error) {
	companies := []models.Company{}
	err := r.db.SelectContext(ctx, &companies, `SELECT * FROM companies ORDER BY name`)
	return companies, err
}

// ListByIDs возвращает компании из списка.
func (r *CompanyRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Company, error) {
	companies := []models.Company{}
	if len(ids) == 0 {
		return companies, nil
	}
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}
	err := r.db.SelectContext(ctx, &companies, `
		SELECT * FROM companies WHERE id = ANY($1) ORDER BY name
	`, pq.Array(raw))
	return companies, err
}

// UpdateLogoPath сохраняет относительный путь к загруженному логотипу.
func (r *CompanyRepository) UpdateLogoPath(ctx context.Context, id uuid.UUID, path string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE companies SET logo_path = $2, updated_at = NOW() WHERE id = $1
	`, id, path)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
