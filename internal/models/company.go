package models

import (
	"time"

	"github.com/google/uuid"
)

// Company описывает бизнес, собирающий отзывы через платформу.
type Company struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Slug            string     `db:"slug" json:"slug"`
	GoogleReviewURL *string    `db:"google_review_url" json:"google_review_url,omitempty"`
	ContactEmail    *string    `db:"contact_email" json:"contact_email,omitempty"`
	ContactPhone    *string    `db:"contact_phone" json:"contact_phone,omitempty"`
	LogoPath        *string    `db:"logo_path" json:"logo_path,omitempty"`
	IsActive        bool       `db:"is_active" json:"is_active"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
