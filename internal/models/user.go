package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User описывает сотрудника, работающего в админ-панели.
type User struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Email        string         `db:"email" json:"email"`
	PasswordHash string         `db:"password_hash" json:"-"`
	Role         string         `db:"role" json:"role"`
	CompanyIDs   pq.StringArray `db:"company_ids" json:"company_ids"`
	IsActive     bool           `db:"is_active" json:"is_active"`
	LastLoginAt  *time.Time     `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// Session представляет сохранённую сессию сотрудника.
type Session struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	RefreshToken string    `db:"refresh_token" json:"refresh_token"`
	UserAgent    *string   `db:"user_agent" json:"user_agent,omitempty"`
	IPAddress    *string   `db:"ip_address" json:"ip_address,omitempty"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// AccessScope определяет, какие компании видит сотрудник.
// Суперадмин видит всё, остальные — только компании из своего списка.
type AccessScope struct {
	SuperAdmin bool
	CompanyIDs []uuid.UUID
}

// ScopeForUser строит область видимости по записи сотрудника.
func ScopeForUser(u *User) AccessScope {
	if u.Role == RoleSuperAdmin {
		return AccessScope{SuperAdmin: true}
	}
	ids := make([]uuid.UUID, 0, len(u.CompanyIDs))
	for _, raw := range u.CompanyIDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}
	return AccessScope{CompanyIDs: ids}
}

// Allows сообщает, входит ли компания в область видимости.
func (s AccessScope) Allows(companyID uuid.UUID) bool {
	if s.SuperAdmin {
		return true
	}
	for _, id := range s.CompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}
