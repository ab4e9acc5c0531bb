package dto

import "time"

// LoginRequest — вход сотрудника в админ-панель.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest — обновление пары токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateUserRequest — новая учётная запись сотрудника.
type CreateUserRequest struct {
	Email      string   `json:"email" binding:"required"`
	Password   string   `json:"password" binding:"required"`
	Role       string   `json:"role" binding:"required"`
	CompanyIDs []string `json:"company_ids"`
}

// SubmitReviewRequest — отзыв из публичного потока (NFC / QR).
type SubmitReviewRequest struct {
	Rating          int      `json:"rating" binding:"required"`
	Email           *string  `json:"email"`
	Phone           *string  `json:"phone"`
	Comment         *string  `json:"comment"`
	FeedbackOptions []string `json:"feedback_options"`
}

// CompleteReviewRequest — завершение потока отзыва.
type CompleteReviewRequest struct {
	GamificationSteps  []string `json:"gamification_steps"`
	RedirectedToGoogle bool     `json:"redirected_to_google"`
	RedirectMethod     *string  `json:"redirect_method"`
}

// CreateCompanyRequest — новая компания.
type CreateCompanyRequest struct {
	Name            string  `json:"name" binding:"required"`
	Slug            string  `json:"slug" binding:"required"`
	GoogleReviewURL *string `json:"google_review_url"`
	ContactEmail    *string `json:"contact_email"`
	ContactPhone    *string `json:"contact_phone"`
}

// CreateCouponRequest — новый промокод.
type CreateCouponRequest struct {
	Code           string     `json:"code" binding:"required"`
	PercentOff     int        `json:"percent_off" binding:"required"`
	MaxRedemptions *int       `json:"max_redemptions"`
	ExpiresAt      *time.Time `json:"expires_at"`
}
