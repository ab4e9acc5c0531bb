package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Review описывает одно отправленное клиентом мнение о компании.
// Запись создаётся публичным потоком сбора отзывов (NFC карта / QR код)
// и далее только дополняется отметками о завершении потока.
type Review struct {
	ID                   uuid.UUID      `db:"id" json:"id"`
	CompanyID            uuid.UUID      `db:"company_id" json:"company_id"`
	Rating               int            `db:"rating" json:"rating"`
	Email                *string        `db:"email" json:"email,omitempty"`
	Phone                *string        `db:"phone" json:"phone,omitempty"`
	Comment              *string        `db:"comment" json:"comment,omitempty"`
	FeedbackOptions      pq.StringArray `db:"feedback_options" json:"feedback_options"`
	FlowType             string         `db:"flow_type" json:"flow_type"`
	GamificationSteps    pq.StringArray `db:"gamification_steps" json:"gamification_steps_completed"`
	CompletedAt          *time.Time     `db:"completed_at" json:"completed_at,omitempty"`
	RedirectedToGoogleAt *time.Time     `db:"redirected_to_google_at" json:"redirected_to_google_at,omitempty"`
	RedirectMethod       *string        `db:"redirect_method" json:"redirect_method,omitempty"`
	CreatedAt            time.Time      `db:"created_at" json:"created_at"`
}

// HasValidRating сообщает, попадает ли оценка в допустимый диапазон.
// Значения вне [1,5] считаются "без оценки" и исключаются из агрегаций рейтинга.
func (r *Review) HasValidRating() bool {
	return r.Rating >= 1 && r.Rating <= 5
}

// IsCompleted сообщает, дошёл ли клиент до конца потока.
func (r *Review) IsCompleted() bool {
	return r.CompletedAt != nil
}
