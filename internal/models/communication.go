package models

import (
	"time"

	"github.com/google/uuid"
)

// Communication — запись журнала отправленных писем и SMS.
// Сама отправка выполняется внешним сервисом, админ-панель журнал только читает.
type Communication struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	CompanyID uuid.UUID  `db:"company_id" json:"company_id"`
	ReviewID  *uuid.UUID `db:"review_id" json:"review_id,omitempty"`
	Channel   string     `db:"channel" json:"channel"`
	Recipient string     `db:"recipient" json:"recipient"`
	Subject   *string    `db:"subject" json:"subject,omitempty"`
	Body      string     `db:"body" json:"body"`
	Status    string     `db:"status" json:"status"`
	SentAt    *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
