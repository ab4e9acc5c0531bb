package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ocenagor/admin-backend/internal/models"
)

// CommunicationRepository описывает доступ к журналу коммуникаций.
type CommunicationRepository interface {
	ListAll(ctx context.Context, channel string, limit, offset int) ([]models.Communication, error)
	ListByCompanyIDs(ctx context.Context, companyIDs []uuid.UUID, channel string, limit, offset int) ([]models.Communication, error)
}

// CommunicationService — журнал отправленных клиентам сообщений
// (SMS и email по низким оценкам). Журнал только для чтения: записи
// создаёт внешний контур рассылки.
type CommunicationService struct {
	communications CommunicationRepository
}

func NewCommunicationService(communications CommunicationRepository) *CommunicationService {
	return &CommunicationService{communications: communications}
}

const defaultCommunicationsLimit = 50

// List возвращает страницу журнала в области видимости сотрудника.
func (s *CommunicationService) List(ctx context.Context, scope models.AccessScope, channel string, limit, offset int) ([]models.Communication, error) {
	if _, ok := models.ValidChannels[channel]; channel != "" && !ok {
		return nil, fmt.Errorf("communication service: неизвестный канал %q", channel)
	}
	if limit <= 0 || limit > 200 {
		limit = defaultCommunicationsLimit
	}
	if offset < 0 {
		offset = 0
	}

	if scope.SuperAdmin {
		return s.communications.ListAll(ctx, channel, limit, offset)
	}
	return s.communications.ListByCompanyIDs(ctx, scope.CompanyIDs, channel, limit, offset)
}
