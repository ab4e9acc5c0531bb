package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ocenagor/admin-backend/internal/http/handlers/common"
	"github.com/ocenagor/admin-backend/internal/service"
)

// CommunicationHandler — журнал отправленных клиентам сообщений.
type CommunicationHandler struct {
	communications *service.CommunicationService
}

// NewCommunicationHandler создаёт хэндлер.
func NewCommunicationHandler(communications *service.CommunicationService) *CommunicationHandler {
	return &CommunicationHandler{communications: communications}
}

// List обрабатывает GET /api/communications.
func (h *CommunicationHandler) List(c *gin.Context) {
	scope, err := common.CurrentScope(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	limit, offset := common.GetPagination(c)
	items, err := h.communications.List(c.Request.Context(), scope, c.Query("channel"), limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{"items": items})
}
