package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ocenagor/admin-backend/internal/http/handlers/common"
	"github.com/ocenagor/admin-backend/internal/service"
)

// StatsHandler — сравнение метрик текущего и предыдущего периодов.
type StatsHandler struct {
	dashboard *service.DashboardService
}

// NewStatsHandler создаёт хэндлер.
func NewStatsHandler(dashboard *service.DashboardService) *StatsHandler {
	return &StatsHandler{dashboard: dashboard}
}

// Comparison обрабатывает GET /api/stats/comparison.
func (h *StatsHandler) Comparison(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}
	scope, err := common.CurrentScope(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	sel, err := parseSelection(c)
	if err != nil {
		common.RespondBadRequest(c, "для range=custom нужны start_date и end_date в формате YYYY-MM-DD")
		return
	}

	companyID, err := common.ParseUUIDQuery(c, "company_id")
	if err != nil {
		common.RespondBadRequest(c, "company_id должен быть валидным UUID")
		return
	}

	comparison, err := h.dashboard.GetComparison(c.Request.Context(), userID, scope, sel, companyID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, comparison)
}
