package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ocenagor/admin-backend/internal/http/handlers/common"
	"github.com/ocenagor/admin-backend/internal/service"
)

// DashboardHandler — сводка для главного экрана админ-панели.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler создаёт хэндлер.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Data обрабатывает GET /api/dashboard/data.
func (h *DashboardHandler) Data(c *gin.Context) {
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

	data, err := h.dashboard.GetDashboard(c.Request.Context(), userID, scope, sel)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, data)
}

// InvalidateCache обрабатывает POST /api/dashboard/cache/invalidate.
// Суперадмин сбрасывает кеш целиком, сотрудник — только свои записи.
func (h *DashboardHandler) InvalidateCache(c *gin.Context) {
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

	if scope.SuperAdmin {
		h.dashboard.Invalidate()
	} else {
		h.dashboard.InvalidateFor(userID)
	}
	common.RespondSuccess(c, http.StatusOK, "кеш сводок сброшен", nil)
}
