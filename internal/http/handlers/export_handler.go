package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ocenagor/admin-backend/internal/http/handlers/common"
	"github.com/ocenagor/admin-backend/internal/service"
)

// ExportHandler — выгрузка отзывов в CSV или XLSX.
type ExportHandler struct {
	export *service.ExportService
}

// NewExportHandler создаёт хэндлер.
func NewExportHandler(export *service.ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

// Reviews обрабатывает GET /api/export/reviews?format=csv|xlsx.
// Фильтры периода и поиска те же, что и у списка отзывов.
func (h *ExportHandler) Reviews(c *gin.Context) {
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

	format := c.DefaultQuery("format", service.ExportFormatCSV)
	fileName := fmt.Sprintf("reviews_%s.%s", time.Now().Format("2006-01-02"), format)

	switch format {
	case service.ExportFormatCSV:
		c.Header("Content-Type", "text/csv; charset=utf-8")
	case service.ExportFormatXLSX:
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	default:
		common.RespondBadRequest(c, "format должен быть csv или xlsx")
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Status(http.StatusOK)

	if err := h.export.ExportReviews(c.Request.Context(), c.Writer, scope, format, sel, c.Query("search"), companyID); err != nil {
		// заголовки уже ушли, остаётся только залогировать через gin
		_ = c.Error(err)
	}
}
