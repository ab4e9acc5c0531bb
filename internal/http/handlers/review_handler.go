package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ocenagor/admin-backend/internal/dto"
	"github.com/ocenagor/admin-backend/internal/http/handlers/common"
	"github.com/ocenagor/admin-backend/internal/service"
	"github.com/ocenagor/admin-backend/internal/stats"
)

// ReviewHandler — списки и карточки отзывов в админ-панели.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler создаёт хэндлер.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

const dateLayout = "2006-01-02"

// parseSelection собирает выбор периода из query-параметров.
// Токен по умолчанию — 30 дней; range=custom требует start_date и end_date.
func parseSelection(c *gin.Context) (stats.Selection, error) {
	token := stats.RangeToken(c.DefaultQuery("range", string(stats.RangeMonth)))
	sel := stats.Selection{Token: token}
	if token != stats.RangeCustom {
		return sel, nil
	}

	start, err := time.ParseInLocation(dateLayout, c.Query("start_date"), time.Local)
	if err != nil {
		return sel, stats.ErrCustomRangeRequired
	}
	end, err := time.ParseInLocation(dateLayout, c.Query("end_date"), time.Local)
	if err != nil {
		return sel, stats.ErrCustomRangeRequired
	}
	sel.Custom = &stats.CustomRange{Start: start, End: end}
	return sel, nil
}

// List обрабатывает GET /api/reviews.
func (h *ReviewHandler) List(c *gin.Context) {
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

	list, err := h.reviews.ListReviews(c.Request.Context(), scope, service.ListParams{
		Selection: sel,
		Search:    c.Query("search"),
		SortKey:   c.DefaultQuery("sort_key", stats.SortKeyCreatedAt),
		SortDir:   stats.SortDirection(c.DefaultQuery("sort_dir", string(stats.SortDesc))),
		Page:      common.ParseIntQuery(c, "page", 1),
		PerPage:   common.ParseIntQuery(c, "per_page", stats.DefaultItemsPerPage),
		CompanyID: companyID,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewReviewListResponse(list.Result, list.Companies))
}

// Get обрабатывает GET /api/reviews/:id.
func (h *ReviewHandler) Get(c *gin.Context) {
	scope, err := common.CurrentScope(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	review, err := h.reviews.GetReview(c.Request.Context(), scope, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, review)
}

// Delete обрабатывает DELETE /api/reviews/:id. Только для суперадмина.
func (h *ReviewHandler) Delete(c *gin.Context) {
	scope, err := common.CurrentScope(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.reviews.DeleteReview(c.Request.Context(), scope, id); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "отзыв удалён", nil)
}
