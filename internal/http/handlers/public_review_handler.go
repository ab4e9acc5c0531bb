package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ocenagor/admin-backend/internal/dto"
	"github.com/ocenagor/admin-backend/internal/http/handlers/common"
	"github.com/ocenagor/admin-backend/internal/service"
)

// PublicReviewHandler — публичный приём отзывов без авторизации.
// Сюда попадают клиенты заведений по NFC карте или QR коду.
type PublicReviewHandler struct {
	reviews   *service.ReviewService
	dashboard *service.DashboardService
}

// NewPublicReviewHandler создаёт хэндлер.
func NewPublicReviewHandler(reviews *service.ReviewService, dashboard *service.DashboardService) *PublicReviewHandler {
	return &PublicReviewHandler{reviews: reviews, dashboard: dashboard}
}

// Submit обрабатывает POST /api/public/companies/:slug/reviews.
func (h *PublicReviewHandler) Submit(c *gin.Context) {
	var req dto.SubmitReviewRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	review, err := h.reviews.SubmitReview(c.Request.Context(), c.Param("slug"), service.SubmitInput{
		Rating:          req.Rating,
		Email:           req.Email,
		Phone:           req.Phone,
		Comment:         req.Comment,
		FeedbackOptions: req.FeedbackOptions,
	})
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	h.dashboard.Invalidate()

	common.RespondJSON(c, http.StatusCreated, gin.H{
		"id":        review.ID,
		"flow_type": review.FlowType,
	})
}

// Complete обрабатывает POST /api/public/reviews/:id/complete.
func (h *PublicReviewHandler) Complete(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.CompleteReviewRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	review, err := h.reviews.CompleteReview(c.Request.Context(), id, service.CompleteInput{
		GamificationSteps:  req.GamificationSteps,
		RedirectedToGoogle: req.RedirectedToGoogle,
		RedirectMethod:     req.RedirectMethod,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.dashboard.Invalidate()

	common.RespondJSON(c, http.StatusOK, gin.H{
		"id":           review.ID,
		"completed_at": review.CompletedAt,
	})
}
