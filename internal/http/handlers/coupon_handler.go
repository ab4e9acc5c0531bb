package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ocenagor/admin-backend/internal/dto"
	"github.com/ocenagor/admin-backend/internal/http/handlers/common"
	"github.com/ocenagor/admin-backend/internal/service"
)

// CouponHandler — промокоды на подписку. Все операции только для суперадмина.
type CouponHandler struct {
	subscriptions *service.SubscriptionService
}

// NewCouponHandler создаёт хэндлер.
func NewCouponHandler(subscriptions *service.SubscriptionService) *CouponHandler {
	return &CouponHandler{subscriptions: subscriptions}
}

// List обрабатывает GET /api/coupons.
func (h *CouponHandler) List(c *gin.Context) {
	scope, err := common.CurrentScope(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	coupons, err := h.subscriptions.ListCoupons(c.Request.Context(), scope)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{"items": coupons})
}

// Create обрабатывает POST /api/coupons.
func (h *CouponHandler) Create(c *gin.Context) {
	scope, err := common.CurrentScope(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.CreateCouponRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	coupon, err := h.subscriptions.CreateCoupon(c.Request.Context(), scope, service.CreateCouponInput{
		Code:           req.Code,
		PercentOff:     req.PercentOff,
		MaxRedemptions: req.MaxRedemptions,
		ExpiresAt:      req.ExpiresAt,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, coupon)
}

// Deactivate обрабатывает POST /api/coupons/:id/deactivate.
func (h *CouponHandler) Deactivate(c *gin.Context) {
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

	if err := h.subscriptions.DeactivateCoupon(c.Request.Context(), scope, id); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "промокод выключен", nil)
}
