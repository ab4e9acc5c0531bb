package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ocenagor/admin-backend/internal/http/handlers/common"
	"github.com/ocenagor/admin-backend/internal/service"
)

// SeedHandler генерирует фейковые данные. Доступен только в dev окружении.
type SeedHandler struct {
	seedService *service.SeedService
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seedService *service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// Seed обрабатывает POST /api/seed.
func (h *SeedHandler) Seed(c *gin.Context) {
	numCompanies := common.ParseIntQuery(c, "num_companies", 4)
	reviewsPerCompany := common.ParseIntQuery(c, "reviews_per_company", 30)
	if numCompanies < 1 {
		numCompanies = 4
	}
	if reviewsPerCompany < 1 {
		reviewsPerCompany = 30
	}
	if reviewsPerCompany > 500 {
		reviewsPerCompany = 500
	}

	if err := h.seedService.SeedData(c.Request.Context(), numCompanies, reviewsPerCompany); err != nil {
		common.RespondInternalError(c, "не удалось сгенерировать данные")
		return
	}

	common.RespondSuccess(c, http.StatusOK, "данные сгенерированы", gin.H{
		"num_companies":       numCompanies,
		"reviews_per_company": reviewsPerCompany,
		"admin_account":       "admin@ocenagor.ru / admin12345",
	})
}
