package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ocenagor/admin-backend/internal/dto"
	"github.com/ocenagor/admin-backend/internal/http/handlers/common"
	"github.com/ocenagor/admin-backend/internal/service"
)

// CompanyHandler — управление компаниями в админ-панели.
type CompanyHandler struct {
	companies *service.CompanyService
}

// NewCompanyHandler создаёт хэндлер.
func NewCompanyHandler(companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// List обрабатывает GET /api/companies.
func (h *CompanyHandler) List(c *gin.Context) {
	scope, err := common.CurrentScope(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	companies, err := h.companies.List(c.Request.Context(), scope)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{"items": companies})
}

// Get обрабатывает GET /api/companies/:id.
func (h *CompanyHandler) Get(c *gin.Context) {
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

	company, err := h.companies.Get(c.Request.Context(), scope, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, company)
}

// Create обрабатывает POST /api/companies.
func (h *CompanyHandler) Create(c *gin.Context) {
	scope, err := common.CurrentScope(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.CreateCompanyRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	company, err := h.companies.Create(c.Request.Context(), scope, service.CreateCompanyInput{
		Name:            req.Name,
		Slug:            req.Slug,
		GoogleReviewURL: req.GoogleReviewURL,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, company)
}

// UploadLogo обрабатывает POST /api/companies/:id/logo (multipart).
func (h *CompanyHandler) UploadLogo(c *gin.Context) {
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

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		common.RespondBadRequest(c, "файл logo обязателен")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		common.RespondBadRequest(c, "не удалось прочитать файл")
		return
	}
	defer f.Close()

	path, err := h.companies.UploadLogo(c.Request.Context(), scope, id, f, fileHeader.Size)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{"logo_path": path})
}
