package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ocenagor/admin-backend/internal/dto"
	"github.com/ocenagor/admin-backend/internal/http/handlers/common"
	"github.com/ocenagor/admin-backend/internal/service"
	"github.com/ocenagor/admin-backend/internal/validation"
)

// AuthHandler предоставляет HTTP слой входа в админ-панель.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler создаёт хэндлер.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login обрабатывает POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	meta := map[string]string{
		"user_agent": c.GetHeader("User-Agent"),
		"ip":         c.ClientIP(),
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, meta)
	if err != nil {
		common.RespondUnauthorized(c, "неверный email или пароль")
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":    result.User.ID,
			"email": result.User.Email,
			"role":  result.User.Role,
		},
		"tokens": dto.TokenResponse{
			AccessToken:  result.TokenPair.AccessToken,
			RefreshToken: result.TokenPair.RefreshToken,
		},
	})
}

// Refresh обрабатывает POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	meta := map[string]string{
		"user_agent": c.GetHeader("User-Agent"),
		"ip":         c.ClientIP(),
	}

	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, meta)
	if err != nil {
		common.RespondUnauthorized(c, "refresh токен невалиден")
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// CreateUser обрабатывает POST /api/users. Только для суперадмина.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	scope, err := common.CurrentScope(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.CreateUserRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	companyIDs := make([]uuid.UUID, 0, len(req.CompanyIDs))
	for _, raw := range req.CompanyIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			common.RespondBadRequest(c, "company_ids должны быть валидными UUID")
			return
		}
		companyIDs = append(companyIDs, id)
	}

	user, err := h.auth.CreateUser(c.Request.Context(), scope, service.CreateUserInput{
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		CompanyIDs: companyIDs,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"role":        user.Role,
		"company_ids": user.CompanyIDs,
	})
}
