package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ocenagor/admin-backend/internal/logger"
	"github.com/ocenagor/admin-backend/internal/pkg/apperror"
	"github.com/ocenagor/admin-backend/internal/repository"
)

// ErrorHandler обрабатывает ошибки централизованно.
// Маскирует внутренние ошибки и возвращает понятные сообщения клиенту.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			statusCode := http.StatusInternalServerError
			message := "внутренняя ошибка сервера"

			if logger.Log != nil {
				logger.Log.WithFields(logrus.Fields{
					"error":  err.Error(),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				}).Error("Request error")
			}

			var appErr *apperror.AppError
			if errors.As(err.Err, &appErr) {
				c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Message})
				return
			}

			switch {
			case errors.Is(err.Err, repository.ErrReviewNotFound):
				statusCode = http.StatusNotFound
				message = "отзыв не найден"
			case errors.Is(err.Err, repository.ErrCompanyNotFound):
				statusCode = http.StatusNotFound
				message = "компания не найдена"
			case errors.Is(err.Err, repository.ErrSubscriptionNotFound):
				statusCode = http.StatusNotFound
				message = "подписка не найдена"
			case errors.Is(err.Err, repository.ErrCouponNotFound):
				statusCode = http.StatusNotFound
				message = "промокод не найден"
			case errors.Is(err.Err, repository.ErrCouponExists):
				statusCode = http.StatusConflict
				message = "промокод с таким кодом уже существует"
			case errors.Is(err.Err, repository.ErrUserNotFound):
				statusCode = http.StatusNotFound
				message = "пользователь не найден"
			case err.Error() != "":
				errStr := err.Error()
				if !containsInternalKeywords(errStr) {
					message = errStr
					if contains(errStr, "неверный") || contains(errStr, "невалид") || contains(errStr, "должн") {
						statusCode = http.StatusBadRequest
					} else if contains(errStr, "недостаточно прав") || contains(errStr, "вне области видимости") {
						statusCode = http.StatusForbidden
					}
				}
			}

			c.JSON(statusCode, gin.H{"error": message})
		}
	}
}

// containsInternalKeywords проверяет, содержит ли строка ключевые слова внутренних ошибок.
func containsInternalKeywords(s string) bool {
	keywords := []string{
		"sql:",
		"database",
		"connection",
		"timeout",
		"internal",
		"panic",
		"runtime",
	}

	for _, keyword := range keywords {
		if contains(s, keyword) {
			return true
		}
	}
	return false
}

// contains проверяет, содержит ли строка подстроку (case-insensitive).
func contains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
