package dto

import (
	"github.com/google/uuid"

	"github.com/ocenagor/admin-backend/internal/models"
	"github.com/ocenagor/admin-backend/internal/stats"
)

// ErrorResponse — стандартный ответ об ошибке.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse — стандартный успешный ответ.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// TokenResponse — пара токенов после входа или обновления.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ReviewResponse — отзыв с именем компании для списков админ-панели.
type ReviewResponse struct {
	*models.Review
	CompanyName string `json:"company_name"`
}

// ReviewListResponse — страница отзывов с пагинацией.
type ReviewListResponse struct {
	Items      []ReviewResponse      `json:"items"`
	Pagination stats.PaginationState `json:"pagination"`
	Total      int                   `json:"total"`
}

// NewReviewListResponse собирает страницу из результата конвейера фильтрации.
func NewReviewListResponse(result stats.FilterResult, companies map[uuid.UUID]string) ReviewListResponse {
	items := make([]ReviewResponse, len(result.PageItems))
	for i := range result.PageItems {
		review := result.PageItems[i]
		items[i] = ReviewResponse{
			Review:      &review,
			CompanyName: companies[review.CompanyID],
		}
	}
	return ReviewListResponse{
		Items:      items,
		Pagination: result.Pagination,
		Total:      len(result.Filtered),
	}
}
