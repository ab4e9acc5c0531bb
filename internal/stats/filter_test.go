package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocenagor/admin-backend/internal/models"
)

var filterNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)

func reviewAt(created time.Time, rating int) models.Review {
	return models.Review{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Rating:    rating,
		FlowType:  models.FlowStandard,
		CreatedAt: created,
	}
}

func strPtr(s string) *string { return &s }

func defaultParams() FilterParams {
	return FilterParams{
		Selection: Selection{Token: RangeMonth},
		Page:      1,
		PerPage:   10,
	}
}

func TestFilterReviews_EmptyInput(t *testing.T) {
	got := FilterReviewsAt(filterNow, nil, nil, defaultParams())

	assert.Empty(t, got.Filtered)
	assert.Empty(t, got.PageItems)
	assert.Equal(t, 1, got.Pagination.CurrentPage)
}

func TestFilterReviews_DateWindow(t *testing.T) {
	reviews := []models.Review{
		reviewAt(filterNow.AddDate(0, 0, -2), 5),
		reviewAt(filterNow.AddDate(0, 0, -40), 4), // за пределами 30 дней
		reviewAt(time.Time{}, 3),                  // нулевой created_at выбрасывается
	}

	got := FilterReviewsAt(filterNow, reviews, nil, defaultParams())

	require.Len(t, got.Filtered, 1)
	assert.Equal(t, reviews[0].ID, got.Filtered[0].ID)
}

func TestFilterReviews_Idempotent(t *testing.T) {
	reviews := []models.Review{
		reviewAt(filterNow.AddDate(0, 0, -1), 5),
		reviewAt(filterNow.AddDate(0, 0, -3), 2),
	}
	params := defaultParams()

	first := FilterReviewsAt(filterNow, reviews, nil, params)
	second := FilterReviewsAt(filterNow, reviews, nil, params)

	assert.Equal(t, first, second)
}

func TestFilterReviews_SearchIsCaseInsensitive(t *testing.T) {
	match := reviewAt(filterNow.AddDate(0, 0, -1), 5)
	match.Email = strPtr("Jane@Example.com")
	other := reviewAt(filterNow.AddDate(0, 0, -2), 3)
	other.Email = strPtr("bob@example.com")

	params := defaultParams()
	params.Search = "jane"

	got := FilterReviewsAt(filterNow, []models.Review{match, other}, nil, params)

	require.Len(t, got.Filtered, 1)
	assert.Equal(t, match.ID, got.Filtered[0].ID)
}

func TestFilterReviews_SearchCoversCompanyNameAndTags(t *testing.T) {
	byCompany := reviewAt(filterNow.AddDate(0, 0, -1), 5)
	byTag := reviewAt(filterNow.AddDate(0, 0, -2), 2)
	byTag.FeedbackOptions = []string{"slow_service", "cold_food"}
	miss := reviewAt(filterNow.AddDate(0, 0, -3), 4)

	companies := map[uuid.UUID]string{
		byCompany.CompanyID: "Kavarna Zvezda",
		byTag.CompanyID:     "Pekarna",
		miss.CompanyID:      "Pekarna",
	}

	params := defaultParams()
	params.Search = "zvezda"
	got := FilterReviewsAt(filterNow, []models.Review{byCompany, byTag, miss}, companies, params)
	require.Len(t, got.Filtered, 1)
	assert.Equal(t, byCompany.ID, got.Filtered[0].ID)

	params.Search = "COLD"
	got = FilterReviewsAt(filterNow, []models.Review{byCompany, byTag, miss}, companies, params)
	require.Len(t, got.Filtered, 1)
	assert.Equal(t, byTag.ID, got.Filtered[0].ID)
}

func TestFilterReviews_SortNullsAlwaysLast(t *testing.T) {
	withComment := reviewAt(filterNow.AddDate(0, 0, -1), 3)
	withComment.Comment = strPtr("x")
	withoutComment := reviewAt(filterNow.AddDate(0, 0, -2), 5)

	params := defaultParams()
	params.Sort = SortConfig{Key: SortKeyComment, Direction: SortAsc}

	got := FilterReviewsAt(filterNow, []models.Review{withoutComment, withComment}, nil, params)
	require.Len(t, got.Filtered, 2)
	assert.Equal(t, withComment.ID, got.Filtered[0].ID)
	assert.Equal(t, withoutComment.ID, got.Filtered[1].ID)

	// null остаётся в конце и при обратном направлении
	params.Sort.Direction = SortDesc
	got = FilterReviewsAt(filterNow, []models.Review{withoutComment, withComment}, nil, params)
	require.Len(t, got.Filtered, 2)
	assert.Equal(t, withComment.ID, got.Filtered[0].ID)
}

func TestFilterReviews_SortByRatingDesc(t *testing.T) {
	low := reviewAt(filterNow.AddDate(0, 0, -1), 1)
	high := reviewAt(filterNow.AddDate(0, 0, -2), 5)
	mid := reviewAt(filterNow.AddDate(0, 0, -3), 3)

	params := defaultParams()
	params.Sort = SortConfig{Key: SortKeyRating, Direction: SortDesc}

	got := FilterReviewsAt(filterNow, []models.Review{low, high, mid}, nil, params)
	require.Len(t, got.Filtered, 3)
	assert.Equal(t, []int{5, 3, 1}, []int{got.Filtered[0].Rating, got.Filtered[1].Rating, got.Filtered[2].Rating})
}

func TestFilterReviews_SortIsStable(t *testing.T) {
	a := reviewAt(filterNow.AddDate(0, 0, -1), 4)
	b := reviewAt(filterNow.AddDate(0, 0, -2), 4)
	c := reviewAt(filterNow.AddDate(0, 0, -3), 4)

	params := defaultParams()
	params.Sort = SortConfig{Key: SortKeyRating, Direction: SortAsc}

	got := FilterReviewsAt(filterNow, []models.Review{a, b, c}, nil, params)
	require.Len(t, got.Filtered, 3)
	assert.Equal(t, a.ID, got.Filtered[0].ID)
	assert.Equal(t, b.ID, got.Filtered[1].ID)
	assert.Equal(t, c.ID, got.Filtered[2].ID)
}

func TestFilterReviews_Pagination(t *testing.T) {
	reviews := make([]models.Review, 0, 25)
	for i := 0; i < 25; i++ {
		reviews = append(reviews, reviewAt(filterNow.Add(-time.Duration(i)*time.Hour), 5))
	}

	params := defaultParams()
	params.Page = 3

	got := FilterReviewsAt(filterNow, reviews, nil, params)
	assert.Len(t, got.Filtered, 25)
	assert.Len(t, got.PageItems, 5)
	assert.Equal(t, 3, got.Pagination.CurrentPage)
}

func TestFilterReviews_OutOfRangePageClampsDown(t *testing.T) {
	reviews := []models.Review{
		reviewAt(filterNow.Add(-time.Hour), 5),
		reviewAt(filterNow.Add(-2*time.Hour), 4),
		reviewAt(filterNow.Add(-3*time.Hour), 3),
	}

	params := defaultParams()
	params.Page = 9
	params.PerPage = 2

	got := FilterReviewsAt(filterNow, reviews, nil, params)
	// страница зажимается к последней валидной, а не подменяется первой
	assert.Equal(t, 2, got.Pagination.CurrentPage)
	require.Len(t, got.PageItems, 1)
	assert.Equal(t, reviews[2].ID, got.PageItems[0].ID)
}

func TestFilterReviews_RecordCapAppliedBeforeFiltering(t *testing.T) {
	reviews := make([]models.Review, 0, 30)
	for i := 0; i < 30; i++ {
		reviews = append(reviews, reviewAt(filterNow.Add(-time.Duration(i)*time.Minute), 5))
	}

	params := defaultParams()
	params.MaxRecords = 10

	got := FilterReviewsAt(filterNow, reviews, nil, params)
	assert.Len(t, got.Filtered, 10)
}

func TestFilterReviews_InvalidCustomSelectionYieldsEmpty(t *testing.T) {
	reviews := []models.Review{reviewAt(filterNow.Add(-time.Hour), 5)}

	params := defaultParams()
	params.Selection = Selection{Token: RangeCustom} // без дат

	got := FilterReviewsAt(filterNow, reviews, nil, params)
	assert.Empty(t, got.Filtered)
	assert.Empty(t, got.PageItems)
}
