package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocenagor/admin-backend/internal/models"
)

func completedReviewAt(created time.Time, rating int) models.Review {
	r := reviewAt(created, rating)
	done := created.Add(5 * time.Minute)
	r.CompletedAt = &done
	return r
}

func TestComparePeriods_AllIsAlwaysNeutral(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	reviews := []models.Review{
		completedReviewAt(now.AddDate(0, 0, -2), 5),
		reviewAt(now.AddDate(-2, 0, 0), 1),
	}

	got, err := ComparePeriodsAt(now, reviews, Selection{Token: RangeAll})
	require.NoError(t, err)

	for name, m := range map[string]Metric{
		"average_rating":  got.AverageRating,
		"total_reviews":   got.TotalReviews,
		"conversion_rate": got.ConversionRate,
	} {
		assert.Zero(t, m.Change, name)
		assert.Equal(t, TrendNeutral, m.Trend, name)
	}
	assert.Equal(t, 2.0, got.TotalReviews.Value)
}

func TestComparePeriods_EmptyCurrentNonEmptyPrevious(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	// только в предыдущем 7-дневном окне
	reviews := []models.Review{
		reviewAt(now.AddDate(0, 0, -10), 4),
		reviewAt(now.AddDate(0, 0, -12), 5),
	}

	got, err := ComparePeriodsAt(now, reviews, Selection{Token: RangeWeek})
	require.NoError(t, err)

	assert.Zero(t, got.TotalReviews.Value)
	assert.Equal(t, -100.0, got.TotalReviews.Change)
	assert.Equal(t, TrendDown, got.TotalReviews.Trend)
}

func TestComparePeriods_GrowthFromZeroBase(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	reviews := []models.Review{
		reviewAt(now.AddDate(0, 0, -1), 5),
		reviewAt(now.AddDate(0, 0, -2), 4),
		reviewAt(now.AddDate(0, 0, -3), 3),
		reviewAt(now.AddDate(0, 0, -4), 4),
		reviewAt(now.AddDate(0, 0, -5), 5),
	}

	got, err := ComparePeriodsAt(now, reviews, Selection{Token: RangeWeek})
	require.NoError(t, err)

	assert.Equal(t, 5.0, got.TotalReviews.Value)
	assert.Equal(t, 100.0, got.TotalReviews.Change)
	assert.Equal(t, TrendUp, got.TotalReviews.Trend)
}

func TestComparePeriods_ChangeIsCapped(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	reviews := []models.Review{reviewAt(now.AddDate(0, 0, -10), 4)}
	for i := 0; i < 50; i++ {
		reviews = append(reviews, reviewAt(now.Add(-time.Duration(i+1)*time.Hour), 5))
	}

	got, err := ComparePeriodsAt(now, reviews, Selection{Token: RangeWeek})
	require.NoError(t, err)

	// рост с 1 до 50 — это +4900%, отдаём потолок
	assert.Equal(t, 999.0, got.TotalReviews.Change)
	assert.Equal(t, TrendUp, got.TotalReviews.Trend)
}

func TestComparePeriods_BoundaryInstantNotDoubleCounted(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	current, err := ResolveRangeAt(now, Selection{Token: RangeWeek})
	require.NoError(t, err)

	// ровно на границе: начало текущего периода
	boundary := reviewAt(current.Start, 5)
	got, err := ComparePeriodsAt(now, []models.Review{boundary}, Selection{Token: RangeWeek})
	require.NoError(t, err)

	assert.Equal(t, 1.0, got.TotalReviews.Value)
	// предыдущий период границу не захватывает, его total равен нулю
	assert.Equal(t, 100.0, got.TotalReviews.Change)
}

func TestComparePeriods_InvalidRatingExcludedFromAverage(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	unrated := reviewAt(now.Add(-time.Hour), 0)
	rated := reviewAt(now.Add(-2*time.Hour), 4)

	got, err := ComparePeriodsAt(now, []models.Review{unrated, rated}, Selection{Token: RangeWeek})
	require.NoError(t, err)

	assert.Equal(t, 4.0, got.AverageRating.Value)
	assert.Equal(t, 2.0, got.TotalReviews.Value)
}

func TestComparePeriods_ConversionRate(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	reviews := []models.Review{
		completedReviewAt(now.Add(-time.Hour), 5),
		completedReviewAt(now.Add(-2*time.Hour), 4),
		reviewAt(now.Add(-3*time.Hour), 3),
		reviewAt(now.Add(-4*time.Hour), 2),
	}

	got, err := ComparePeriodsAt(now, reviews, Selection{Token: RangeWeek})
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.ConversionRate.Value)
}

func TestComparePeriods_CustomWithoutRangeFails(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)

	_, err := ComparePeriodsAt(now, nil, Selection{Token: RangeCustom})
	assert.ErrorIs(t, err, ErrCustomRangeRequired)
}

func TestComparePeriods_EndToEndJanuaryScenario(t *testing.T) {
	// Сценарий из приёмки: пять январских отзывов [5,5,5,1,1],
	// "сейчас" — 1 февраля, период 30d, предыдущее окно пустое.
	now := time.Date(2024, time.February, 1, 10, 0, 0, 0, time.Local)
	ratings := []int{5, 5, 5, 1, 1}
	reviews := make([]models.Review, 0, len(ratings))
	for i, rating := range ratings {
		created := time.Date(2024, time.January, 5+5*i, 12, 0, 0, 0, time.Local)
		reviews = append(reviews, reviewAt(created, rating))
	}

	got, err := ComparePeriodsAt(now, reviews, Selection{Token: RangeMonth})
	require.NoError(t, err)

	assert.InDelta(t, 3.4, got.AverageRating.Value, 1e-9)
	assert.Equal(t, 100.0, got.AverageRating.Change)
	assert.Equal(t, TrendUp, got.AverageRating.Trend)
	assert.Equal(t, 5.0, got.TotalReviews.Value)
	assert.Equal(t, 100.0, got.TotalReviews.Change)
}
