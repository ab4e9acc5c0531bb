package stats

import (
	"time"

	"github.com/ocenagor/admin-backend/internal/models"
)

// Trend — качественное направление изменения метрики.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// trendEpsilon — порог, ниже которого изменение считается шумом.
const trendEpsilon = 0.1

// changeCap — потолок процента изменения, чтобы не отдавать дашборду
// астрономические значения при крошечной базе прошлого периода.
const changeCap = 999.0

// Metric — значение метрики с процентом изменения к прошлому периоду.
type Metric struct {
	Value  float64 `json:"value"`
	Change float64 `json:"change"`
	Trend  Trend   `json:"trend"`
}

// Comparison — сравнение текущего периода с предыдущим по трём метрикам.
type Comparison struct {
	AverageRating  Metric `json:"average_rating"`
	TotalReviews   Metric `json:"total_reviews"`
	ConversionRate Metric `json:"conversion_rate"`
}

// periodTotals — агрегаты одного периода.
type periodTotals struct {
	averageRating  float64
	totalReviews   float64
	conversionRate float64
}

// ComparePeriods считает метрики текущего периода и равного по длине
// предыдущего, примыкающего вплотную.
func ComparePeriods(reviews []models.Review, sel Selection) (Comparison, error) {
	return ComparePeriodsAt(time.Now(), reviews, sel)
}

// ComparePeriodsAt — то же, что ComparePeriods, с явной точкой отсчёта.
//
// Текущий период включает обе границы; предыдущий — [prevStart, prevEnd),
// конец исключён, чтобы граничный момент не посчитался дважды.
// Для "all" предыдущего периода не существует: изменения нулевые.
func ComparePeriodsAt(now time.Time, reviews []models.Review, sel Selection) (Comparison, error) {
	current, err := ResolveRangeAt(now, sel)
	if err != nil {
		return Comparison{}, err
	}

	curTotals := aggregate(reviews, func(t time.Time) bool {
		return current.Contains(t)
	})

	if sel.Token == RangeAll {
		return Comparison{
			AverageRating:  Metric{Value: curTotals.averageRating, Trend: TrendNeutral},
			TotalReviews:   Metric{Value: curTotals.totalReviews, Trend: TrendNeutral},
			ConversionRate: Metric{Value: curTotals.conversionRate, Trend: TrendNeutral},
		}, nil
	}

	prevEnd := current.Start
	prevStart := prevEnd.Add(-current.Duration())
	prevTotals := aggregate(reviews, func(t time.Time) bool {
		return !t.Before(prevStart) && t.Before(prevEnd)
	})

	return Comparison{
		AverageRating:  makeMetric(curTotals.averageRating, prevTotals.averageRating),
		TotalReviews:   makeMetric(curTotals.totalReviews, prevTotals.totalReviews),
		ConversionRate: makeMetric(curTotals.conversionRate, prevTotals.conversionRate),
	}, nil
}

// aggregate считает агрегаты по подмножеству отзывов, попавших в период.
// Пустые знаменатели дают 0, а не NaN. Оценки вне [1,5] не участвуют
// в среднем рейтинге, но учитываются в количестве и конверсии.
func aggregate(reviews []models.Review, inPeriod func(time.Time) bool) periodTotals {
	var total, completed, rated, ratingSum int
	for i := range reviews {
		r := &reviews[i]
		if r.CreatedAt.IsZero() || !inPeriod(r.CreatedAt) {
			continue
		}
		total++
		if r.IsCompleted() {
			completed++
		}
		if r.HasValidRating() {
			rated++
			ratingSum += r.Rating
		}
	}

	t := periodTotals{totalReviews: float64(total)}
	if rated > 0 {
		t.averageRating = float64(ratingSum) / float64(rated)
	}
	if total > 0 {
		t.conversionRate = 100 * float64(completed) / float64(total)
	}
	return t
}

// makeMetric собирает метрику из значений текущего и прошлого периодов.
func makeMetric(current, previous float64) Metric {
	change := percentChange(current, previous)
	return Metric{Value: current, Change: change, Trend: trendFor(change)}
}

// percentChange считает процент изменения. Нулевая база — особый случай:
// рост с нуля отдаётся как +100, ноль к нулю — как 0.
func percentChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	change := 100 * (current - previous) / previous
	if change > changeCap {
		return changeCap
	}
	if change < -changeCap {
		return -changeCap
	}
	return change
}

// trendFor переводит процент изменения в направление для индикатора.
func trendFor(change float64) Trend {
	switch {
	case change >= trendEpsilon:
		return TrendUp
	case change <= -trendEpsilon:
		return TrendDown
	default:
		return TrendNeutral
	}
}
