package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ocenagor/admin-backend/internal/models"
)

// DefaultMaxRecords — жёсткий потолок на размер обрабатываемой коллекции.
// Ограничивает худший случай по работе, на корректность не влияет.
const DefaultMaxRecords = 1000

// SortDirection — направление сортировки.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Поля Review, по которым разрешена сортировка.
const (
	SortKeyCreatedAt   = "created_at"
	SortKeyCompletedAt = "completed_at"
	SortKeyRating      = "rating"
	SortKeyEmail       = "email"
	SortKeyPhone       = "phone"
	SortKeyComment     = "comment"
	SortKeyFlowType    = "flow_type"
	SortKeyCompany     = "company"
)

// SortConfig задаёт поле и направление сортировки.
type SortConfig struct {
	Key       string
	Direction SortDirection
}

// FilterParams — все входы конвейера фильтрации.
type FilterParams struct {
	Selection Selection
	Search    string
	Sort      SortConfig
	// Page и PerPage — запрошенная страница; её зажатие в границы происходит
	// уже после подсчёта отфильтрованных записей.
	Page    int
	PerPage int
	// MaxRecords ограничивает коллекцию до начала фильтрации; 0 — DefaultMaxRecords.
	MaxRecords int
}

// FilterResult — результат конвейера: полный отфильтрованный список и страница.
type FilterResult struct {
	Filtered   []models.Review `json:"filtered"`
	PageItems  []models.Review `json:"page_items"`
	Pagination PaginationState `json:"pagination"`
}

// FilterReviews прогоняет коллекцию через конвейер: потолок размера →
// окно дат → поиск → сортировка → страница. Битые записи (нулевой created_at)
// молча выбрасываются, ошибок по отдельным записям не бывает. Невалидный выбор
// периода (custom без дат) даёт пустой результат.
func FilterReviews(reviews []models.Review, companies map[uuid.UUID]string, p FilterParams) FilterResult {
	return FilterReviewsAt(time.Now(), reviews, companies, p)
}

// FilterReviewsAt — то же, что FilterReviews, с явной точкой отсчёта "сейчас".
func FilterReviewsAt(now time.Time, reviews []models.Review, companies map[uuid.UUID]string, p FilterParams) FilterResult {
	empty := FilterResult{
		Filtered:   []models.Review{},
		PageItems:  []models.Review{},
		Pagination: NewPaginationState(p.PerPage),
	}
	if len(reviews) == 0 {
		return empty
	}

	window, err := ResolveRangeAt(now, p.Selection)
	if err != nil {
		return empty
	}

	maxRecords := p.MaxRecords
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	if len(reviews) > maxRecords {
		reviews = reviews[:maxRecords]
	}

	filtered := make([]models.Review, 0, len(reviews))
	term := strings.ToLower(strings.TrimSpace(p.Search))
	for _, review := range reviews {
		if review.CreatedAt.IsZero() || !window.Contains(review.CreatedAt) {
			continue
		}
		if term != "" && !matchesSearch(&review, companies[review.CompanyID], term) {
			continue
		}
		filtered = append(filtered, review)
	}

	sortReviews(filtered, companies, p.Sort)

	page := NewPaginationState(p.PerPage).WithTotalItems(len(filtered)).WithPage(p.Page)
	lo := page.Offset()
	hi := lo + page.ItemsPerPage
	if lo > len(filtered) {
		lo = len(filtered)
	}
	if hi > len(filtered) {
		hi = len(filtered)
	}

	return FilterResult{
		Filtered:   filtered,
		PageItems:  append([]models.Review{}, filtered[lo:hi]...),
		Pagination: page,
	}
}

// matchesSearch проверяет вхождение подстроки без учёта регистра по имени
// компании, email, телефону, комментарию и тегам обратной связи.
func matchesSearch(r *models.Review, companyName, term string) bool {
	if strings.Contains(strings.ToLower(companyName), term) {
		return true
	}
	for _, field := range []*string{r.Email, r.Phone, r.Comment} {
		if field != nil && strings.Contains(strings.ToLower(*field), term) {
			return true
		}
	}
	for _, tag := range r.FeedbackOptions {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// sortReviews сортирует стабильно по заданному ключу. Записи без значения
// ключа всегда идут после записей со значением, независимо от направления.
func sortReviews(reviews []models.Review, companies map[uuid.UUID]string, cfg SortConfig) {
	if cfg.Key == "" {
		return
	}
	desc := cfg.Direction == SortDesc
	collator := collate.New(language.Und)

	sort.SliceStable(reviews, func(i, j int) bool {
		cmp, iNull, jNull := compareByKey(&reviews[i], &reviews[j], companies, cfg.Key, collator)
		if iNull != jNull {
			return jNull // null всегда в конце
		}
		if iNull {
			return false
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// compareByKey возвращает знак сравнения и признаки отсутствия значения.
func compareByKey(a, b *models.Review, companies map[uuid.UUID]string, key string, collator *collate.Collator) (cmp int, aNull, bNull bool) {
	switch key {
	case SortKeyCreatedAt:
		return compareTimes(&a.CreatedAt, &b.CreatedAt)
	case SortKeyCompletedAt:
		return compareTimes(a.CompletedAt, b.CompletedAt)
	case SortKeyRating:
		return a.Rating - b.Rating, !a.HasValidRating(), !b.HasValidRating()
	case SortKeyEmail:
		return compareStrings(a.Email, b.Email, collator)
	case SortKeyPhone:
		return compareStrings(a.Phone, b.Phone, collator)
	case SortKeyComment:
		return compareStrings(a.Comment, b.Comment, collator)
	case SortKeyFlowType:
		return collator.CompareString(a.FlowType, b.FlowType), a.FlowType == "", b.FlowType == ""
	case SortKeyCompany:
		an, bn := companies[a.CompanyID], companies[b.CompanyID]
		return collator.CompareString(an, bn), an == "", bn == ""
	default:
		// незнакомый ключ — порядок не меняем
		return 0, false, false
	}
}

func compareTimes(a, b *time.Time) (int, bool, bool) {
	aNull := a == nil || a.IsZero()
	bNull := b == nil || b.IsZero()
	if aNull || bNull {
		return 0, aNull, bNull
	}
	switch {
	case a.Before(*b):
		return -1, false, false
	case a.After(*b):
		return 1, false, false
	default:
		return 0, false, false
	}
}

func compareStrings(a, b *string, collator *collate.Collator) (int, bool, bool) {
	aNull := a == nil
	bNull := b == nil
	if aNull || bNull {
		return 0, aNull, bNull
	}
	return collator.CompareString(*a, *b), false, false
}
