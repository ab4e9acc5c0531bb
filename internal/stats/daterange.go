package stats

import (
	"errors"
	"time"
)

// RangeToken — символьное обозначение периода, приходящее из дашборда.
type RangeToken string

const (
	RangeDay      RangeToken = "1d"
	RangeWeek     RangeToken = "7d"
	RangeMonth    RangeToken = "30d"
	RangeHalfYear RangeToken = "6m"
	RangeAll      RangeToken = "all"
	RangeCustom   RangeToken = "custom"
)

// ErrCustomRangeRequired возвращается, когда запрошен custom период без дат.
var ErrCustomRangeRequired = errors.New("stats: для периода custom нужны start и end даты")

// allTimeStart — условное "начало времён": раньше этой даты реальных данных нет.
var allTimeStart = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.Local)

// CustomRange — явно заданный пользователем период.
type CustomRange struct {
	Start time.Time
	End   time.Time
}

// Selection — выбранный в дашборде период: токен и, для custom, сами даты.
type Selection struct {
	Token  RangeToken
	Custom *CustomRange
}

// DateRange — конкретный период с включёнными границами.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains сообщает, попадает ли момент в период (обе границы включены).
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Duration возвращает длину периода.
func (r DateRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// ResolveRange превращает выбор периода в конкретный интервал относительно
// текущего момента. Начало нормализуется к 00:00:00.000, конец — к 23:59:59.999
// локального времени.
func ResolveRange(sel Selection) (DateRange, error) {
	return ResolveRangeAt(time.Now(), sel)
}

// ResolveRangeAt — то же, что ResolveRange, но с явной точкой отсчёта "сейчас".
// Правила:
//   - custom использует заданные даты как есть (после нормализации);
//     отсутствие дат — ошибка, пусть вызывающий их предоставит;
//   - 6m вычитает календарные месяцы, а не фиксированные 180 дней;
//   - all начинается с условного начала времён;
//   - незнакомый токен молча ведёт себя как 30d.
func ResolveRangeAt(now time.Time, sel Selection) (DateRange, error) {
	if sel.Token == RangeCustom {
		if sel.Custom == nil {
			return DateRange{}, ErrCustomRangeRequired
		}
		return DateRange{
			Start: startOfDay(sel.Custom.Start),
			End:   endOfDay(sel.Custom.End),
		}, nil
	}

	var start time.Time
	switch sel.Token {
	case RangeDay:
		start = now.AddDate(0, 0, -1)
	case RangeWeek:
		start = now.AddDate(0, 0, -7)
	case RangeHalfYear:
		start = addMonthsClamped(now, -6)
	case RangeAll:
		start = allTimeStart
	default:
		// 30d и всё нераспознанное
		start = now.AddDate(0, 0, -30)
	}

	return DateRange{Start: startOfDay(start), End: endOfDay(now)}, nil
}

// startOfDay обнуляет время до начала суток в зоне исходного момента.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// endOfDay сдвигает время к 23:59:59.999 тех же суток.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// addMonthsClamped сдвигает дату на months календарных месяцев.
// В отличие от time.AddDate, переполнение дня не перетекает в следующий месяц:
// 31 августа минус 6 месяцев даёт последний день февраля, а не 2 марта.
func addMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()+time.Month(months), 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())

	day := t.Day()
	if last := daysInMonth(firstOfTarget); day > last {
		day = last
	}
	return firstOfTarget.AddDate(0, 0, day-1)
}

// daysInMonth возвращает число дней в месяце указанной даты.
func daysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1).Day()
}
