package stats

// DefaultItemsPerPage используется, когда размер страницы не задан или невалиден.
const DefaultItemsPerPage = 10

// PaginationState хранит состояние постраничного вывода.
// Значение неизменяемое: методы With* возвращают новый снимок,
// в котором текущая страница заново зажата в допустимые границы.
type PaginationState struct {
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
	TotalItems   int `json:"total_items"`
}

// NewPaginationState создаёт состояние на первой странице.
func NewPaginationState(itemsPerPage int) PaginationState {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	return PaginationState{CurrentPage: 1, ItemsPerPage: itemsPerPage}
}

// TotalPages возвращает число страниц, минимум 1 даже при пустом списке.
func (p PaginationState) TotalPages() int {
	if p.TotalItems <= 0 || p.ItemsPerPage <= 0 {
		return 1
	}
	pages := (p.TotalItems + p.ItemsPerPage - 1) / p.ItemsPerPage
	if pages < 1 {
		return 1
	}
	return pages
}

// Offset возвращает индекс первого элемента текущей страницы.
func (p PaginationState) Offset() int {
	return (p.CurrentPage - 1) * p.ItemsPerPage
}

// WithPage возвращает снимок с запрошенной страницей, зажатой в границы.
func (p PaginationState) WithPage(page int) PaginationState {
	p.CurrentPage = page
	return p.clamped()
}

// WithPageSize меняет размер страницы. Границы пересчитываются по тому
// TotalItems, который уже есть в состоянии: если количество элементов тоже
// изменилось, вызывающий должен передать его через WithTotalItems.
func (p PaginationState) WithPageSize(itemsPerPage int) PaginationState {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	p.ItemsPerPage = itemsPerPage
	return p.clamped()
}

// WithTotalItems обновляет общее число элементов и зажимает страницу.
func (p PaginationState) WithTotalItems(total int) PaginationState {
	if total < 0 {
		total = 0
	}
	p.TotalItems = total
	return p.clamped()
}

// clamped приводит текущую страницу к диапазону [1, TotalPages].
func (p PaginationState) clamped() PaginationState {
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if max := p.TotalPages(); p.CurrentPage > max {
		p.CurrentPage = max
	}
	return p
}
