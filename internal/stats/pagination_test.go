package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationState_EmptyListResolvesToPageOne(t *testing.T) {
	p := NewPaginationState(10).WithTotalItems(0).WithPage(5)

	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 1, p.TotalPages())
	assert.Equal(t, 0, p.Offset())
}

func TestPaginationState_ClampsWhenTotalShrinks(t *testing.T) {
	p := NewPaginationState(10).WithTotalItems(100).WithPage(10)
	assert.Equal(t, 10, p.CurrentPage)

	// фильтр сузил коллекцию, страница падает к последней валидной
	p = p.WithTotalItems(25)
	assert.Equal(t, 3, p.CurrentPage)
}

func TestPaginationState_PageSizeChangeUsesStaleTotal(t *testing.T) {
	p := NewPaginationState(10).WithTotalItems(50).WithPage(5)

	// total остаётся прежним, граница пересчитывается по нему
	p = p.WithPageSize(25)
	assert.Equal(t, 2, p.TotalPages())
	assert.Equal(t, 2, p.CurrentPage)
}

func TestPaginationState_InvalidInputsNormalized(t *testing.T) {
	p := NewPaginationState(0)
	assert.Equal(t, DefaultItemsPerPage, p.ItemsPerPage)

	p = p.WithPage(-3)
	assert.Equal(t, 1, p.CurrentPage)

	p = p.WithTotalItems(-10)
	assert.Equal(t, 0, p.TotalItems)
}

func TestPaginationState_TotalPagesRoundsUp(t *testing.T) {
	p := NewPaginationState(10).WithTotalItems(21)
	assert.Equal(t, 3, p.TotalPages())

	p = p.WithTotalItems(20)
	assert.Equal(t, 2, p.TotalPages())
}
