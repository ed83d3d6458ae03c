package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQuery_Filter(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f := ListQuery{}.Filter(nil)
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, DefaultPageSize, f.PageSize)
		assert.Equal(t, "created_at", f.OrderBy)
		assert.Equal(t, "desc", f.OrderDir)
		assert.Empty(t, f.Filters)
	})

	t.Run("copies paging and skips empty filters", func(t *testing.T) {
		f := ListQuery{Search: "  acme ", Page: 3, PageSize: 500, OrderBy: "name", OrderDir: "ASC"}.
			Filter(map[string]string{"status": "active", "city": " "})
		assert.Equal(t, 3, f.Page)
		assert.Equal(t, MaxPageSize, f.PageSize)
		assert.Equal(t, "name", f.OrderBy)
		assert.Equal(t, "asc", f.OrderDir)
		assert.Equal(t, "acme", f.Search)
		assert.Equal(t, map[string]any{"status": "active"}, f.Filters)
	})
}

func TestListQuery_Paging(t *testing.T) {
	page, size := ListQuery{}.Paging()
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, size)

	page, size = ListQuery{Page: 4, PageSize: 1000}.Paging()
	assert.Equal(t, 4, page)
	assert.Equal(t, MaxPageSize, size)
}
