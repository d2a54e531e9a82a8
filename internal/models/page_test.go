package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageResponse(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		page := NewPageResponse([]int{1, 2, 3}, 1, 3, 10)
		assert.Equal(t, 1, page.PageNumber)
		assert.Equal(t, 3, page.PageSize)
		assert.Equal(t, int64(10), page.TotalElements)
		assert.Equal(t, 4, page.TotalPages)
		assert.False(t, page.Last)
	})

	t.Run("last partial page", func(t *testing.T) {
		page := NewPageResponse([]int{10}, 3, 3, 10)
		assert.Equal(t, 4, page.TotalPages)
		assert.True(t, page.Last)
	})

	t.Run("exact fit", func(t *testing.T) {
		page := NewPageResponse([]int{1, 2, 3}, 0, 3, 3)
		assert.Equal(t, 1, page.TotalPages)
		assert.True(t, page.Last)
	})

	t.Run("empty result", func(t *testing.T) {
		page := NewPageResponse([]int{}, 0, 20, 0)
		assert.Equal(t, 0, page.TotalPages)
		assert.True(t, page.Last)
		assert.Empty(t, page.Content)
	})

	t.Run("page beyond the end", func(t *testing.T) {
		page := NewPageResponse([]int{}, 9, 20, 5)
		assert.Equal(t, 1, page.TotalPages)
		assert.True(t, page.Last)
	})
}
