package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	skip, limit := ParsePagination(r, 20, 100)
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(20), limit)

	r = httptest.NewRequest(http.MethodGet, "/x?page=3&limit=10", nil)
	skip, limit = ParsePagination(r, 20, 100)
	assert.Equal(t, int64(20), skip)
	assert.Equal(t, int64(10), limit)

	// limit is clamped to max
	r = httptest.NewRequest(http.MethodGet, "/x?limit=500", nil)
	_, limit = ParsePagination(r, 20, 100)
	assert.Equal(t, int64(100), limit)

	// garbage falls back to defaults
	r = httptest.NewRequest(http.MethodGet, "/x?page=-2&limit=abc", nil)
	skip, limit = ParsePagination(r, 20, 100)
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(20), limit)
}

func TestPaginate(t *testing.T) {
	items := []string{"a", "b", "c"}

	assert.Equal(t, []string{"b"}, Paginate(items, 1, 1))
	assert.Equal(t, items, Paginate(items, 0, 10))
	assert.Empty(t, Paginate(items, 5, 1))
	assert.Empty(t, Paginate([]string(nil), 0, 10))
}

func TestContainsIgnoreCase(t *testing.T) {
	assert.True(t, ContainsIgnoreCase("Shibuya Crossing", "shibuya"))
	assert.True(t, ContainsIgnoreCase("OSAKA", "osa"))
	assert.False(t, ContainsIgnoreCase("Kyoto", "tokyo"))
}
