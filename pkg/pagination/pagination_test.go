package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func paramsFor(query string) Params {
	return FromRequest(httptest.NewRequest(http.MethodGet, "/api/v1/admin/contacts"+query, nil))
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		page    int
		perPage int
		offset  int
	}{
		{"no parameters", "", 1, 20, 0},
		{"explicit values", "?page=3&per_page=50", 3, 50, 100},
		{"negative page falls back", "?page=-1", 1, 20, 0},
		{"zero page falls back", "?page=0", 1, 20, 0},
		{"non-numeric page falls back", "?page=abc", 1, 20, 0},
		{"per_page over cap falls back", "?per_page=200", 1, 20, 0},
		{"per_page at cap accepted", "?per_page=100", 1, 100, 0},
		{"zero per_page falls back", "?per_page=0", 1, 20, 0},
		{"offset from later page", "?page=5&per_page=20", 5, 20, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paramsFor(tt.query)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.perPage, p.PerPage)
			assert.Equal(t, tt.offset, p.Offset)
		})
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 0, p.Offset)
}

func TestNewResult_SinglePage(t *testing.T) {
	data := []string{"message-1", "message-2", "message-3"}
	res := NewResult(data, 3, Params{Page: 1, PerPage: 10})

	assert.Equal(t, data, res.Data)
	assert.Equal(t, 3, res.TotalCount)
	assert.Equal(t, 1, res.TotalPages)
	assert.False(t, res.HasNext)
	assert.False(t, res.HasPrev)
}

func TestNewResult_MiddlePage(t *testing.T) {
	res := NewResult([]string{"a", "b"}, 10, Params{Page: 2, PerPage: 2, Offset: 2})

	assert.Equal(t, 5, res.TotalPages)
	assert.True(t, res.HasNext)
	assert.True(t, res.HasPrev)
}

func TestNewResult_PartialLastPage(t *testing.T) {
	res := NewResult([]string{"a"}, 11, Params{Page: 3, PerPage: 5, Offset: 10})

	assert.Equal(t, 3, res.TotalPages, "11 rows at 5 per page need 3 pages")
	assert.False(t, res.HasNext)
	assert.True(t, res.HasPrev)
}

func TestNewResult_FirstOfMany(t *testing.T) {
	res := NewResult([]string{"a"}, 20, Params{Page: 1, PerPage: 5})

	assert.True(t, res.HasNext)
	assert.False(t, res.HasPrev)
}

func TestNewResult_Empty(t *testing.T) {
	res := NewResult([]string{}, 0, Params{Page: 1, PerPage: 20})

	assert.Zero(t, res.TotalCount)
	assert.Zero(t, res.TotalPages)
	assert.False(t, res.HasNext)
	assert.False(t, res.HasPrev)
}
