package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ginContextWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", DefaultPage, DefaultPageSize},
		{"explicit values", "page=3&limit=25", 3, 25},
		{"limit clamped to max", "limit=500", DefaultPage, MaxPageSize},
		{"garbage falls back to defaults", "page=abc&limit=-2", DefaultPage, DefaultPageSize},
		{"zero page falls back", "page=0", DefaultPage, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := ParsePaginationParams(ginContextWithQuery(tt.query))
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 10)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)

	offset, limit = CalculateOffsetLimit(4, 25)
	assert.Equal(t, 75, offset)
	assert.Equal(t, 25, limit)

	offset, limit = CalculateOffsetLimit(0, 0)
	assert.Equal(t, 0, offset)
	assert.Equal(t, DefaultPageSize, limit)
}
