package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ParsePaginationParams reads page/limit query parameters, clamping them
// to sane bounds.
func ParsePaginationParams(c *gin.Context) (page, limit int) {
	page = DefaultPage
	limit = DefaultPageSize

	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// CalculateOffsetLimit converts page/limit into SQL OFFSET/LIMIT values.
func CalculateOffsetLimit(page, limit int) (offset, sqlLimit int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	return (page - 1) * limit, limit
}
