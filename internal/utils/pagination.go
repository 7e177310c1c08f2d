package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum-api/internal/pagination"
)

// GetPaginationParams reads the page query parameter. The page size is fixed by
// configuration; malformed pages fall back to the first one.
func GetPaginationParams(c *gin.Context, pageSize int) pagination.Params {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	return pagination.NewParams(page, pageSize)
}

// ParseIDParam parses a positive numeric path parameter.
func ParseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
