package handlers

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/qa-forum-api/internal/errors"
)

// bindJSON decodes and validates the request body into req. On failure it writes a
// 400 with the validator message as details and returns false.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return false
	}
	return true
}
