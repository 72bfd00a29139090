package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/paramreg/registry/internal/constants"
	"github.com/paramreg/registry/pkg/pagination"
)

var exposedHeaders = strings.Join([]string{
	pagination.HeaderTotalCount,
	pagination.HeaderPageCount,
	pagination.HeaderCurrentPage,
	pagination.HeaderPageSize,
	constants.HeaderXRequestID,
}, ", ")

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", constants.HeaderAllowedHeaders)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PATCH, DELETE")
		c.Writer.Header().Set(constants.HeaderExposeHeaders, exposedHeaders)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
