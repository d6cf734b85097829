package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lams-capstone/lams-admin/internal/app/models/dto"
	"github.com/lams-capstone/lams-admin/internal/pkg/logger"
)

// Recovery turns a panic in a handler into the generic failure envelope
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error().
			Str("panic", fmt.Sprint(recovered)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")

		message := "Internal server error"
		if ExposeErrorDetails {
			message = fmt.Sprintf("Internal server error: %v", recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Error(message))
	})
}
