package middleware

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lams-capstone/lams-admin/internal/app/models/dto"
)

// pictureContentTypes lists the only files served from the uploads directory
var pictureContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// UploadHeaders guards the static uploads route. Only picture extensions are
// served and their Content-Type is fixed by extension with sniffing disabled.
func UploadHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ext := strings.ToLower(path.Ext(c.Request.URL.Path))
		contentType, ok := pictureContentTypes[ext]
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, dto.Error("File not found"))
			return
		}

		header := c.Writer.Header()
		header.Set("Content-Type", contentType)
		header.Set("X-Content-Type-Options", "nosniff")
		header.Set("Content-Security-Policy", "default-src 'none'; sandbox")

		c.Next()
	}
}
