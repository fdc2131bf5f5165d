package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "jobboard-api/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小（简历上传也在这个上限内）
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Err() != nil && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp.Fail("request body too large"))
		}
	}
}
