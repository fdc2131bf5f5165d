package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-api/internal/domain"
)

// 错误统一走类型化 domain.Error，在这里一次性映射成 HTTP 状态码。
// service 层不允许“success:false 还带 200”的混合口径。
func StatusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalid:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func WriteOK(c *gin.Context, status int, message string, object any) {
	c.JSON(status, OK(message, object))
}

func WritePaged(c *gin.Context, message string, object any, page, pageSize int, total int64) {
	c.JSON(http.StatusOK, Paged(message, object, page, pageSize, total))
}

func WriteError(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// 内部原因不往外漏
		msg = "internal server error"
		_ = c.Error(err)
	}
	c.JSON(status, Fail(msg))
}
