package httpx

import (
	"net/http"

	"ai-site-server/internal/common"

	"github.com/gin-gonic/gin"
)

// WriteServiceError 将服务层错误统一转换为 HTTP 错误响应。
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	if serviceErr, ok := common.AsServiceError(err); ok {
		c.JSON(ServiceErrorStatus(serviceErr.Code), gin.H{"error": serviceErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMessage})
}

// ServiceErrorStatus 错误码到状态码的唯一映射。
// 注意：Conflict 对外表现为 400（与历史 API 行为保持一致）。
func ServiceErrorStatus(code common.ErrorCode) int {
	switch code {
	case common.ErrorCodeValidation:
		return http.StatusBadRequest
	case common.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case common.ErrorCodeConflict:
		return http.StatusBadRequest
	case common.ErrorCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
