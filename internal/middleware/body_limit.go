package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadBodyLimit 限制上传接口的请求体大小。
// 超限在传输层直接拒绝，不进入业务逻辑。
func UploadBodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			// 如果未设置或为0，默认 3MB
			maxBytes = 3000000
		}

		if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("文件大小不能超过 %d 字节", maxBytes)})
			c.Abort()
			return
		}

		// 使用 MaxBytesReader 限制读取的字节数
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

		c.Next()
	}
}
