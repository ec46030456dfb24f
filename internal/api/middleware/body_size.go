package middleware

import (
	"fmt"
	"net/http"

	"nutriai/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrBodyTooLarge 請求體超過上限
var ErrBodyTooLarge = common.NewError("BODY_TOO_LARGE", "請求體過大", http.StatusRequestEntityTooLarge, nil)

// BodySizeLimit 限制請求體大小；未宣告長度的請求在讀取超過上限時失敗
func BodySizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			common.LogWarn("Request body too large",
				zap.Int64("content_length", c.Request.ContentLength),
				zap.Int64("max_size", maxSize),
				zap.String("path", c.Request.URL.Path),
			)
			common.WriteError(c, ErrBodyTooLarge.Wrap(fmt.Errorf("limit is %d bytes", maxSize)))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
