package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// WriteError 依錯誤類型寫入統一格式的錯誤響應
func WriteError(c *gin.Context, err error) {
	status := StatusOf(err)
	resp := ErrorResponse{Code: ErrCodeInternalError, Message: err.Error()}
	if ce, ok := err.(*CustomError); ok {
		resp.Code = ce.Code
		resp.Message = ce.Message
		if ce.Err != nil {
			resp.Details = ce.Err.Error()
		}
	} else if IsValidationError(err) {
		resp.Code = ErrCodeInvalidRequest
	}
	c.AbortWithStatusJSON(status, resp)
}
