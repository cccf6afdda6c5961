package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextRequestIDKey 请求 ID 在 gin 上下文中的键
const ContextRequestIDKey = "request_id"

const headerRequestID = "X-Request-ID"

// RequestID 透传或生成请求 ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(headerRequestID)
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Set(ContextRequestIDKey, rid)
		c.Header(headerRequestID, rid)
		c.Next()
	}
}
