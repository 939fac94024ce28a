package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jewellery-backoffice/internal/transport/http/ez"
)

const KeyRequestID = ez.KeyRequestID

// 上游透传的 id 超长则重新生成，避免日志被撑爆
const maxRequestIDLen = 64

// RequestID 透传或生成 X-Request-ID，写回响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(KeyRequestID)
		if rid == "" || len(rid) > maxRequestIDLen {
			rid = uuid.NewString()
		}
		c.Writer.Header().Set(KeyRequestID, rid)
		c.Set(KeyRequestID, rid)
		c.Next()
	}
}
