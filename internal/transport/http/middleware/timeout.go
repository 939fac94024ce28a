package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"jewellery-backoffice/internal/transport/http/ez"
	resp "jewellery-backoffice/internal/transport/http/response"
)

// Timeout 给请求 ctx 加截止时间；repo 层都带 ctx，超时后查询会被取消
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			ez.Abort(c, resp.CodeTimeout, "timeout")
		}
	}
}
