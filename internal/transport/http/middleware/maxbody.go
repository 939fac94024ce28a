package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jewellery-backoffice/internal/transport/http/ez"
	resp "jewellery-backoffice/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小：声明长度超限直接拒绝，
// 分块上传读超时由 ez 绑定阶段报 413
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			ez.Abort(c, resp.CodeTooLarge, "request body too large")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
