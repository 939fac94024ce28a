package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"jewellery-backoffice/internal/transport/http/ez"
)

// 日志里打码的 query 参数（小写比较）
var sensitiveKeys = map[string]struct{}{
	"password": {}, "pwd": {}, "token": {}, "authorization": {},
	"secret": {}, "client_secret": {}, "access_token": {},
}

func maskQuery(kv map[string][]string) map[string][]string {
	out := make(map[string][]string, len(kv))
	for k, v := range kv {
		if _, ok := sensitiveKeys[strings.ToLower(k)]; ok {
			v = []string{"****"}
		}
		out[k] = v
	}
	return out
}

// levelFor 按包体业务码定级：5xx Error，4xx Warn
func levelFor(code int) zapcore.Level {
	switch {
	case code >= 500:
		return zapcore.ErrorLevel
	case code >= 400:
		return zapcore.WarnLevel
	}
	return zapcore.InfoLevel
}

// AccessLog 每个请求一行摘要
func AccessLog(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		code := ez.RespCode(c)
		ce := l.Check(levelFor(code), "request")
		if ce == nil {
			return
		}
		ce.Write(
			zap.String("rid", c.GetString(KeyRequestID)),
			zap.String("uid", c.GetString(ez.KeyUserID)),
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Int("code", code),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("ua", c.Request.UserAgent()),
			zap.Any("query", maskQuery(c.Request.URL.Query())),
			zap.Int("size", c.Writer.Size()),
		)
	}
}
