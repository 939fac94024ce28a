package ez

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewellery-backoffice/internal/domain"
	resp "jewellery-backoffice/internal/transport/http/response"
)

// 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

var kindCodes = map[domain.Kind]int{
	domain.KindValidation:   resp.CodeBadRequest,
	domain.KindNotFound:     resp.CodeNotFound,
	domain.KindDuplicate:    resp.CodeConflict,
	domain.KindUnauthorized: resp.CodeUnauthorized,
	domain.KindPersistence:  resp.CodeServerError,
}

// CodeOf 错误 → 业务码
func CodeOf(err error) int {
	var ae *AErr
	if errors.As(err, &ae) {
		return ae.Code
	}
	// 请求超时（Timeout 中间件的截止时间）优先于持久化错误
	if errors.Is(err, context.DeadlineExceeded) {
		return resp.CodeTimeout
	}
	if code, ok := kindCodes[domain.KindOf(err)]; ok {
		return code
	}
	return resp.CodeServerError
}

// Fail 写出错误响应；5xx 记日志且不向外暴露细节
func Fail(c *gin.Context, l *zap.Logger, err error) {
	code := CodeOf(err)
	msg := err.Error()
	if code >= resp.CodeServerError {
		if l != nil {
			l.Error("request failed",
				zap.String("rid", c.GetString(KeyRequestID)),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}
		msg = resp.CodeMsgMap[code]
	}
	_ = c.Error(err)
	Write(c, resp.Error(code, msg))
}
