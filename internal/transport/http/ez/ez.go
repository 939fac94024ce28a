package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "jewellery-backoffice/internal/transport/http/response"
)

// gin context keys，AuthJWT / RequestID 中间件写入
const (
	KeyRequestID = "X-Request-ID"
	KeyUserID    = "userId"
	KeyEmail     = "email"
	KeyRole      = "role"
	KeyClaims    = "claims"
	// 包体里的业务码，供 AccessLog / Metrics 使用（HTTP 状态恒为 200）
	KeyRespCode = "respCode"
)

// Write 写出统一包体并记录业务码
func Write(c *gin.Context, r resp.Resp) {
	c.Set(KeyRespCode, r.Code)
	c.JSON(http.StatusOK, r)
}

// Abort 中间件拒绝请求时使用
func Abort(c *gin.Context, code int, msg string) {
	c.Set(KeyRespCode, code)
	c.AbortWithStatusJSON(http.StatusOK, resp.Error(code, msg))
}

// RespCode 本次请求写出的业务码；未经 ez 写出时为 -1
func RespCode(c *gin.Context) int {
	if v, ok := c.Get(KeyRespCode); ok {
		if code, ok := v.(int); ok {
			return code
		}
	}
	return -1
}

type EZ struct {
	g *gin.RouterGroup
	l *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, l: l}
}

func (e EZ) Group() *gin.RouterGroup { return e.g }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string   // "GET" | "POST" | "PUT" | "DELETE"
	Path    string   // 例："/auth/login"、"/orders/:id/status"
	Binder  Binder   // 绑定方式
	Auth    bool     // 是否要求登录（检查 userId）
	Roles   []string // 限定角色（可选）
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 鉴权/角色
		if a.Auth {
			if c.GetString(KeyUserID) == "" {
				Write(c, resp.Error(resp.CodeUnauthorized, "unauthorized"))
				return
			}
			if len(a.Roles) > 0 && !hasRole(c.GetString(KeyRole), a.Roles) {
				Write(c, resp.Error(resp.CodeForbidden, "forbidden"))
				return
			}
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(bindErr, &tooLarge) {
				Write(c, resp.Error(resp.CodeTooLarge, "request body too large"))
				return
			}
			Write(c, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		// 3) 执行 + 统一错误映射
		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, e.l, err)
			return
		}
		Write(c, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}

// PageQuery ?page=1&size=20
type PageQuery struct {
	Page int `form:"page,default=1"`
	Size int `form:"size,default=20"`
}

// Normalize 返回 offset/limit，size 超范围回落到 20
func (p *PageQuery) Normalize() (offset, limit int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Size <= 0 || p.Size > 100 {
		p.Size = 20
	}
	return (p.Page - 1) * p.Size, p.Size
}
