package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewellery-backoffice/internal/core/auth"
	"jewellery-backoffice/internal/transport/http/ez"
	resp "jewellery-backoffice/internal/transport/http/response"
)

// AuthJWT 校验 Bearer token；requireRole 非空时只放行该角色
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || tok == "" {
			ez.Abort(c, resp.CodeUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(tok)
		if err != nil {
			ez.Abort(c, resp.CodeUnauthorized, "invalid token")
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			ez.Abort(c, resp.CodeForbidden, "forbidden")
			return
		}
		c.Set(ez.KeyClaims, claims)
		c.Set(ez.KeyUserID, claims.UID)
		c.Set(ez.KeyEmail, claims.Email)
		c.Set(ez.KeyRole, claims.Role)
		c.Next()
	}
}

// ActiveFunc 账号是否仍可用（被封禁或已删除返回 false）
type ActiveFunc func(ctx context.Context, uid string) (bool, error)

// RequireActive 挂在 AuthJWT 之后：封禁立即生效，不等 token 过期
func RequireActive(active ActiveFunc, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := active(c.Request.Context(), c.GetString(ez.KeyUserID))
		if err != nil {
			l.Error("account check failed", zap.String("rid", c.GetString(KeyRequestID)), zap.Error(err))
			ez.Abort(c, resp.CodeServerError, "")
			return
		}
		if !ok {
			ez.Abort(c, resp.CodeUnauthorized, "account disabled")
			return
		}
		c.Next()
	}
}
