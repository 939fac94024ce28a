package ez

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CrudConfig 资源的标准 REST 路由（均要求登录）：
//
//	POST   {Path}      Create
//	GET    {Path}      List
//	GET    {Path}/:id  Get
//	PUT    {Path}/:id  Update
//	DELETE {Path}/:id  Delete
//
// 为 nil 的操作不注册。T 资源，C 创建入参，U 更新入参，L 列表查询。
type CrudConfig[T any, C any, U any, L any] struct {
	Path   string
	Roles  []string
	Create func(c *gin.Context, in *C) (*T, error)
	List   func(c *gin.Context, q *L) (any, error)
	Get    func(c *gin.Context, id string) (*T, error)
	Update func(c *gin.Context, id string, in *U) (*T, error)
	Delete func(c *gin.Context, id string) error
}

func Crud[T any, C any, U any, L any](e EZ, cfg CrudConfig[T, C, U, L]) {
	byID := cfg.Path + "/:id"

	if cfg.Create != nil {
		RegisterAction(e, Action[C, *T]{
			Method: http.MethodPost, Path: cfg.Path, Binder: BindJSON,
			Auth: true, Roles: cfg.Roles,
			Handler: cfg.Create,
		})
	}
	if cfg.List != nil {
		RegisterAction(e, Action[L, any]{
			Method: http.MethodGet, Path: cfg.Path, Binder: BindQuery,
			Auth: true, Roles: cfg.Roles,
			Handler: cfg.List,
		})
	}
	if cfg.Get != nil {
		RegisterAction(e, Action[struct{}, *T]{
			Method: http.MethodGet, Path: byID, Binder: BindNone,
			Auth: true, Roles: cfg.Roles,
			Handler: func(c *gin.Context, _ *struct{}) (*T, error) { return cfg.Get(c, c.Param("id")) },
		})
	}
	if cfg.Update != nil {
		RegisterAction(e, Action[U, *T]{
			Method: http.MethodPut, Path: byID, Binder: BindJSON,
			Auth: true, Roles: cfg.Roles,
			Handler: func(c *gin.Context, in *U) (*T, error) { return cfg.Update(c, c.Param("id"), in) },
		})
	}
	if cfg.Delete != nil {
		RegisterAction(e, Action[struct{}, gin.H]{
			Method: http.MethodDelete, Path: byID, Binder: BindNone,
			Auth: true, Roles: cfg.Roles,
			Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
				id := c.Param("id")
				if err := cfg.Delete(c, id); err != nil {
					return nil, err
				}
				return gin.H{"id": id}, nil
			},
		})
	}
}
