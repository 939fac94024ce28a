package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewellery-backoffice/internal/domain"
	"jewellery-backoffice/internal/service"
	"jewellery-backoffice/internal/transport/http/ez"
	resp "jewellery-backoffice/internal/transport/http/response"
)

type customerCreateReq struct {
	FirstName string `json:"firstName" binding:"required,max=64"`
	LastName  string `json:"lastName"  binding:"required,max=64"`
	Email     string `json:"email"     binding:"required,email,max=191"`
	Phone     string `json:"phone"     binding:"max=32"`
	Address   string `json:"address"   binding:"max=255"`
}

type customerPatchReq struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=64"`
	LastName  *string `json:"lastName"  binding:"omitempty,max=64"`
	Email     *string `json:"email"     binding:"omitempty,email,max=191"`
	Phone     *string `json:"phone"     binding:"omitempty,max=32"`
	Address   *string `json:"address"   binding:"omitempty,max=255"`
}

type customerListQ struct {
	ez.PageQuery
	Q string `form:"q"`
}

type CustomerHandler struct {
	svc *service.CustomerService
	log *zap.Logger
}

func NewCustomerHandler(svc *service.CustomerService, l *zap.Logger) *CustomerHandler {
	return &CustomerHandler{svc: svc, log: l}
}

func (h *CustomerHandler) Priority() int { return 20 }

func (h *CustomerHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	ez.Crud(e, ez.CrudConfig[domain.Customer, customerCreateReq, customerPatchReq, customerListQ]{
		Path: "/customers",
		Create: func(c *gin.Context, in *customerCreateReq) (*domain.Customer, error) {
			return h.svc.Create(c.Request.Context(), service.CustomerInput{
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Email:     in.Email,
				Phone:     in.Phone,
				Address:   in.Address,
			}, c.GetString(ez.KeyUserID))
		},
		List: func(c *gin.Context, q *customerListQ) (any, error) {
			offset, limit := q.Normalize()
			rows, total, err := h.svc.List(c.Request.Context(), domain.CustomerFilter{Q: q.Q, Offset: offset, Limit: limit})
			if err != nil {
				return nil, err
			}
			return resp.Page[service.CustomerSummary]{List: rows, Total: total, Page: q.Page, Size: q.Size}, nil
		},
		Get: func(c *gin.Context, id string) (*domain.Customer, error) {
			return h.svc.Get(c.Request.Context(), id)
		},
		Update: func(c *gin.Context, id string, in *customerPatchReq) (*domain.Customer, error) {
			return h.svc.Update(c.Request.Context(), id, service.CustomerPatch{
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Email:     in.Email,
				Phone:     in.Phone,
				Address:   in.Address,
			})
		},
		Delete: func(c *gin.Context, id string) error {
			return h.svc.Delete(c.Request.Context(), id)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/customers/:id/order-count",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			n, err := h.svc.OrderCountFor(c.Request.Context(), id)
			if err != nil {
				return nil, err
			}
			return gin.H{"customerId": id, "orderCount": n}, nil
		},
	})
}
