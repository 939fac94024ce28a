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

type orderLineReq struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type orderCreateReq struct {
	CustomerID string         `json:"customerId"`
	Status     string         `json:"status"`
	Items      []orderLineReq `json:"items" binding:"dive"`
}

type orderStatusReq struct {
	Status string `json:"status" binding:"required"`
}

type orderListQ struct {
	ez.PageQuery
	Q      string `form:"q"`
	Status string `form:"status"`
}

type OrderHandler struct {
	svc *service.OrderService
	log *zap.Logger
}

func NewOrderHandler(svc *service.OrderService, l *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: l}
}

func (h *OrderHandler) Priority() int { return 30 }

func (h *OrderHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	// 订单不可整体修改，只开放状态变更
	ez.Crud(e, ez.CrudConfig[domain.Order, orderCreateReq, struct{}, orderListQ]{
		Path: "/orders",
		Create: func(c *gin.Context, in *orderCreateReq) (*domain.Order, error) {
			lines := make([]service.LineRequest, 0, len(in.Items))
			for _, it := range in.Items {
				lines = append(lines, service.LineRequest{ItemID: it.ItemID, Quantity: it.Quantity})
			}
			return h.svc.Create(c.Request.Context(), service.OrderInput{
				CustomerID: in.CustomerID,
				Status:     domain.OrderStatus(in.Status),
				Items:      lines,
			}, c.GetString(ez.KeyUserID))
		},
		List: func(c *gin.Context, q *orderListQ) (any, error) {
			offset, limit := q.Normalize()
			orders, total, err := h.svc.List(c.Request.Context(), domain.OrderFilter{
				Q: q.Q, Status: domain.OrderStatus(q.Status), Offset: offset, Limit: limit,
			})
			if err != nil {
				return nil, err
			}
			return resp.Page[domain.Order]{List: orders, Total: total, Page: q.Page, Size: q.Size}, nil
		},
		Get: func(c *gin.Context, id string) (*domain.Order, error) {
			return h.svc.Get(c.Request.Context(), id)
		},
		Delete: func(c *gin.Context, id string) error {
			return h.svc.Delete(c.Request.Context(), id)
		},
	})

	ez.RegisterAction(e, ez.Action[orderStatusReq, *domain.Order]{
		Method: http.MethodPut,
		Path:   "/orders/:id/status",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *orderStatusReq) (*domain.Order, error) {
			return h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), domain.OrderStatus(in.Status))
		},
	})
}
