package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"jewellery-backoffice/internal/domain"
	"jewellery-backoffice/internal/service"
	"jewellery-backoffice/internal/transport/http/ez"
	resp "jewellery-backoffice/internal/transport/http/response"
)

type catalogCreateReq struct {
	Name        string          `json:"name"        binding:"required,max=128"`
	Category    string          `json:"category"    binding:"required"`
	Material    string          `json:"material"    binding:"required,max=64"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageRef    string          `json:"imageRef"    binding:"max=1024"`
	Description string          `json:"description"`
}

type catalogPatchReq struct {
	Name        *string          `json:"name"     binding:"omitempty,max=128"`
	Category    *string          `json:"category"`
	Material    *string          `json:"material" binding:"omitempty,max=64"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	ImageRef    *string          `json:"imageRef" binding:"omitempty,max=1024"`
	Description *string          `json:"description"`
}

type catalogListQ struct {
	ez.PageQuery
	Q        string `form:"q"`
	Category string `form:"category"`
	LowStock bool   `form:"lowStock"`
}

type inventoryQ struct {
	Q        string `form:"q"`
	LowStock bool   `form:"lowStock"`
}

type adjustReq struct {
	// >0 补货，<0 出库
	Delta int `json:"delta" binding:"required"`
}

// CatalogHandler /jewellery 与 /inventory
type CatalogHandler struct {
	svc *service.CatalogService
	log *zap.Logger
}

func NewCatalogHandler(svc *service.CatalogService, l *zap.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: l}
}

func (h *CatalogHandler) Priority() int { return 10 }

func (h *CatalogHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	ez.Crud(e, ez.CrudConfig[domain.CatalogItem, catalogCreateReq, catalogPatchReq, catalogListQ]{
		Path: "/jewellery",
		Create: func(c *gin.Context, in *catalogCreateReq) (*domain.CatalogItem, error) {
			return h.svc.Create(c.Request.Context(), service.CatalogInput{
				Name:        in.Name,
				Category:    domain.Category(in.Category),
				Material:    in.Material,
				Price:       in.Price,
				Stock:       in.Stock,
				ImageRef:    in.ImageRef,
				Description: in.Description,
			}, c.GetString(ez.KeyUserID))
		},
		List: func(c *gin.Context, q *catalogListQ) (any, error) {
			offset, limit := q.Normalize()
			f := domain.CatalogFilter{Q: q.Q, Category: domain.Category(q.Category), Offset: offset, Limit: limit}
			if q.LowStock {
				f.LowStockBelow = h.svc.LowStockThreshold()
			}
			items, total, err := h.svc.List(c.Request.Context(), f)
			if err != nil {
				return nil, err
			}
			return resp.Page[domain.CatalogItem]{List: items, Total: total, Page: q.Page, Size: q.Size}, nil
		},
		Get: func(c *gin.Context, id string) (*domain.CatalogItem, error) {
			return h.svc.Get(c.Request.Context(), id)
		},
		Update: func(c *gin.Context, id string, in *catalogPatchReq) (*domain.CatalogItem, error) {
			p := service.CatalogPatch{
				Name:        in.Name,
				Material:    in.Material,
				Price:       in.Price,
				Stock:       in.Stock,
				ImageRef:    in.ImageRef,
				Description: in.Description,
			}
			if in.Category != nil {
				cat := domain.Category(*in.Category)
				p.Category = &cat
			}
			return h.svc.Update(c.Request.Context(), id, p)
		},
		Delete: func(c *gin.Context, id string) error {
			return h.svc.Delete(c.Request.Context(), id)
		},
	})

	ez.RegisterAction(e, ez.Action[inventoryQ, []service.InventoryRow]{
		Method: http.MethodGet,
		Path:   "/inventory",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, q *inventoryQ) ([]service.InventoryRow, error) {
			return h.svc.Inventory(c.Request.Context(), q.Q, q.LowStock)
		},
	})

	ez.RegisterAction(e, ez.Action[adjustReq, *domain.CatalogItem]{
		Method: http.MethodPost,
		Path:   "/inventory/:id/adjust",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *adjustReq) (*domain.CatalogItem, error) {
			return h.svc.DecrementStock(c.Request.Context(), c.Param("id"), -in.Delta)
		},
	})

	// CSV 直接输出文件，不走统一包体
	g.GET("/inventory/export", func(c *gin.Context) {
		var q inventoryQ
		if err := c.ShouldBindQuery(&q); err != nil {
			ez.Write(c, resp.Error(resp.CodeBadRequest, err.Error()))
			return
		}
		var buf bytes.Buffer
		if err := h.svc.ExportInventoryCSV(c.Request.Context(), &buf, q.Q, q.LowStock); err != nil {
			ez.Fail(c, h.log, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="inventory.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	})
}
