package service

import (
	"context"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"jewellery-backoffice/internal/domain"
	"jewellery-backoffice/pkg/utils"
)

const (
	StockOK  = "OK"
	StockLow = "Low Stock"
)

type CatalogInput struct {
	Name        string
	Category    domain.Category
	Material    string
	Price       decimal.Decimal
	Stock       int
	ImageRef    string
	Description string
}

// CatalogPatch nil 字段保持原值
type CatalogPatch struct {
	Name        *string
	Category    *domain.Category
	Material    *string
	Price       *decimal.Decimal
	Stock       *int
	ImageRef    *string
	Description *string
}

type InventoryRow struct {
	Item        domain.CatalogItem `json:"item"`
	StockStatus string             `json:"stockStatus"`
}

type CatalogService struct {
	store    domain.Store
	inv      Invalidator
	lowStock int
}

func NewCatalogService(store domain.Store, inv Invalidator, lowStockThreshold int) *CatalogService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 5
	}
	return &CatalogService{store: store, inv: orNop(inv), lowStock: lowStockThreshold}
}

func (s *CatalogService) LowStockThreshold() int { return s.lowStock }

func normCategory(c domain.Category) domain.Category {
	return domain.Category(strings.ToLower(strings.TrimSpace(string(c))))
}

func (s *CatalogService) Create(ctx context.Context, in CatalogInput, createdBy string) (*domain.CatalogItem, error) {
	it := &domain.CatalogItem{
		ID:          utils.NewID(),
		Name:        strings.TrimSpace(in.Name),
		Category:    normCategory(in.Category),
		Material:    strings.TrimSpace(in.Material),
		Price:       in.Price,
		Stock:       in.Stock,
		ImageRef:    strings.TrimSpace(in.ImageRef),
		Description: strings.TrimSpace(in.Description),
		CreatedBy:   createdBy,
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Catalog().Create(ctx, it); err != nil {
		return nil, err
	}
	s.inv.Invalidate(ctx)
	return it, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.CatalogItem, error) {
	it, err := s.store.Catalog().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.NotFound("catalog item")
	}
	return it, nil
}

// Update 把 p 合并到现有记录后整体重新校验
func (s *CatalogService) Update(ctx context.Context, id string, p CatalogPatch) (*domain.CatalogItem, error) {
	it, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	setStr(&it.Name, p.Name)
	setStr(&it.Material, p.Material)
	setStr(&it.ImageRef, p.ImageRef)
	setStr(&it.Description, p.Description)
	if p.Category != nil {
		it.Category = normCategory(*p.Category)
	}
	if p.Price != nil {
		it.Price = *p.Price
	}
	if p.Stock != nil {
		it.Stock = *p.Stock
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Catalog().Update(ctx, it); err != nil {
		return nil, err
	}
	s.inv.Invalidate(ctx)
	return it, nil
}

// Delete 幂等
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.store.Catalog().Delete(ctx, id); err != nil {
		return err
	}
	s.inv.Invalidate(ctx)
	return nil
}

func (s *CatalogService) List(ctx context.Context, f domain.CatalogFilter) ([]domain.CatalogItem, int64, error) {
	f.Category = normCategory(f.Category)
	return s.store.Catalog().List(ctx, f)
}

// DecrementStock 扣减库存（qty 为负即补货），库存不会小于 0
func (s *CatalogService) DecrementStock(ctx context.Context, id string, qty int) (*domain.CatalogItem, error) {
	if err := decrementStock(ctx, s.store.Catalog(), id, qty); err != nil {
		return nil, err
	}
	s.inv.Invalidate(ctx)
	return s.Get(ctx, id)
}

func decrementStock(ctx context.Context, repo domain.CatalogRepository, id string, qty int) error {
	if qty == 0 {
		it, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if it == nil {
			return domain.NotFound("catalog item")
		}
		return nil
	}
	ok, err := repo.AdjustStock(ctx, id, qty)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	it, err := repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if it == nil {
		return domain.NotFound("catalog item")
	}
	stockRejectedTotal.Inc()
	return domain.Validation("insufficient stock for %q: have %d, need %d", it.Name, it.Stock, qty)
}

func (s *CatalogService) stockStatus(stock int) string {
	if stock < s.lowStock {
		return StockLow
	}
	return StockOK
}

// Inventory 库存列表；q 匹配名称或品类，lowOnly 只留低库存
func (s *CatalogService) Inventory(ctx context.Context, q string, lowOnly bool) ([]InventoryRow, error) {
	f := domain.InventoryFilter{Q: q}
	if lowOnly {
		f.LowStockBelow = s.lowStock
	}
	items, err := s.store.Catalog().ListInventory(ctx, f)
	if err != nil {
		return nil, err
	}
	rows := make([]InventoryRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, InventoryRow{Item: it, StockStatus: s.stockStatus(it.Stock)})
	}
	return rows, nil
}

type inventoryCSV struct {
	ID       string `csv:"id"`
	Name     string `csv:"name"`
	Category string `csv:"category"`
	Material string `csv:"material"`
	Price    string `csv:"price"`
	Stock    int    `csv:"stock"`
	Status   string `csv:"status"`
}

func (s *CatalogService) ExportInventoryCSV(ctx context.Context, w io.Writer, q string, lowOnly bool) error {
	rows, err := s.Inventory(ctx, q, lowOnly)
	if err != nil {
		return err
	}
	out := make([]inventoryCSV, 0, len(rows))
	for _, r := range rows {
		out = append(out, inventoryCSV{
			ID:       r.Item.ID,
			Name:     r.Item.Name,
			Category: string(r.Item.Category),
			Material: r.Item.Material,
			Price:    r.Item.Price.StringFixed(2),
			Stock:    r.Item.Stock,
			Status:   r.StockStatus,
		})
	}
	return gocsv.Marshal(out, w)
}
