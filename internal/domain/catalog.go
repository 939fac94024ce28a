package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category string

const (
	CategoryRings     Category = "rings"
	CategoryNecklaces Category = "necklaces"
	CategoryEarrings  Category = "earrings"
	CategoryBracelets Category = "bracelets"
	CategoryWatches   Category = "watches"
)

var categories = map[Category]struct{}{
	CategoryRings: {}, CategoryNecklaces: {}, CategoryEarrings: {},
	CategoryBracelets: {}, CategoryWatches: {},
}

func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

// CatalogItem 可售首饰
type CatalogItem struct {
	ID          string          `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Name        string          `gorm:"size:128;not null;index" json:"name"`
	Category    Category        `gorm:"size:16;not null;index" json:"category"`
	Material    string          `gorm:"size:64;not null" json:"material"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	ImageRef    string          `gorm:"size:1024" json:"imageRef,omitempty"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	CreatedBy   string          `gorm:"type:varchar(32)" json:"createdBy,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CatalogItem) TableName() string { return "catalog_items" }

// Validate 单条记录的字段约束
func (it *CatalogItem) Validate() error {
	switch {
	case it.Name == "":
		return Validation("name is required")
	case it.Material == "":
		return Validation("material is required")
	case !it.Category.Valid():
		return Validation("invalid category %q", it.Category)
	case it.Price.IsNegative():
		return Validation("price must not be negative")
	case it.Stock < 0:
		return Validation("stock must not be negative")
	}
	return nil
}

type CatalogFilter struct {
	Q        string   // 名称/材质子串，不区分大小写
	Category Category // 精确匹配
	// LowStockBelow > 0 时只留库存低于它的
	LowStockBelow int
	Offset        int
	Limit         int
}

// InventoryFilter 库存页筛选：Q 匹配名称或品类
type InventoryFilter struct {
	Q             string
	LowStockBelow int
}

type CatalogRepository interface {
	Create(ctx context.Context, it *CatalogItem) error
	FindByID(ctx context.Context, id string) (*CatalogItem, error)
	List(ctx context.Context, f CatalogFilter) ([]CatalogItem, int64, error)
	ListInventory(ctx context.Context, f InventoryFilter) ([]CatalogItem, error)
	Recent(ctx context.Context, n int) ([]CatalogItem, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, it *CatalogItem) error
	Delete(ctx context.Context, id string) error
	// AdjustStock 扣减 qty；记录不存在或库存会变负时 ok=false
	AdjustStock(ctx context.Context, id string, qty int) (ok bool, err error)
}

func init() {
	// 价格与金额按 JSON 数字输出
	decimal.MarshalJSONWithoutQuotes = true
}
