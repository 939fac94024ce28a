package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order 创建后明细、金额与客户不变，只有 Status 可改
type Order struct {
	ID           string          `gorm:"primaryKey;type:varchar(32)" json:"id"`
	CustomerID   string          `gorm:"type:varchar(32);not null;index" json:"customerId"`
	Customer     *Customer       `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CustomerName string          `gorm:"size:130;not null" json:"customerName"`
	LineItems    []OrderLineItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"`
	Status       OrderStatus     `gorm:"size:16;not null;default:pending;index" json:"status"`
	CreatedBy    string          `gorm:"type:varchar(32)" json:"createdBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Order) TableName() string { return "orders" }

type OrderLineItem struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID       string          `gorm:"type:varchar(32);not null;index" json:"-"`
	CatalogItemID string          `gorm:"type:varchar(32);not null;index" json:"itemId"`
	CatalogItem   *CatalogItem    `gorm:"foreignKey:CatalogItemID;constraint:OnDelete:RESTRICT" json:"-"`
	Position      int             `gorm:"not null" json:"-"`
	Name          string          `gorm:"size:128;not null" json:"name"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Quantity      int             `gorm:"not null" json:"quantity"`
}

func (OrderLineItem) TableName() string { return "order_line_items" }

// Subtotal 单价 × 数量
func (li OrderLineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

type OrderFilter struct {
	Q      string      // 订单号或客户名子串
	Status OrderStatus // 精确匹配，为空不过滤
	Offset int
	Limit  int
}

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, f OrderFilter) ([]Order, int64, error)
	// All 全部订单含明细，按创建时间升序
	All(ctx context.Context) ([]Order, error)
	Recent(ctx context.Context, n int) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, s OrderStatus) (bool, error)
	Delete(ctx context.Context, id string) error
	CountByCustomer(ctx context.Context, customerID string) (int64, error)
	CountsByCustomer(ctx context.Context) (map[string]int64, error)
}
