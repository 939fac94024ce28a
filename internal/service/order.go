package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"jewellery-backoffice/internal/domain"
	"jewellery-backoffice/pkg/utils"
)

type LineRequest struct {
	ItemID   string
	Quantity int
}

type OrderInput struct {
	CustomerID string
	Status     domain.OrderStatus // 为空即 pending
	Items      []LineRequest
}

type OrderService struct {
	store domain.Store
	inv   Invalidator
}

func NewOrderService(store domain.Store, inv Invalidator) *OrderService {
	return &OrderService{store: store, inv: orNop(inv)}
}

func normStatus(s domain.OrderStatus) domain.OrderStatus {
	return domain.OrderStatus(strings.ToLower(strings.TrimSpace(string(s))))
}

// Create 下单：订单、明细与库存扣减同一事务提交，任何一步失败都不留痕迹
func (s *OrderService) Create(ctx context.Context, in OrderInput, createdBy string) (*domain.Order, error) {
	status := normStatus(in.Status)
	if status == "" {
		status = domain.OrderPending
	}
	if !status.Valid() {
		return nil, domain.Validation("invalid order status %q", in.Status)
	}

	var created *domain.Order
	err := s.store.InTx(ctx, func(tx domain.Repos) error {
		cust, err := tx.Customers().FindByID(ctx, strings.TrimSpace(in.CustomerID))
		if err != nil {
			return err
		}
		if cust == nil {
			return domain.Validation("no customer selected")
		}

		lines := make([]domain.OrderLineItem, 0, len(in.Items))
		for _, req := range in.Items {
			id := strings.TrimSpace(req.ItemID)
			if id == "" {
				continue
			}
			it, err := tx.Catalog().FindByID(ctx, id)
			if err != nil {
				return err
			}
			if it == nil {
				// 找不到的商品直接跳过，数量也不校验
				continue
			}
			if req.Quantity < 1 {
				return domain.Validation("quantity must be at least 1")
			}
			lines = append(lines, domain.OrderLineItem{
				CatalogItemID: it.ID,
				Position:      len(lines),
				Name:          it.Name,
				UnitPrice:     it.Price,
				Quantity:      req.Quantity,
			})
		}
		if len(lines) == 0 {
			return domain.Validation("please add at least one item to the order")
		}

		total := decimal.Zero
		for _, li := range lines {
			total = total.Add(li.Subtotal())
		}
		o := &domain.Order{
			ID:           utils.NewID(),
			CustomerID:   cust.ID,
			CustomerName: cust.FullName(),
			LineItems:    lines,
			Total:        total,
			Status:       status,
			CreatedBy:    createdBy,
		}
		if err := tx.Orders().Create(ctx, o); err != nil {
			return err
		}
		for _, li := range lines {
			if err := decrementStock(ctx, tx.Catalog(), li.CatalogItemID, li.Quantity); err != nil {
				return err
			}
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	ordersCreatedTotal.WithLabelValues(string(created.Status)).Inc()
	orderRevenueTotal.Add(created.Total.InexactFloat64())
	s.inv.Invalidate(ctx)
	return created, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NotFound("order")
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	f.Status = normStatus(f.Status)
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, domain.Validation("invalid order status %q", f.Status)
	}
	return s.store.Orders().List(ctx, f)
}

// UpdateStatus 任意合法状态间都可切换
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	status = normStatus(status)
	if !status.Valid() {
		return nil, domain.Validation("invalid order status %q", status)
	}
	ok, err := s.store.Orders().UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFound("order")
	}
	s.inv.Invalidate(ctx)
	return s.Get(ctx, id)
}

// Delete 删除订单及明细；库存不回补
func (s *OrderService) Delete(ctx context.Context, id string) error {
	err := s.store.InTx(ctx, func(tx domain.Repos) error {
		return tx.Orders().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.inv.Invalidate(ctx)
	return nil
}
