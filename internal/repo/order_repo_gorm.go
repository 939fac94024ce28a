package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jewellery-backoffice/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

func withLines(db *gorm.DB) *gorm.DB {
	return db.Preload("LineItems", func(q *gorm.DB) *gorm.DB { return q.Order("position ASC") })
}

// Create 同时写入明细（gorm 关联保存）
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		return domain.Persistence("create order", err)
	}
	return nil
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := withLines(r.db.WithContext(ctx)).First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Persistence("find order", err)
	}
	return &o, nil
}

func (r *OrderRepo) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Order{})
	q = contains(q, f.Q, "id", "customer_name")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, domain.Persistence("count orders", err)
	}
	orders := []domain.Order{}
	if err := page(withLines(q).Order("created_at DESC, id DESC"), f.Offset, f.Limit).Find(&orders).Error; err != nil {
		return nil, 0, domain.Persistence("list orders", err)
	}
	return orders, total, nil
}

func (r *OrderRepo) All(ctx context.Context) ([]domain.Order, error) {
	orders := []domain.Order{}
	if err := withLines(r.db.WithContext(ctx)).Order("created_at ASC, id ASC").Find(&orders).Error; err != nil {
		return nil, domain.Persistence("list orders", err)
	}
	return orders, nil
}

func (r *OrderRepo) Recent(ctx context.Context, n int) ([]domain.Order, error) {
	orders := []domain.Order{}
	if err := withLines(r.db.WithContext(ctx)).Order("created_at DESC, id DESC").Limit(n).Find(&orders).Error; err != nil {
		return nil, domain.Persistence("recent orders", err)
	}
	return orders, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, s domain.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Update("status", s)
	if res.Error != nil {
		return false, domain.Persistence("update order status", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete 明细与订单一起删（调用方负责包事务）
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", id).Delete(&domain.OrderLineItem{}).Error; err != nil {
		return domain.Persistence("delete order lines", err)
	}
	if err := db.Where("id = ?", id).Delete(&domain.Order{}).Error; err != nil {
		return domain.Persistence("delete order", err)
	}
	return nil
}

func (r *OrderRepo) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Where("customer_id = ?", customerID).Count(&n).Error
	if err != nil {
		return 0, domain.Persistence("count orders", err)
	}
	return n, nil
}

func (r *OrderRepo) CountsByCustomer(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		CustomerID string
		N          int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("customer_id, COUNT(*) AS n").
		Group("customer_id").
		Scan(&rows).Error
	if err != nil {
		return nil, domain.Persistence("count orders by customer", err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.CustomerID] = row.N
	}
	return out, nil
}
