package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"jewellery-backoffice/internal/domain"
)

type CustomerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return domain.Persistence("create customer", err)
	}
	return nil
}

func (r *CustomerRepo) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *CustomerRepo) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.first(ctx, "LOWER(email) = LOWER(?)", strings.TrimSpace(email))
}

func (r *CustomerRepo) first(ctx context.Context, cond string, arg any) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.WithContext(ctx).First(&c, cond, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Persistence("find customer", err)
	}
	return &c, nil
}

func (r *CustomerRepo) List(ctx context.Context, f domain.CustomerFilter) ([]domain.Customer, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Customer{})
	q = contains(q, f.Q, "first_name", "last_name", "email")
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, domain.Persistence("count customers", err)
	}
	cs := []domain.Customer{}
	if err := page(q.Order("created_at DESC, id DESC"), f.Offset, f.Limit).Find(&cs).Error; err != nil {
		return nil, 0, domain.Persistence("list customers", err)
	}
	return cs, total, nil
}

func (r *CustomerRepo) All(ctx context.Context) ([]domain.Customer, error) {
	cs := []domain.Customer{}
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&cs).Error; err != nil {
		return nil, domain.Persistence("list customers", err)
	}
	return cs, nil
}

func (r *CustomerRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Customer{}).Count(&n).Error; err != nil {
		return 0, domain.Persistence("count customers", err)
	}
	return n, nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	err := r.db.WithContext(ctx).Model(&domain.Customer{}).
		Where("id = ?", c.ID).
		Select("first_name", "last_name", "email", "phone", "address", "updated_at").
		Updates(c).Error
	if err != nil {
		return domain.Persistence("update customer", err)
	}
	return nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Customer{}).Error; err != nil {
		return domain.Persistence("delete customer", err)
	}
	return nil
}
