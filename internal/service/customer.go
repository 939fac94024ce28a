package service

import (
	"context"
	"strings"

	"jewellery-backoffice/internal/domain"
	"jewellery-backoffice/pkg/utils"
)

type CustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

type CustomerPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
}

// CustomerSummary 列表行带订单数
type CustomerSummary struct {
	domain.Customer
	OrderCount int64 `json:"orderCount"`
}

type CustomerService struct {
	store domain.Store
	inv   Invalidator
}

func NewCustomerService(store domain.Store, inv Invalidator) *CustomerService {
	return &CustomerService{store: store, inv: orNop(inv)}
}

func (s *CustomerService) Create(ctx context.Context, in CustomerInput, createdBy string) (*domain.Customer, error) {
	c := &domain.Customer{
		ID:        utils.NewID(),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		CreatedBy: createdBy,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, c.Email, ""); err != nil {
		return nil, err
	}
	if err := s.store.Customers().Create(ctx, c); err != nil {
		return nil, err
	}
	s.inv.Invalidate(ctx)
	return c, nil
}

// checkEmail 邮箱已被其他未删除客户占用时报冲突
func (s *CustomerService) checkEmail(ctx context.Context, email, selfID string) error {
	other, err := s.store.Customers().FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return domain.Duplicate("customer email already exists")
	}
	return nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	c, err := s.store.Customers().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("customer")
	}
	return c, nil
}

func (s *CustomerService) Update(ctx context.Context, id string, p CustomerPatch) (*domain.Customer, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	setStr(&c.FirstName, p.FirstName)
	setStr(&c.LastName, p.LastName)
	setStr(&c.Phone, p.Phone)
	setStr(&c.Address, p.Address)
	if p.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if p.Email != nil {
		if err := s.checkEmail(ctx, c.Email, c.ID); err != nil {
			return nil, err
		}
	}
	if err := s.store.Customers().Update(ctx, c); err != nil {
		return nil, err
	}
	s.inv.Invalidate(ctx)
	return c, nil
}

// Delete 幂等；订单里的客户快照不受影响
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if err := s.store.Customers().Delete(ctx, id); err != nil {
		return err
	}
	s.inv.Invalidate(ctx)
	return nil
}

func (s *CustomerService) List(ctx context.Context, f domain.CustomerFilter) ([]CustomerSummary, int64, error) {
	cs, total, err := s.store.Customers().List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	counts, err := s.store.Orders().CountsByCustomer(ctx)
	if err != nil {
		return nil, 0, err
	}
	out := make([]CustomerSummary, 0, len(cs))
	for _, c := range cs {
		out = append(out, CustomerSummary{Customer: c, OrderCount: counts[c.ID]})
	}
	return out, total, nil
}

func (s *CustomerService) OrderCountFor(ctx context.Context, customerID string) (int64, error) {
	return s.store.Orders().CountByCustomer(ctx, customerID)
}
