package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"jewellery-backoffice/internal/core/database"
	"jewellery-backoffice/internal/domain"
	"jewellery-backoffice/internal/repo"
)

// newStore 每个测试一份独立的内存库
func newStore(t *testing.T) *repo.Store {
	t.Helper()
	db, err := database.NewGorm(database.Opts{Driver: "sqlite", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, repo.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repo.NewStore(db)
}

type fixture struct {
	store     *repo.Store
	catalog   *CatalogService
	customers *CustomerService
	orders    *OrderService
}

func newFixture(t *testing.T) *fixture {
	s := newStore(t)
	return &fixture{
		store:     s,
		catalog:   NewCatalogService(s, nil, 5),
		customers: NewCustomerService(s, nil),
		orders:    NewOrderService(s, nil),
	}
}

func (f *fixture) item(t *testing.T, name string, cat domain.Category, price string, stock int) *domain.CatalogItem {
	t.Helper()
	it, err := f.catalog.Create(context.Background(), CatalogInput{
		Name:     name,
		Category: cat,
		Material: "gold",
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
	}, "u1")
	require.NoError(t, err)
	return it
}

func (f *fixture) customer(t *testing.T, first, last, email string) *domain.Customer {
	t.Helper()
	c, err := f.customers.Create(context.Background(), CustomerInput{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Phone:     "555-0100",
	}, "u1")
	require.NoError(t, err)
	return c
}

func (f *fixture) stockOf(t *testing.T, id string) int {
	t.Helper()
	it, err := f.catalog.Get(context.Background(), id)
	require.NoError(t, err)
	return it.Stock
}

func (f *fixture) orderCount(t *testing.T) int64 {
	t.Helper()
	_, total, err := f.orders.List(context.Background(), domain.OrderFilter{})
	require.NoError(t, err)
	return total
}
