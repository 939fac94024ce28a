package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewellery-backoffice/internal/domain"
)

func TestCustomerCreate_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for name, in := range map[string]CustomerInput{
		"no first name": {LastName: "Doe", Email: "a@example.com"},
		"no last name":  {FirstName: "Jane", Email: "a@example.com"},
		"no email":      {FirstName: "Jane", LastName: "Doe"},
		"bad email":     {FirstName: "Jane", LastName: "Doe", Email: "not-an-email"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.customers.Create(ctx, in, "u1")
			assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
		})
	}
}

func TestCustomerCreate_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	jane := f.customer(t, "Jane", "Doe", "jane@example.com")

	_, err := f.customers.Create(ctx, CustomerInput{FirstName: "J", LastName: "D", Email: "JANE@example.com"}, "u1")
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	other := f.customer(t, "Bob", "Stone", "bob@example.com")
	taken := "jane@example.com"
	_, err = f.customers.Update(ctx, other.ID, CustomerPatch{Email: &taken})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	// 自己保留原邮箱不算冲突
	phone := "555-0199"
	_, err = f.customers.Update(ctx, jane.ID, CustomerPatch{Email: &taken, Phone: &phone})
	require.NoError(t, err)

	// 删除后邮箱可复用
	require.NoError(t, f.customers.Delete(ctx, jane.ID))
	f.customer(t, "Janet", "Doe", "jane@example.com")
}

func TestCustomerUpdate_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	jane := f.customer(t, "Jane", "Doe", "jane@example.com")

	last, addr := "Smith", "1 High St"
	_, err := f.customers.Update(ctx, jane.ID, CustomerPatch{LastName: &last, Address: &addr})
	require.NoError(t, err)

	got, err := f.customers.Get(ctx, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", got.FullName())
	assert.Equal(t, "1 High St", got.Address)
	assert.Equal(t, "jane@example.com", got.Email)

	_, err = f.customers.Update(ctx, "missing", CustomerPatch{LastName: &last})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCustomerDelete_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	jane := f.customer(t, "Jane", "Doe", "jane@example.com")

	require.NoError(t, f.customers.Delete(ctx, jane.ID))
	require.NoError(t, f.customers.Delete(ctx, jane.ID))
	_, err := f.customers.Get(ctx, jane.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCustomerOrderCount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ring := f.item(t, "Gold Ring", domain.CategoryRings, "500", 10)
	jane := f.customer(t, "Jane", "Doe", "jane@example.com")
	bob := f.customer(t, "Bob", "Stone", "bob@example.com")

	var placed []string
	for i := 0; i < 2; i++ {
		o, err := f.orders.Create(ctx, OrderInput{
			CustomerID: jane.ID,
			Items:      []LineRequest{{ItemID: ring.ID, Quantity: 1}},
		}, "u1")
		require.NoError(t, err)
		placed = append(placed, o.ID)
	}

	// 单查与列表里的 orderCount 必须一致
	check := func(wantJane int64) {
		t.Helper()
		n, err := f.customers.OrderCountFor(ctx, jane.ID)
		require.NoError(t, err)
		assert.Equal(t, wantJane, n)
		n, err = f.customers.OrderCountFor(ctx, bob.ID)
		require.NoError(t, err)
		assert.Zero(t, n)

		rows, total, err := f.customers.List(ctx, domain.CustomerFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		counts := map[string]int64{}
		for _, r := range rows {
			counts[r.ID] = r.OrderCount
		}
		assert.Equal(t, wantJane, counts[jane.ID])
		assert.Zero(t, counts[bob.ID])
	}
	check(2)

	require.NoError(t, f.orders.Delete(ctx, placed[0]))
	check(1)

	// 重复删除不影响计数
	require.NoError(t, f.orders.Delete(ctx, placed[0]))
	check(1)

	require.NoError(t, f.orders.Delete(ctx, placed[1]))
	check(0)
}

func TestCustomerList_Search(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.customer(t, "Jane", "Doe", "jane@example.com")
	f.customer(t, "Bob", "Stone", "bob@shop.test")

	got, _, err := f.customers.List(ctx, domain.CustomerFilter{Q: "stone"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bob", got[0].FirstName)

	got, _, err = f.customers.List(ctx, domain.CustomerFilter{Q: "EXAMPLE.COM"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, total, err := f.customers.List(ctx, domain.CustomerFilter{Q: "zzz"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, total)
}
