package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"jewellery-backoffice/internal/core/cache"
	"jewellery-backoffice/internal/domain"
)

func order(total string, lines ...domain.OrderLineItem) domain.Order {
	return domain.Order{Total: decimal.RequireFromString(total), LineItems: lines}
}

func line(itemID string, qty int) domain.OrderLineItem {
	return domain.OrderLineItem{CatalogItemID: itemID, Name: "item " + itemID, Quantity: qty}
}

func TestAverageOrderValue(t *testing.T) {
	assert.True(t, AverageOrderValue(nil).IsZero())

	avg := AverageOrderValue([]domain.Order{order("10"), order("20"), order("25")})
	assert.Equal(t, "18.33", avg.StringFixed(2))

	avg = AverageOrderValue([]domain.Order{order("1500")})
	assert.True(t, decimal.NewFromInt(1500).Equal(avg))
}

func TestTopSelling(t *testing.T) {
	orders := []domain.Order{
		order("0", line("a", 1), line("b", 3)),
		order("0", line("c", 3), line("a", 1)),
		order("0", line("d", 1), line("e", 1), line("f", 1)),
	}
	top := TopSelling(orders, 5)
	require.Len(t, top, 5)

	ids := make([]string, 0, len(top))
	for _, s := range top {
		ids = append(ids, s.ItemID)
	}
	// b/c 同为 3，按首次出现排；d/e/f 同为 1 同理，f 被截掉
	assert.Equal(t, []string{"b", "c", "a", "d", "e"}, ids)
	assert.Equal(t, 3, top[0].TotalSold)
	assert.Equal(t, 2, top[2].TotalSold)
	assert.Equal(t, "item b", top[0].Name)

	assert.Empty(t, TopSelling(nil, 5))
}

func TestNewCustomerCount(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	cs := []domain.Customer{
		{CreatedAt: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, 2, NewCustomerCount(cs, now))
}

func TestRepeatCustomerCount(t *testing.T) {
	cs := []domain.Customer{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	counts := map[string]int64{"a": 2, "b": 1, "z": 5}
	assert.Equal(t, 1, RepeatCustomerCount(cs, counts))
}

func TestReportService_StatsAndSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ring := f.item(t, "Gold Ring", domain.CategoryRings, "500", 10)
	studs := f.item(t, "Diamond Studs", domain.CategoryEarrings, "250", 10)
	jane := f.customer(t, "Jane", "Doe", "jane@example.com")
	f.customer(t, "Bob", "Stone", "bob@example.com")

	for _, items := range [][]LineRequest{
		{{ItemID: ring.ID, Quantity: 3}},
		{{ItemID: studs.ID, Quantity: 4}},
	} {
		_, err := f.orders.Create(ctx, OrderInput{CustomerID: jane.ID, Items: items}, "u1")
		require.NoError(t, err)
	}

	rs := NewReportService(f.store, nil, 0, zaptest.NewLogger(t)).WithClock(time.Now)

	st, err := rs.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.TotalItems)
	assert.EqualValues(t, 2, st.TotalCustomers)
	assert.EqualValues(t, 2, st.TotalOrders)
	assert.True(t, decimal.NewFromInt(2500).Equal(st.TotalRevenue), "revenue = %s", st.TotalRevenue)

	sum, err := rs.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.NewCustomers)
	assert.Equal(t, 1, sum.RepeatCustomers)
	assert.Equal(t, "1250.00", sum.AverageOrderValue.StringFixed(2))
	require.Len(t, sum.TopItems, 2)
	assert.Equal(t, studs.ID, sum.TopItems[0].ItemID)
	assert.Equal(t, 4, sum.TopItems[0].TotalSold)

	recent, err := rs.Recent(ctx)
	require.NoError(t, err)
	assert.Len(t, recent.Items, 2)
	assert.Len(t, recent.Orders, 2)
}

type fakeStatsCache struct {
	loads   int
	deleted []string
	data    map[string][]byte
}

func (c *fakeStatsCache) GetOrLoad(ctx context.Context, key string, _ time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, ok := c.data[key]; ok {
		return b, nil
	}
	c.loads++
	b, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.data[key] = b
	return b, nil
}

func (c *fakeStatsCache) Del(_ context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys...)
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func TestReportService_CachedUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	fc := &fakeStatsCache{data: map[string][]byte{}}
	rs := NewReportService(s, fc, time.Minute, nil)
	catalog := NewCatalogService(s, rs, 5)

	st, err := rs.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.TotalItems)

	_, err = catalog.Create(ctx, CatalogInput{Name: "Ring", Category: domain.CategoryRings, Material: "gold"}, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{keyDashboardStats, keySummaryReport}, fc.deleted)

	st, err = rs.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.TotalItems)
	assert.Equal(t, 2, fc.loads)

	_, err = rs.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fc.loads, "served from cache")
}

func TestReportService_WithoutRedis(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.item(t, "Gold Ring", domain.CategoryRings, "500", 10)

	// 未配置 redis：只走 singleflight，不落缓存
	rc := cache.New("", "", 0)
	rs := NewReportService(f.store, rc, time.Minute, nil)
	rs.Invalidate(ctx)

	st, err := rs.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.TotalItems)
	assert.True(t, st.TotalRevenue.IsZero())
}
