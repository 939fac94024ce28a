package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"jewellery-backoffice/internal/core/cache"
	"jewellery-backoffice/internal/domain"
)

const (
	keyDashboardStats = "stats:dashboard"
	keySummaryReport  = "stats:summary"

	topSellingLimit = 5
	recentLimit     = 5
)

type DashboardStats struct {
	TotalItems     int64           `json:"totalJewellery"`
	TotalCustomers int64           `json:"totalCustomers"`
	TotalOrders    int64           `json:"totalOrders"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
}

type RecentActivity struct {
	Items  []domain.CatalogItem `json:"items"`
	Orders []domain.Order       `json:"orders"`
}

type ItemSales struct {
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
	TotalSold int    `json:"totalSold"`
}

type SummaryReport struct {
	NewCustomers      int             `json:"newCustomers"`
	RepeatCustomers   int             `json:"repeatCustomers"`
	AverageOrderValue decimal.Decimal `json:"avgOrderValue"`
	TopItems          []ItemSales     `json:"topItems"`
}

type statsCache interface {
	cache.Loader
	Del(ctx context.Context, keys ...string) error
}

type ReportService struct {
	store domain.Store
	cache statsCache
	ttl   time.Duration
	log   *zap.Logger
	now   func() time.Time
}

func NewReportService(store domain.Store, c statsCache, ttl time.Duration, l *zap.Logger) *ReportService {
	if l == nil {
		l = zap.NewNop()
	}
	return &ReportService{store: store, cache: c, ttl: ttl, log: l, now: time.Now}
}

// WithClock 替换"本月新客"统计用的时钟（测试用）
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// Invalidate 实现 Invalidator
func (s *ReportService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, keyDashboardStats, keySummaryReport); err != nil {
		s.log.Warn("stats cache invalidate failed", zap.Error(err))
	}
}

func (s *ReportService) Stats(ctx context.Context) (*DashboardStats, error) {
	if s.cache == nil {
		return s.loadStats(ctx)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, keyDashboardStats, s.ttl, s.loadStats)
}

func (s *ReportService) loadStats(ctx context.Context) (*DashboardStats, error) {
	var st DashboardStats
	var err error
	if st.TotalItems, err = s.store.Catalog().Count(ctx); err != nil {
		return nil, err
	}
	if st.TotalCustomers, err = s.store.Customers().Count(ctx); err != nil {
		return nil, err
	}
	orders, err := s.store.Orders().All(ctx)
	if err != nil {
		return nil, err
	}
	st.TotalOrders = int64(len(orders))
	st.TotalRevenue = Revenue(orders)
	return &st, nil
}

func (s *ReportService) Recent(ctx context.Context) (*RecentActivity, error) {
	items, err := s.store.Catalog().Recent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	orders, err := s.store.Orders().Recent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	return &RecentActivity{Items: items, Orders: orders}, nil
}

func (s *ReportService) Summary(ctx context.Context) (*SummaryReport, error) {
	if s.cache == nil {
		return s.loadSummary(ctx)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, keySummaryReport, s.ttl, s.loadSummary)
}

func (s *ReportService) loadSummary(ctx context.Context) (*SummaryReport, error) {
	orders, err := s.store.Orders().All(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.store.Customers().All(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.store.Orders().CountsByCustomer(ctx)
	if err != nil {
		return nil, err
	}
	return &SummaryReport{
		NewCustomers:      NewCustomerCount(customers, s.now()),
		RepeatCustomers:   RepeatCustomerCount(customers, counts),
		AverageOrderValue: AverageOrderValue(orders),
		TopItems:          TopSelling(orders, topSellingLimit),
	}, nil
}

func Revenue(orders []domain.Order) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(o.Total)
	}
	return sum
}

// AverageOrderValue 订单均价，保留两位；无订单为 0
func AverageOrderValue(orders []domain.Order) decimal.Decimal {
	if len(orders) == 0 {
		return decimal.Zero
	}
	return Revenue(orders).Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
}

// TopSelling 按商品累计销量取前 n；并列时先卖出的在前
func TopSelling(orders []domain.Order, n int) []ItemSales {
	idx := map[string]int{}
	sales := []ItemSales{}
	for _, o := range orders {
		for _, li := range o.LineItems {
			if i, ok := idx[li.CatalogItemID]; ok {
				sales[i].TotalSold += li.Quantity
				continue
			}
			idx[li.CatalogItemID] = len(sales)
			sales = append(sales, ItemSales{ItemID: li.CatalogItemID, Name: li.Name, TotalSold: li.Quantity})
		}
	}
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].TotalSold > sales[j].TotalSold })
	if len(sales) > n {
		sales = sales[:n]
	}
	return sales
}

// NewCustomerCount now 所在自然月新建的客户数
func NewCustomerCount(customers []domain.Customer, now time.Time) int {
	n := 0
	for _, c := range customers {
		t := c.CreatedAt.In(now.Location())
		if t.Year() == now.Year() && t.Month() == now.Month() {
			n++
		}
	}
	return n
}

func RepeatCustomerCount(customers []domain.Customer, orderCounts map[string]int64) int {
	n := 0
	for _, c := range customers {
		if orderCounts[c.ID] > 1 {
			n++
		}
	}
	return n
}
