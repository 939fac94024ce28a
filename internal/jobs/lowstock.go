// Package jobs 后台定时任务
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"jewellery-backoffice/internal/core/logger"
	"jewellery-backoffice/internal/service"
)

var lowStockItems = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "backoffice_low_stock_items",
	Help: "Catalog items currently below the low-stock threshold.",
})

func init() { prometheus.MustRegister(lowStockItems) }

// 支持秒级表达式与 @every / @daily 等描述符
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// InventoryLister 由 service.CatalogService 实现
type InventoryLister interface {
	Inventory(ctx context.Context, q string, lowOnly bool) ([]service.InventoryRow, error)
}

// LowStockWatcher 定时巡检低库存，更新 gauge 并打 warn 日志
type LowStockWatcher struct {
	inv     InventoryLister
	log     *zap.Logger
	timeout time.Duration

	mu    sync.Mutex
	sched *cron.Cron
}

func NewLowStockWatcher(inv InventoryLister, l *zap.Logger) *LowStockWatcher {
	if l == nil {
		l = zap.NewNop()
	}
	return &LowStockWatcher{inv: inv, log: l.Named("lowstock"), timeout: 30 * time.Second}
}

// Start 按 cron 表达式启动调度；上一轮未结束时跳过本轮
func (w *LowStockWatcher) Start(schedule string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sched != nil {
		return fmt.Errorf("low-stock watcher already started")
	}

	cl := cron.DiscardLogger
	if std, err := logger.ToStdLogger(w.log, zapcore.WarnLevel); err == nil {
		cl = cron.PrintfLogger(std)
	}
	sched := cron.New(
		cron.WithParser(cronParser),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := sched.AddFunc(schedule, w.tick); err != nil {
		return fmt.Errorf("low-stock watcher: bad schedule %q: %w", schedule, err)
	}
	sched.Start()
	w.sched = sched
	w.log.Info("low-stock watcher started", zap.String("schedule", schedule))
	return nil
}

// Stop 停止调度并等待正在执行的任务结束（或 ctx 到期）
func (w *LowStockWatcher) Stop(ctx context.Context) {
	w.mu.Lock()
	sched := w.sched
	w.sched = nil
	w.mu.Unlock()
	if sched == nil {
		return
	}
	select {
	case <-sched.Stop().Done():
	case <-ctx.Done():
	}
}

func (w *LowStockWatcher) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	if _, err := w.Check(ctx); err != nil {
		w.log.Error("low-stock check failed", zap.Error(err))
	}
}

// Check 执行一次巡检，返回低库存条目数
func (w *LowStockWatcher) Check(ctx context.Context) (int, error) {
	rows, err := w.inv.Inventory(ctx, "", true)
	if err != nil {
		return 0, err
	}
	lowStockItems.Set(float64(len(rows)))
	for _, r := range rows {
		w.log.Warn("low stock",
			zap.String("id", r.Item.ID),
			zap.String("name", r.Item.Name),
			zap.Int("stock", r.Item.Stock),
		)
	}
	return len(rows), nil
}
