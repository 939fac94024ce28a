package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"jewellery-backoffice/internal/domain"
	"jewellery-backoffice/internal/service"
)

type fakeLister struct {
	rows []service.InventoryRow
	err  error
}

func (f fakeLister) Inventory(_ context.Context, _ string, lowOnly bool) ([]service.InventoryRow, error) {
	if !lowOnly {
		return nil, errors.New("watcher must request low-stock rows only")
	}
	return f.rows, f.err
}

func TestCheck_LogsEachLowStockItem(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := NewLowStockWatcher(fakeLister{rows: []service.InventoryRow{
		{Item: domain.CatalogItem{ID: "a", Name: "Gold Ring", Stock: 1}, StockStatus: service.StockLow},
		{Item: domain.CatalogItem{ID: "b", Name: "Pearl Necklace", Stock: 0}, StockStatus: service.StockLow},
	}}, zap.New(core))

	n, err := w.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	entries := logs.FilterMessage("low stock").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Gold Ring", entries[0].ContextMap()["name"])
}

func TestCheck_PropagatesError(t *testing.T) {
	w := NewLowStockWatcher(fakeLister{err: errors.New("db down")}, nil)
	_, err := w.Check(context.Background())
	assert.EqualError(t, err, "db down")
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	w := NewLowStockWatcher(fakeLister{}, nil)
	assert.Error(t, w.Start("not a cron expression"))
}

func TestStartStop_NoLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewLowStockWatcher(fakeLister{}, nil)
	require.NoError(t, w.Start("@every 1h"))
	assert.Error(t, w.Start("@every 1h"), "second start must fail")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	w.Stop(ctx)
	// 重复 Stop 无副作用
	w.Stop(ctx)
}
