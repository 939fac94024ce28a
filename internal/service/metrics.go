package service

import "github.com/prometheus/client_golang/prometheus"

var (
	ordersCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "backoffice_orders_created_total", Help: "Orders placed, by initial status"},
		[]string{"status"},
	)
	orderRevenueTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "backoffice_order_revenue_total", Help: "Sum of order totals at creation"},
	)
	stockRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "backoffice_stock_rejected_total", Help: "Stock decrements refused for insufficient stock"},
	)
)

func init() { prometheus.MustRegister(ordersCreatedTotal, orderRevenueTotal, stockRejectedTotal) }
