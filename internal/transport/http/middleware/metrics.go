package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"jewellery-backoffice/internal/transport/http/ez"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backoffice",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and envelope code.",
	}, []string{"route", "method", "code"})

	requestSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "backoffice",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method"})
)

func init() { prometheus.MustRegister(requestsTotal, requestSeconds) }

// envelopeCode 包体业务码；没走 ez 的（/metrics、CSV 导出）用 HTTP 状态码
func envelopeCode(c *gin.Context) string {
	if rc := ez.RespCode(c); rc >= 0 {
		return strconv.Itoa(rc)
	}
	return "http_" + strconv.Itoa(c.Writer.Status())
}

// Metrics 按路由模板统计；未匹配的路由记为 unmatched
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(route, c.Request.Method, envelopeCode(c)).Inc()
		requestSeconds.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
