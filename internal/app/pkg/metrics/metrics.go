package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// 状态更新结果
const (
	ResultApplied  = "applied"
	ResultNoop     = "noop"
	ResultRejected = "rejected"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Metrics 服务暴露在 /metrics 的指标
type Metrics struct {
	// 后台订单状态更新次数，action: none/cancel/refund
	StatusUpdates *prometheus.CounterVec
	// 客户通知发送次数
	Notifications *prometheus.CounterVec
	// HTTP 请求
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New 创建并注册指标
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StatusUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Name:      "order_status_updates_total",
				Help:      "Admin order status updates by quick action and result",
			},
			[]string{"action", "result"},
		),
		Notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Name:      "order_notifications_total",
				Help:      "Customer order status notifications by result",
			},
			[]string{"result"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "storefront",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
	}

	reg.MustRegister(m.StatusUpdates, m.Notifications, m.HTTPRequests, m.HTTPDuration)
	return m
}

// ObserveStatusUpdate 记录一次状态更新
func (m *Metrics) ObserveStatusUpdate(action, result string) {
	if m == nil {
		return
	}
	if action == "" {
		action = "none"
	}
	m.StatusUpdates.WithLabelValues(action, result).Inc()
}

// ObserveNotification 记录一次通知发送
func (m *Metrics) ObserveNotification(result string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(result).Inc()
}
