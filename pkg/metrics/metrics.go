package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// 数据变更计数
	StoreMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_mutations_total",
			Help: "Total number of record store mutations",
		},
		[]string{"entity", "op"}, // entity: project, user, department, settings
	)

	// 汇总重算计数
	RollupRecomputes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rollup_recompute_total",
			Help: "Total number of budget/workforce rollup recomputations",
		},
	)

	// 组合总预算
	PortfolioBudget = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "portfolio_budget",
			Help: "Portfolio budget totals from the latest rollup",
		},
		[]string{"kind"}, // kind: total, spent
	)

	// 组合人力
	PortfolioWorkforce = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "portfolio_workforce",
			Help: "Portfolio headcount from the latest rollup",
		},
		[]string{"kind"}, // kind: employees, contractors
	)

	// 事件发布计数
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of change events published",
		},
		[]string{"routing_key", "status"}, // status: success, failed, skipped
	)
)

// RecordHTTPRequestDuration 记录 HTTP 请求延迟
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementStoreMutation 增加数据变更计数
func IncrementStoreMutation(entity, op string) {
	StoreMutations.WithLabelValues(entity, op).Inc()
}

// RecordRollup 记录一次汇总重算的结果
func RecordRollup(totalBudget, actualSpend int64, employees, contractors int) {
	RollupRecomputes.Inc()
	PortfolioBudget.WithLabelValues("total").Set(float64(totalBudget))
	PortfolioBudget.WithLabelValues("spent").Set(float64(actualSpend))
	PortfolioWorkforce.WithLabelValues("employees").Set(float64(employees))
	PortfolioWorkforce.WithLabelValues("contractors").Set(float64(contractors))
}

// IncrementEventPublished 增加事件发布计数
func IncrementEventPublished(routingKey, status string) {
	EventsPublished.WithLabelValues(routingKey, status).Inc()
}
