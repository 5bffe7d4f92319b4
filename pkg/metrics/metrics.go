// Package metrics 提供基于Prometheus的指标收集
//
// 指标分两类：
// 1. HTTP请求指标：请求总数、耗时分布、处理中请求数（由Gin中间件记录）
// 2. 业务指标：借阅创建/归还总数、借阅冲突数、逾期提醒发送情况（由用例层记录）
//
// 使用方式：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// 命名规范：
// - Counter以_total结尾（loans_created_total）
// - Histogram以单位结尾（http_request_duration_seconds）
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/v1/loans）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 借阅业务指标

	// LoansCreatedTotal 借阅创建总数（Counter）
	LoansCreatedTotal prometheus.Counter

	// LoansRejectedTotal 因图书已借出被拒绝的借阅请求总数（Counter）
	LoansRejectedTotal prometheus.Counter

	// LoansReturnedTotal 图书归还总数（Counter）
	LoansReturnedTotal prometheus.Counter

	// 逾期提醒指标

	// OverdueSweepsTotal 逾期检查执行总数（Counter）
	// 标签：result（success/failure）
	OverdueSweepsTotal *prometheus.CounterVec

	// OverdueNoticesTotal 逾期提醒收件人总数（Counter）
	// 一次检查可能包含多个收件人，按收件人累计
	OverdueNoticesTotal prometheus.Counter
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，使用promauto自动注册到默认Registry
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 借阅业务指标
	LoansCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_created_total",
			Help: "借阅创建总数",
		},
	)

	LoansRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_rejected_total",
			Help: "因图书已借出被拒绝的借阅请求总数",
		},
	)

	LoansReturnedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_returned_total",
			Help: "图书归还总数",
		},
	)

	// 逾期提醒指标
	OverdueSweepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "overdue_sweeps_total",
			Help: "逾期检查执行总数",
		},
		[]string{"result"},
	)

	OverdueNoticesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "overdue_notices_total",
			Help: "逾期提醒收件人总数",
		},
	)
}

// IncCounter 递增Counter指标（nil安全，便于未初始化时的单元测试）
func IncCounter(counter prometheus.Counter) {
	if counter != nil {
		counter.Inc()
	}
}

// AddCounter 按数量递增Counter指标
func AddCounter(counter prometheus.Counter, delta float64) {
	if counter != nil {
		counter.Add(delta)
	}
}

// IncCounterVec 递增带标签的Counter指标
func IncCounterVec(counterVec *prometheus.CounterVec, labels map[string]string) {
	if counterVec != nil {
		counterVec.With(labels).Inc()
	}
}

// ObserveHistogramVec 记录带标签的Histogram观测值
func ObserveHistogramVec(histogramVec *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogramVec != nil {
		histogramVec.With(labels).Observe(value)
	}
}
