package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration未初始化")
	}
	if LoansCreatedTotal == nil {
		t.Error("LoansCreatedTotal未初始化")
	}
	if OverdueSweepsTotal == nil {
		t.Error("OverdueSweepsTotal未初始化")
	}
}

// TestInitMetricsIdempotent 测试重复初始化不会panic（promauto重复注册会panic）
func TestInitMetricsIdempotent(t *testing.T) {
	InitMetrics()
	InitMetrics() // 第二次调用应直接返回
}

// TestCounter 测试Counter递增
func TestCounter(t *testing.T) {
	InitMetrics()

	before := getCounterValue(t, LoansCreatedTotal)

	IncCounter(LoansCreatedTotal)
	IncCounter(LoansCreatedTotal)

	after := getCounterValue(t, LoansCreatedTotal)
	if after-before != 2 {
		t.Errorf("Counter递增错误: expected=+2, got=+%f", after-before)
	}
}

// TestCounterNilSafe 测试未初始化时的nil安全
func TestCounterNilSafe(t *testing.T) {
	// 不应panic
	IncCounter(nil)
	AddCounter(nil, 3)
	IncCounterVec(nil, map[string]string{"result": "success"})
}

// getCounterValue 读取Counter当前值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()

	var m dto.Metric
	if err := counter.Write(&m); err != nil {
		t.Fatalf("读取Counter失败: %v", err)
	}
	return m.GetCounter().GetValue()
}
