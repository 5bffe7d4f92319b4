package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/pkg/metrics"
)

// Metrics Prometheus HTTP指标中间件
// 记录请求总数、耗时分布和处理中请求数
// path标签使用路由模板(/api/v1/books/:id)而非实际路径,避免标签基数爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		if metrics.HTTPRequestsInProgress != nil {
			metrics.HTTPRequestsInProgress.Inc()
		}

		c.Next()

		if metrics.HTTPRequestsInProgress != nil {
			metrics.HTTPRequestsInProgress.Dec()
		}

		// 路由模板为空说明是404等未注册路径,归入unknown
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		})
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
			"method": c.Request.Method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}
