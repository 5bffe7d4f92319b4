package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Logger 请求日志中间件
// 记录每个请求的方法、路径、状态码、耗时和客户端IP,
// 并为每个请求生成唯一的请求ID(写入X-Request-ID响应头)便于排查问题
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 生成请求ID
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)

		// 提取错误信息（如果有）
		var errMsg string
		if len(c.Errors) > 0 {
			errMsg = c.Errors.String()
		}

		fmt.Printf("[GIN] %s | %3d | %13v | %15s | %-7s %s %s\n",
			time.Now().Format("2006/01/02 - 15:04:05"),
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			c.Request.Method,
			c.Request.URL.Path,
			errMsg,
		)

		// 慢请求警告
		if latency > 3*time.Second {
			fmt.Printf("[WARN] Slow request: %s %s took %v\n",
				c.Request.Method,
				c.Request.URL.Path,
				latency,
			)
		}
	}
}
