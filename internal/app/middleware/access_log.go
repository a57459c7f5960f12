/*
 * @Description: 请求 ID 与访问日志中间件
 * @Author: 安知鱼
 * @Date: 2025-01-20 15:30:00
 * @LastEditTime: 2026-09-19 10:48:03
 * @LastEditors: 安知鱼
 */
package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/anzhiyu-c/mysite/internal/pkg/logger"
	"github.com/anzhiyu-c/mysite/pkg/util"
)

const (
	// RequestIDHeader 与调用后端时使用的请求头一致
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey 请求 ID 在 gin.Context 中的键
	RequestIDKey = "request_id"
)

// RequestID 沿用上游传入的请求 ID，缺失时生成新的 UUID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID 读取当前请求的 ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// AccessLog 记录每个请求的访问日志；requests 非 nil 时同时计数
func AccessLog(entry *logger.Entry, requests *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		if requests != nil {
			requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		}

		fields := logger.Fields{
			"request_id": GetRequestID(c),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"route":      route,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  util.GetRealClientIP(c),
		}
		e := entry.WithFields(fields)
		switch {
		case status >= 500:
			e.Error("请求处理失败")
		case status >= 400:
			e.Warn("请求异常")
		default:
			e.Info("请求完成")
		}
	}
}

// NewRequestCounter 创建站点请求计数器，按路由与状态码区分
func NewRequestCounter(reg prometheus.Registerer) (*prometheus.CounterVec, error) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mysite_http_requests_total",
		Help: "站点收到的 HTTP 请求数",
	}, []string{"route", "status"})
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return counter, nil
}
