/*
 * @Description: 频率限制中间件
 * @Author: 安知鱼
 * @Date: 2025-11-08 00:00:00
 * @LastEditTime: 2026-09-19 10:21:44
 * @LastEditors: 安知鱼
 */
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/anzhiyu-c/mysite/pkg/response"
	"github.com/anzhiyu-c/mysite/pkg/util"
)

// staleAfter 超过该时间未访问的限流器会被清理
const staleAfter = 10 * time.Minute

// IPRateLimiter 按客户端 IP 维护独立的令牌桶
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterInfo
	every    rate.Limit
	burst    int
	now      func() time.Time
}

type limiterInfo struct {
	limiter      *rate.Limiter
	lastAccessed time.Time
}

// NewIPRateLimiter requestsPerMinute 为每分钟允许的请求数，burst 为突发请求数
func NewIPRateLimiter(requestsPerMinute, burst int) *IPRateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &IPRateLimiter{
		limiters: make(map[string]*limiterInfo),
		every:    rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow 判断该 IP 当前是否还有令牌
func (i *IPRateLimiter) Allow(ip string) bool {
	i.mu.Lock()
	now := i.now()
	info, ok := i.limiters[ip]
	if !ok {
		info = &limiterInfo{limiter: rate.NewLimiter(i.every, i.burst)}
		i.limiters[ip] = info
	}
	info.lastAccessed = now
	i.mu.Unlock()

	return info.limiter.AllowN(now, 1)
}

// Sweep 清理过期的限流器，返回剩余数量
func (i *IPRateLimiter) Sweep() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	now := i.now()
	for ip, info := range i.limiters {
		if now.Sub(info.lastAccessed) > staleAfter {
			delete(i.limiters, ip)
		}
	}
	return len(i.limiters)
}

// RunSweeper 定期清理，ctx 结束时退出
func (i *IPRateLimiter) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			i.Sweep()
		}
	}
}

// RateLimit 超出频率时以 429 信封中止请求
func RateLimit(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(util.GetRealClientIP(c)) {
			response.Fail(c, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}
		c.Next()
	}
}
