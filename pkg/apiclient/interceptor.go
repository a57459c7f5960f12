/*
 * @Description: 请求拦截器
 * @Author: 安知鱼
 * @Date: 2026-09-05 09:12:50
 * @LastEditTime: 2026-09-16 10:25:13
 * @LastEditors: 安知鱼
 */
package apiclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// DefaultTokenKey 是令牌在持久化存储中的键名
const DefaultTokenKey = "auth_token"

// RequestIDHeader 每个请求都会带上的追踪头
const RequestIDHeader = "X-Request-ID"

// TokenStore 提供当前登录令牌，本层只读不写
type TokenStore interface {
	Token(ctx context.Context) (string, error)
}

// TokenStoreFunc 让普通函数满足 TokenStore
type TokenStoreFunc func(ctx context.Context) (string, error)

func (f TokenStoreFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// RequestInterceptor 在请求发出前按注册顺序执行，返回错误会中止本次请求
type RequestInterceptor func(ctx context.Context, req *http.Request) error

// authorize 读取令牌并设置 Bearer 头；读取失败只记录日志，请求按游客继续
func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if c.tokens == nil {
		return nil
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.WithError(err).Warn("读取登录令牌失败，按游客身份继续请求")
		return nil
	}
	token = strings.TrimSpace(token)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) decorate(_ context.Context, req *http.Request) error {
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return nil
}

func (c *Client) intercept(ctx context.Context, req *http.Request) error {
	chain := make([]RequestInterceptor, 0, len(c.interceptors)+2)
	chain = append(chain, c.authorize, c.decorate)
	chain = append(chain, c.interceptors...)
	for _, fn := range chain {
		if err := fn(ctx, req); err != nil {
			return err
		}
	}
	return nil
}
