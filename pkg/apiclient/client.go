/*
 * @Description: 博客后端 HTTP 客户端，负责鉴权头与信封解包
 * @Author: 安知鱼
 * @Date: 2026-09-04 16:45:29
 * @LastEditTime: 2026-09-18 15:07:44
 * @LastEditors: 安知鱼
 */
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/anzhiyu-c/mysite/internal/pkg/logger"
	"github.com/anzhiyu-c/mysite/pkg/constant"
	"github.com/anzhiyu-c/mysite/pkg/response"
)

const (
	// DefaultTimeout 未配置 Api.Timeout 时的请求超时
	DefaultTimeout = 5 * time.Second

	maxBodyBytes = 8 << 20
)

// Config 是构造客户端时注入的配置，不在调用时读取任何全局状态
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client 可被多个 goroutine 并发使用，各次调用互相独立
type Client struct {
	baseURL      string
	http         *http.Client
	tokens       TokenStore
	interceptors []RequestInterceptor
	log          *logrus.Entry
	metrics      *Metrics
	limiter      *rate.Limiter
	userAgent    string
}

// Option 用于定制 Client
type Option func(*Client)

// WithTokenStore 设置令牌来源
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) { c.tokens = store }
}

// WithHTTPClient 替换底层 http.Client；其 Timeout 为零时沿用配置的超时
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(entry *logrus.Entry) Option {
	return func(c *Client) {
		if entry != nil {
			c.log = entry
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithRateLimiter 在发出请求前等待令牌桶，nil 表示不限速
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = strings.TrimSpace(ua) }
}

// WithRequestInterceptor 追加自定义请求拦截器，排在鉴权与通用头之后执行
func WithRequestInterceptor(fn RequestInterceptor) Option {
	return func(c *Client) {
		if fn != nil {
			c.interceptors = append(c.interceptors, fn)
		}
	}
}

// New 根据配置创建客户端
func New(cfg Config, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("后端地址不能为空")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("无效的后端地址 %q: %w", cfg.BaseURL, err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		log:     logger.Component("apiclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Timeout == 0 {
		c.http.Timeout = timeout
	}
	return c, nil
}

// BaseURL 返回规范化后的后端地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request 描述一次后端调用。Route 用作指标标签，为空时取 Path。
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}
	Route  string
}

// Response 是业务成功时原样透传的完整响应
type Response struct {
	StatusCode int
	Header     http.Header
	Envelope   response.ApiResponse[json.RawMessage]
}

// Get 发起 GET 请求
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

// Do 发起请求并校验信封：code 为 200 时返回完整响应，否则返回 *Error
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	route := r.Route
	if route == "" {
		route = r.Path
	}
	start := time.Now()
	resp, err := c.do(ctx, r)
	c.metrics.observe(route, outcomeOf(err), time.Since(start))

	entry := c.log.WithFields(logrus.Fields{
		"method":   methodOrGet(r.Method),
		"route":    route,
		"duration": time.Since(start).String(),
	})
	if err != nil {
		entry.WithField("kind", KindOf(err).String()).Debugf("后端请求失败: %v", err)
		return nil, err
	}
	entry.WithField("status", resp.StatusCode).Debug("后端请求完成")
	return resp, nil
}

func (c *Client) do(ctx context.Context, r Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, transportError(0, "", err)
		}
	}

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, transportError(0, "", err)
	}
	if err := c.intercept(ctx, req); err != nil {
		return nil, transportError(0, "", err)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(0, "", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, transportError(httpResp.StatusCode, "", err)
	}
	if len(body) > maxBodyBytes {
		return nil, transportError(httpResp.StatusCode, "", fmt.Errorf("响应体超过 %d 字节", maxBodyBytes))
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, transportError(httpResp.StatusCode, messageFromBody(body), nil)
	}

	envelope, err := decodeEnvelope(body)
	if err != nil {
		return nil, businessError(response.CodeUnknown, "", err)
	}
	if !envelope.Succeeded() {
		return nil, businessError(envelope.Code, envelope.Message, nil)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Envelope:   envelope,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(r.Path, "/")
	if len(r.Query) > 0 {
		endpoint += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("序列化请求体失败: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, methodOrGet(r.Method), endpoint, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// decodeEnvelope 解析信封；响应体为空或为 null 时构造 code=-1 的兜底信封
func decodeEnvelope(body []byte) (response.ApiResponse[json.RawMessage], error) {
	var envelope response.ApiResponse[json.RawMessage]
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		envelope.Code = response.CodeUnknown
		envelope.Message = constant.MsgUnknownResponse
		return envelope, nil
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return envelope, fmt.Errorf("解析响应信封失败: %w", err)
	}
	return envelope, nil
}

// messageFromBody 尝试从错误响应体中取出 message 字段
func messageFromBody(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(body), &payload); err != nil {
		return ""
	}
	return payload.Message
}

func methodOrGet(method string) string {
	if method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(method)
}

// Decode 将成功响应中的 data 原样解码为 T；data 缺失或为 null 时返回零值
func Decode[T any](resp *Response) (T, error) {
	var out T
	if resp == nil {
		return out, businessError(response.CodeUnknown, constant.MsgUnknownResponse, nil)
	}
	data := bytes.TrimSpace(resp.Envelope.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, businessError(resp.Envelope.Code, "响应数据格式错误", err)
	}
	return out, nil
}

// GetData 发起 GET 请求并返回解包后的 data
func GetData[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	return DoData[T](ctx, c, Request{Method: http.MethodGet, Path: path, Query: query})
}

// DoData 发起请求并返回解包后的 data
func DoData[T any](ctx context.Context, c *Client, r Request) (T, error) {
	resp, err := c.Do(ctx, r)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](resp)
}
