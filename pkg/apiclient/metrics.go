/*
 * @Description: 客户端请求指标
 * @Author: 安知鱼
 * @Date: 2026-09-05 10:31:18
 * @LastEditTime: 2026-09-16 10:40:51
 * @LastEditors: 安知鱼
 */
package apiclient

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 请求结果标签取值
const (
	OutcomeSuccess   = "success"
	OutcomeBusiness  = "business_error"
	OutcomeTransport = "transport_error"
)

// Metrics 记录每个后端接口的调用次数与耗时
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics 在 reg 上注册指标；重复注册时复用已存在的收集器
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mysite",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Number of backend API calls by path and outcome.",
	}, []string{"path", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mysite",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Latency of backend API calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path"})

	var err error
	if requests, err = registerOrReuse(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = registerOrReuse(reg, duration); err != nil {
		return nil, err
	}
	return &Metrics{requests: requests, duration: duration}, nil
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// observe 以路径模板（Request.Route）作为 path 标签
func (m *Metrics) observe(path, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, outcome).Inc()
	m.duration.WithLabelValues(path).Observe(elapsed.Seconds())
}

func outcomeOf(err error) string {
	switch KindOf(err) {
	case 0:
		return OutcomeSuccess
	case KindBusiness:
		return OutcomeBusiness
	default:
		return OutcomeTransport
	}
}
