/*
 * @Description: 应用装配与生命周期
 * @Author: 安知鱼
 * @Date: 2025-10-17 10:35:28
 * @LastEditTime: 2026-09-20 11:02:48
 * @LastEditors: 安知鱼
 */
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/anzhiyu-c/mysite/internal/infra/frontend"
	"github.com/anzhiyu-c/mysite/internal/infra/persistence/database"
	"github.com/anzhiyu-c/mysite/internal/infra/tokenstore"
	"github.com/anzhiyu-c/mysite/internal/pkg/logger"
	"github.com/anzhiyu-c/mysite/internal/pkg/version"
	"github.com/anzhiyu-c/mysite/pkg/api/blog"
	"github.com/anzhiyu-c/mysite/pkg/apiclient"
	"github.com/anzhiyu-c/mysite/pkg/config"
	"github.com/anzhiyu-c/mysite/pkg/router"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = 5 * time.Minute
)

// App 持有运行期依赖
type App struct {
	cfg    *config.Config
	log    *logger.Entry
	api    *blog.API
	router *router.Router
	site   *frontend.Server
	redis  *redis.Client
	srv    *http.Server
}

// PrintBanner 打印启动信息
func (a *App) PrintBanner() {
	a.log.WithFields(logger.Fields{
		"version": version.GetVersionString(),
		"backend": a.cfg.GetString(config.KeyAPIBaseURL),
		"site":    a.router.SiteName(),
	}).Info("MySite 启动")
}

// NewApp 读取配置并完成所有依赖的组装，返回的 cleanup 用于释放外部连接
func NewApp(ctx context.Context, configPath string) (*App, func(), error) {
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}
	logger.Init(cfg.GetString(config.KeyLogLevel))
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if !cfg.GetBool(config.KeyServerDebug) {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{cfg: cfg, log: logger.Component("app")}

	tokens, err := app.newTokenStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := apiclient.NewMetrics(registry)
	if err != nil {
		app.close()
		return nil, nil, err
	}

	opts := []apiclient.Option{
		apiclient.WithTokenStore(tokens),
		apiclient.WithMetrics(metrics),
		apiclient.WithLogger(logger.Component("apiclient")),
		apiclient.WithUserAgent(version.UserAgent()),
	}
	if limit := cfg.GetInt(config.KeyAPIRateLimit); limit > 0 {
		opts = append(opts, apiclient.WithRateLimiter(rate.NewLimiter(rate.Limit(limit), limit)))
	}
	client, err := apiclient.New(apiclient.Config{
		BaseURL: cfg.GetString(config.KeyAPIBaseURL),
		Timeout: cfg.GetMillis(config.KeyAPITimeout),
	}, opts...)
	if err != nil {
		app.close()
		return nil, nil, err
	}
	app.api = blog.New(client)

	locale := cfg.GetString(config.KeySiteLocale)
	app.router, err = router.New(router.Default(
		frontend.NewHomeComponent(app.api, locale),
		frontend.NewBlogComponent(app.api, locale),
	), router.WithSiteName(cfg.GetString(config.KeySiteName)))
	if err != nil {
		app.close()
		return nil, nil, err
	}

	app.site, err = frontend.New(app.router, app.api, frontend.Options{
		Locale:    locale,
		RateLimit: cfg.GetInt(config.KeyServerLimit),
		Registry:  registry,
		Logger:    logger.Component("frontend"),
	})
	if err != nil {
		app.close()
		return nil, nil, err
	}

	app.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.GetInt(config.KeyServerPort)),
		Handler:           app.site.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return app, app.close, nil
}

// newTokenStore 按 Auth.Store 选择令牌来源
func (a *App) newTokenStore(ctx context.Context) (apiclient.TokenStore, error) {
	key := a.cfg.GetString(config.KeyAuthTokenKey)
	switch strings.ToLower(a.cfg.GetString(config.KeyAuthStore)) {
	case config.AuthStoreFile:
		return tokenstore.NewINIFile(a.cfg.GetString(config.KeyAuthTokenFile), key), nil
	case config.AuthStoreRedis:
		rdb, err := database.NewRedisClient(ctx, a.cfg)
		if err != nil {
			return nil, err
		}
		a.redis = rdb
		return tokenstore.NewRedis(rdb, a.cfg.GetString(config.KeyRedisPrefix), key), nil
	default:
		return tokenstore.Static(a.cfg.GetString(config.KeyAuthToken)), nil
	}
}

func (a *App) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.WithError(err).Warn("关闭 Redis 连接失败")
		}
		a.redis = nil
	}
}

// Config 返回已加载的配置
func (a *App) Config() *config.Config {
	return a.cfg
}

// Handler 返回站点的 http.Handler
func (a *App) Handler() http.Handler {
	return a.site.Handler()
}

// Run 启动 HTTP 服务，ctx 结束后在超时时间内优雅关闭
func (a *App) Run(ctx context.Context) error {
	if limiter := a.site.Limiter(); limiter != nil {
		go limiter.RunSweeper(ctx, sweepInterval)
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.WithField("addr", a.srv.Addr).Info("应用程序启动成功")
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("正在关闭服务...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("关闭服务失败: %w", err)
	}
	return <-errCh
}
