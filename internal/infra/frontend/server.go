/*
 * @Description: 服务端渲染站点
 * @Author: 安知鱼
 * @Date: 2026-09-08 15:11:52
 * @LastEditTime: 2026-09-19 16:40:05
 * @LastEditors: 安知鱼
 */
package frontend

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anzhiyu-c/mysite/internal/app/middleware"
	"github.com/anzhiyu-c/mysite/internal/pkg/logger"
	"github.com/anzhiyu-c/mysite/internal/pkg/strutil"
	"github.com/anzhiyu-c/mysite/internal/pkg/version"
	"github.com/anzhiyu-c/mysite/pkg/apiclient"
	"github.com/anzhiyu-c/mysite/pkg/response"
	"github.com/anzhiyu-c/mysite/pkg/router"
)

//go:embed templates/*.html
var templateFS embed.FS

const errorTemplate = "error.html"

var pageTemplates = []string{"home.html", "blog.html", "post.html", errorTemplate}

// pageRender 每个页面各自与 layout 组合，避免 content 块互相覆盖
type pageRender struct{ pages map[string]*template.Template }

func (r pageRender) Instance(name string, data interface{}) render.Render {
	tpl, ok := r.pages[name]
	if !ok {
		tpl = r.pages[errorTemplate]
	}
	return render.HTML{Template: tpl, Name: "layout.html", Data: data}
}

func loadTemplates() (pageRender, error) {
	funcs := template.FuncMap{
		"truncate": strutil.Truncate,
	}
	pages := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return pageRender{}, fmt.Errorf("解析模板 %s 失败: %w", name, err)
		}
		pages[name] = tpl
	}
	return pageRender{pages: pages}, nil
}

// Options 站点配置
type Options struct {
	Locale string
	// RateLimit 每个 IP 每分钟允许的请求数，0 表示不限
	RateLimit int
	Registry  *prometheus.Registry
	Logger    *logger.Entry
}

// Server 把路由表中的每条路由注册为一个 GET 页面
type Server struct {
	engine  *gin.Engine
	router  *router.Router
	src     BlogSource
	locale  string
	limiter *middleware.IPRateLimiter
	log     *logger.Entry
}

// New 组装 gin 引擎
func New(r *router.Router, src BlogSource, opts Options) (*Server, error) {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Component("frontend")
	}
	if opts.Locale == "" {
		opts.Locale = "zh-CN"
	}

	pages, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	counter, err := middleware.NewRequestCounter(opts.Registry)
	if err != nil {
		return nil, err
	}

	s := &Server{
		engine: gin.New(),
		router: r,
		src:    src,
		locale: opts.Locale,
		log:    opts.Logger,
	}
	s.engine.HTMLRender = pages
	s.engine.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(opts.Logger, counter), middleware.Cors())
	if opts.RateLimit > 0 {
		s.limiter = middleware.NewIPRateLimiter(opts.RateLimit, opts.RateLimit)
		s.engine.Use(middleware.RateLimit(s.limiter))
	}

	s.engine.GET("/api/health", s.health)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	for _, route := range r.Routes() {
		s.engine.GET(route.Path, s.page)
	}
	s.engine.GET("/blog/:slug", s.post)
	s.engine.NoRoute(s.notFound)
	return s, nil
}

// Handler 返回 http.Handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Limiter 未开启限流时为 nil
func (s *Server) Limiter() *middleware.IPRateLimiter {
	return s.limiter
}

func (s *Server) health(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "ok",
		"version": version.GetBuildInfo(),
	}, "ok")
}

func (s *Server) page(c *gin.Context) {
	ctx := c.Request.Context()
	nav, err := s.router.Navigate(ctx, c.Request.URL.Path, nil)
	if err != nil {
		s.renderError(c, http.StatusForbidden, s.router.SiteName(), err.Error())
		return
	}
	view, err := s.router.View(nav.To)
	if err != nil {
		s.log.WithError(err).WithField("path", nav.Path).Error("构建页面失败")
		s.renderError(c, http.StatusInternalServerError, nav.Title, "页面暂时无法显示")
		return
	}
	data, err := view.Load(ctx, c.Request.URL.Query())
	if err != nil {
		s.renderAPIError(c, nav.Title, err)
		return
	}
	c.HTML(http.StatusOK, view.Template(), s.pageData(c, nav.Title, "", data))
}

func (s *Server) post(c *gin.Context) {
	ctx := c.Request.Context()
	from := s.router.ByName("Blog")
	nav, err := s.router.Navigate(ctx, c.Request.URL.Path, from)
	if err != nil {
		s.renderError(c, http.StatusForbidden, s.router.SiteName(), err.Error())
		return
	}
	detail, err := loadPost(ctx, s.src, s.locale, c.Param("slug"))
	if errors.Is(err, errPostNotFound) {
		s.renderError(c, http.StatusNotFound, nav.Title, err.Error())
		return
	}
	if err != nil {
		s.renderAPIError(c, nav.Title, err)
		return
	}
	title := s.router.Title(&router.Route{Meta: router.RouteMeta{Title: detail.Title}})
	c.HTML(http.StatusOK, "post.html", s.pageData(c, title, detail.Description, detail))
}

func (s *Server) notFound(c *gin.Context) {
	nav, err := s.router.Navigate(c.Request.Context(), c.Request.URL.Path, nil)
	title := s.router.SiteName()
	if err == nil {
		title = nav.Title
	}
	s.renderError(c, http.StatusNotFound, title, "页面不存在")
}

func (s *Server) renderAPIError(c *gin.Context, title string, err error) {
	status := StatusFor(err)
	entry := s.log.WithError(err).WithFields(logger.Fields{
		"request_id": middleware.GetRequestID(c),
		"kind":       apiclient.KindOf(err).String(),
	})
	if status >= http.StatusInternalServerError {
		entry.Error("后端接口调用失败")
	} else {
		entry.Warn("后端接口返回错误")
	}
	s.renderError(c, status, title, err.Error())
}

func (s *Server) renderError(c *gin.Context, status int, title, message string) {
	c.HTML(status, errorTemplate, s.pageData(c, title, "", gin.H{"status": status, "message": message}))
}

func (s *Server) pageData(c *gin.Context, title, description string, data any) gin.H {
	return gin.H{
		"title":       title,
		"description": description,
		"siteName":    s.router.SiteName(),
		"lang":        s.locale,
		"nav":         s.navItems(c.Request.URL.Path),
		"requestID":   middleware.GetRequestID(c),
		"data":        data,
	}
}

type navItem struct {
	Title  string
	Path   string
	Active bool
}

func (s *Server) navItems(current string) []navItem {
	routes := s.router.Routes()
	items := make([]navItem, 0, len(routes))
	for _, r := range routes {
		active := r.Path == current || (r.Path != "/" && strings.HasPrefix(current, r.Path+"/"))
		items = append(items, navItem{Title: r.Meta.Title, Path: r.Path, Active: active})
	}
	return items
}

// StatusFor 按错误类别决定页面状态码：校验 400，业务 200，网络 502
func StatusFor(err error) int {
	switch apiclient.KindOf(err) {
	case apiclient.KindValidation:
		return http.StatusBadRequest
	case apiclient.KindBusiness:
		return http.StatusOK
	case apiclient.KindTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
