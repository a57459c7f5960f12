/*
 * @Description: 站点路由表：路径匹配、页面标题、前置钩子与页面懒加载
 * @Author: 安知鱼
 * @Date: 2026-09-06 09:12:33
 * @LastEditTime: 2026-09-18 11:05:19
 * @LastEditors: 安知鱼
 */
package router

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/anzhiyu-c/mysite/internal/pkg/logger"
)

// DefaultSiteName 未配置站点名时使用
const DefaultSiteName = "MySite"

// View 是路由对应的页面；Load 拉取渲染所需的数据
type View interface {
	Template() string
	Load(ctx context.Context, query url.Values) (any, error)
}

// Component 在首次访问路由时构建页面
type Component func() (View, error)

// RouteMeta 路由元信息；RequiresAuth 目前没有任何守卫读取
type RouteMeta struct {
	Title        string
	RequiresAuth bool
}

// Route 一条路由
type Route struct {
	Path      string
	Name      string
	Meta      RouteMeta
	Component Component
}

// Hook 在导航完成前按注册顺序执行，返回错误即中止本次导航；to/from 可能为 nil
type Hook func(ctx context.Context, to, from *Route) error

// Navigation 一次导航的结果；Path 保留查询串与片段，仅匹配路由时忽略它们
type Navigation struct {
	Path   string
	To     *Route
	From   *Route
	Title  string
	Scroll Position
}

type record struct {
	route Route
	once  sync.Once
	view  View
	err   error
}

func (r *record) load() (View, error) {
	r.once.Do(func() {
		if r.route.Component == nil {
			r.err = fmt.Errorf("路由 %s 未配置页面", r.route.Name)
			return
		}
		r.view, r.err = r.route.Component()
	})
	return r.view, r.err
}

// Router 路由表本身不保存浏览状态，可被多个请求并发使用
type Router struct {
	siteName string
	records  []*record
	byPath   map[string]*record
	byName   map[string]*record
	hooks    []Hook
	log      *logger.Entry
}

// Option 配置 Router
type Option func(*Router)

// WithSiteName 设置标题后缀
func WithSiteName(name string) Option {
	return func(r *Router) {
		if name = strings.TrimSpace(name); name != "" {
			r.siteName = name
		}
	}
}

// WithHook 注册前置钩子
func WithHook(h Hook) Option {
	return func(r *Router) { r.BeforeEach(h) }
}

// New 创建路由表，路径重复时返回错误
func New(routes []Route, opts ...Option) (*Router, error) {
	r := &Router{
		siteName: DefaultSiteName,
		byPath:   make(map[string]*record, len(routes)),
		byName:   make(map[string]*record, len(routes)),
		log:      logger.Component("router"),
	}
	for i := range routes {
		rec := &record{route: routes[i]}
		rec.route.Path = normalize(rec.route.Path)
		if _, dup := r.byPath[rec.route.Path]; dup {
			return nil, fmt.Errorf("路由路径重复: %s", rec.route.Path)
		}
		r.records = append(r.records, rec)
		r.byPath[rec.route.Path] = rec
		if rec.route.Name != "" {
			r.byName[rec.route.Name] = rec
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Default 站点的默认路由：首页与文章列表
func Default(home, blog Component) []Route {
	return []Route{
		{Path: "/", Name: "Home", Meta: RouteMeta{Title: "首页"}, Component: home},
		{Path: "/blog", Name: "Blog", Meta: RouteMeta{Title: "文章"}, Component: blog},
	}
}

// BeforeEach 追加前置钩子；须在开始导航前调用
func (r *Router) BeforeEach(h Hook) {
	if h != nil {
		r.hooks = append(r.hooks, h)
	}
}

// Routes 按注册顺序返回路由
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.route
	}
	return out
}

// SiteName 返回标题后缀
func (r *Router) SiteName() string {
	return r.siteName
}

// Resolve 忽略查询串、片段与末尾斜杠后精确匹配；未命中返回 nil
func (r *Router) Resolve(path string) *Route {
	if rec := r.byPath[normalize(path)]; rec != nil {
		return &rec.route
	}
	return nil
}

// ByName 按名称查找路由
func (r *Router) ByName(name string) *Route {
	if rec := r.byName[name]; rec != nil {
		return &rec.route
	}
	return nil
}

// View 返回路由对应的页面，首次调用时构建，之后复用
func (r *Router) View(route *Route) (View, error) {
	if route == nil {
		return nil, fmt.Errorf("路由为空")
	}
	rec := r.byPath[route.Path]
	if rec == nil {
		return nil, fmt.Errorf("未注册的路由: %s", route.Path)
	}
	return rec.load()
}

// Title 生成文档标题
func (r *Router) Title(route *Route) string {
	if route == nil || strings.TrimSpace(route.Meta.Title) == "" {
		return r.siteName
	}
	return route.Meta.Title + " - " + r.siteName
}

// Navigate 解析目标并依次执行钩子；未知路径同样完成导航，To 为 nil
func (r *Router) Navigate(ctx context.Context, path string, from *Route) (*Navigation, error) {
	to := r.Resolve(path)
	for _, h := range r.hooks {
		if err := h(ctx, to, from); err != nil {
			r.log.WithField("path", path).WithError(err).Debug("导航被钩子中止")
			return nil, err
		}
	}
	return &Navigation{
		Path:   location(path),
		To:     to,
		From:   from,
		Title:  r.Title(to),
		Scroll: ScrollBehavior(to, from, nil),
	}, nil
}

// location 规范为以 / 开头的完整地址，保留查询串与片段
func location(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
