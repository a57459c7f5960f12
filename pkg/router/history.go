package router

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNoBack    = errors.New("没有可后退的历史记录")
	ErrNoForward = errors.New("没有可前进的历史记录")
)

// Position 页面滚动位置
type Position struct {
	Left int
	Top  int
}

// ScrollBehavior 有保存的位置时恢复，否则回到顶部
func ScrollBehavior(to, from *Route, saved *Position) Position {
	if saved != nil {
		return *saved
	}
	return Position{Top: 0}
}

type entry struct {
	path   string
	route  *Route
	scroll *Position
}

// History 模拟一个浏览会话的前进/后退栈
type History struct {
	mu      sync.Mutex
	router  *Router
	entries []entry
	index   int
}

// NewHistory 以 start 作为初始页面创建会话
func (r *Router) NewHistory(start string) *History {
	return &History{
		router:  r,
		entries: []entry{{path: location(start), route: r.Resolve(start)}},
	}
}

// Current 当前所在地址（含查询串与片段）与路由
func (h *History) Current() (string, *Route) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cur := h.entries[h.index]
	return cur.path, cur.route
}

// Len 历史记录条数
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Push 记录当前页面的滚动位置后跳转到新页面，丢弃前进记录；新页面从顶部开始
func (h *History) Push(ctx context.Context, path string, scrollY int) (*Navigation, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	from := h.entries[h.index]
	nav, err := h.router.Navigate(ctx, path, from.route)
	if err != nil {
		return nil, err
	}
	h.entries[h.index].scroll = &Position{Top: scrollY}
	h.entries = append(h.entries[:h.index+1], entry{path: nav.Path, route: nav.To})
	h.index++
	return nav, nil
}

// Back 后退一步并恢复该页面离开时的滚动位置
func (h *History) Back(ctx context.Context, scrollY int) (*Navigation, error) {
	return h.traverse(ctx, -1, scrollY)
}

// Forward 前进一步并恢复该页面离开时的滚动位置
func (h *History) Forward(ctx context.Context, scrollY int) (*Navigation, error) {
	return h.traverse(ctx, 1, scrollY)
}

func (h *History) traverse(ctx context.Context, delta, scrollY int) (*Navigation, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	target := h.index + delta
	if target < 0 {
		return nil, ErrNoBack
	}
	if target >= len(h.entries) {
		return nil, ErrNoForward
	}

	from := h.entries[h.index]
	to := h.entries[target]
	nav, err := h.router.Navigate(ctx, to.path, from.route)
	if err != nil {
		return nil, err
	}
	h.entries[h.index].scroll = &Position{Top: scrollY}
	h.index = target
	nav.Scroll = ScrollBehavior(nav.To, nav.From, to.scroll)
	return nav, nil
}
