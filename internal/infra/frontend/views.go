/*
 * @Description: 首页、文章列表与文章详情页面
 * @Author: 安知鱼
 * @Date: 2026-09-08 16:02:37
 * @LastEditTime: 2026-09-19 15:27:10
 * @LastEditors: 安知鱼
 */
package frontend

import (
	"context"
	"errors"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/anzhiyu-c/mysite/internal/pkg/logger"
	"github.com/anzhiyu-c/mysite/internal/pkg/parser"
	"github.com/anzhiyu-c/mysite/pkg/domain/model"
	"github.com/anzhiyu-c/mysite/pkg/format"
	"github.com/anzhiyu-c/mysite/pkg/router"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
	// 详情页 meta description 的最大字符数
	descriptionLength = 120
)

var errPostNotFound = errors.New("文章不存在")

// BlogSource 页面依赖的后端接口，*blog.API 实现了它
type BlogSource interface {
	GetBlogPostPage(ctx context.Context, req *model.GetBlogPostPageRequest) (*model.Page[model.BlogPostInfoResponse], error)
	GetBlogPostBySlug(ctx context.Context, req *model.GetBlogPostBySlugRequest) (*model.BlogPostDetailResponse, error)
	GetCategoryList(ctx context.Context) (*model.BlogCategoryListResponse, error)
	GetPostTags(ctx context.Context) ([]model.PostTag, error)
}

// PostCard 列表中的一篇文章
type PostCard struct {
	Title     string
	URL       string
	Cover     string
	Date      string
	Excerpt   template.HTML
	Tags      []model.BlogTagResponse
	ReadTime  int
	ViewCount int
	Featured  bool
}

func toCards(locale string, posts []model.BlogPostInfoResponse) []PostCard {
	cards := make([]PostCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, PostCard{
			Title:     p.Title,
			URL:       "/blog/" + url.PathEscape(p.Slug),
			Cover:     p.CoverImage,
			Date:      format.FormatDateIn(locale, p.PublishedAt),
			Excerpt:   parser.SafeHTML(p.Excerpt),
			Tags:      p.Tags,
			ReadTime:  p.ReadTime,
			ViewCount: p.ViewCount,
			Featured:  p.Featured,
		})
	}
	return cards
}

// HomeView 首页展示最新文章
type HomeView struct {
	src    BlogSource
	locale string
	size   int
}

// NewHomeComponent 返回首页的懒加载构造函数
func NewHomeComponent(src BlogSource, locale string) router.Component {
	return func() (router.View, error) {
		return &HomeView{src: src, locale: locale, size: defaultPageSize}, nil
	}
}

func (v *HomeView) Template() string { return "home.html" }

func (v *HomeView) Load(ctx context.Context, _ url.Values) (any, error) {
	page, err := v.src.GetBlogPostPage(ctx, &model.GetBlogPostPageRequest{Page: 1, Size: v.size})
	if err != nil {
		return nil, err
	}
	if page == nil {
		page = &model.Page[model.BlogPostInfoResponse]{}
	}
	return gin.H{
		"posts": toCards(v.locale, page.Content),
		"total": page.TotalElements,
		"more":  page.HasNext(),
	}, nil
}

// BlogView 文章列表，支持 ?page=&size=&category=
type BlogView struct {
	src    BlogSource
	locale string
	log    *logger.Entry
}

// NewBlogComponent 返回文章列表页的懒加载构造函数
func NewBlogComponent(src BlogSource, locale string) router.Component {
	return func() (router.View, error) {
		return &BlogView{src: src, locale: locale, log: logger.Component("frontend")}, nil
	}
}

func (v *BlogView) Template() string { return "blog.html" }

func (v *BlogView) Load(ctx context.Context, query url.Values) (any, error) {
	req := &model.GetBlogPostPageRequest{
		Page: intParam(query, "page", 1, 1, 0),
		Size: intParam(query, "size", defaultPageSize, 1, maxPageSize),
	}
	category := strings.TrimSpace(query.Get("category"))
	if category != "" {
		req.CategorySlug = &category
	}

	var (
		page       *model.Page[model.BlogPostInfoResponse]
		categories *model.BlogCategoryListResponse
		tags       []model.PostTag
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page, err = v.src.GetBlogPostPage(gctx, req)
		return err
	})
	g.Go(func() (err error) {
		categories, err = v.src.GetCategoryList(gctx)
		return err
	})
	// 标签接口不是每个后端都提供，失败时侧栏不显示标签
	g.Go(func() error {
		var err error
		if tags, err = v.src.GetPostTags(gctx); err != nil {
			tags = nil
			v.log.WithError(err).Warn("获取标签失败，文章列表不显示标签")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// data 为 null 时按空列表处理
	if page == nil {
		page = &model.Page[model.BlogPostInfoResponse]{Page: req.Page, Size: req.Size}
	}

	var categoryList []model.BlogCategoryResponse
	if categories != nil {
		categoryList = categories.CategoryList
	}
	return gin.H{
		"posts":      toCards(v.locale, page.Content),
		"categories": categoryList,
		"tags":       tags,
		"category":   category,
		"page":       page.Page,
		"totalPages": page.TotalPages,
		"prevURL":    pageURL(page.HasPrev(), req.Page-1, req.Size, category),
		"nextURL":    pageURL(page.HasNext(), req.Page+1, req.Size, category),
	}, nil
}

// PostDetail 文章详情页所需数据
type PostDetail struct {
	Title       string
	Description string
	Date        string
	Updated     string
	Cover       string
	Tags        []model.BlogTagResponse
	ReadTime    int
	ViewCount   int
	Content     template.HTML
}

func loadPost(ctx context.Context, src BlogSource, locale, slug string) (*PostDetail, error) {
	post, err := src.GetBlogPostBySlug(ctx, &model.GetBlogPostBySlugRequest{Slug: slug})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errPostNotFound
	}
	content, err := parser.MarkdownToHTML(post.Content)
	if err != nil {
		return nil, err
	}
	return &PostDetail{
		Title:       post.Title,
		Description: parser.Description(firstNonBlank(post.Excerpt, post.Content), descriptionLength),
		Date:        format.FormatDateIn(locale, post.PublishedAt),
		Updated:     format.FormatDateIn(locale, post.UpdatedAt),
		Cover:       post.CoverImage,
		Tags:        post.Tags,
		ReadTime:    post.ReadTime,
		ViewCount:   post.ViewCount,
		Content:     template.HTML(content),
	}, nil
}

// intParam 解析整数查询参数，非法值使用默认值；hi 为 0 表示不设上限
func intParam(q url.Values, key string, def, lo, hi int) int {
	n, err := strconv.Atoi(strings.TrimSpace(q.Get(key)))
	if err != nil || n < lo {
		return def
	}
	if hi > 0 && n > hi {
		return hi
	}
	return n
}

func pageURL(ok bool, page, size int, category string) string {
	if !ok {
		return ""
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if category != "" {
		q.Set("category", category)
	}
	return "/blog?" + q.Encode()
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
