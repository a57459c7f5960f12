/*
 * @Description: 博客接口模块（主契约）
 * @Author: 安知鱼
 * @Date: 2026-09-07 09:48:12
 * @LastEditTime: 2026-09-18 16:20:31
 * @LastEditors: 安知鱼
 */
package blog

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/anzhiyu-c/mysite/pkg/apiclient"
	"github.com/anzhiyu-c/mysite/pkg/constant"
	"github.com/anzhiyu-c/mysite/pkg/domain/model"
)

// 后端接口路径
const (
	PathPosts          = "/blog/posts"
	PathPostBySlug     = "/blog/posts/{slug}"
	PathCategories     = "/blog/categories"
	PathPostCategories = "/blog/posts/categories"
	PathPostTags       = "/blog/posts/tags"
)

// API 将博客领域操作映射为具体的后端调用，每个方法只发起一次请求并返回信封中的 data
type API struct {
	client *apiclient.Client
}

// New 是 API 的构造函数
func New(client *apiclient.Client) *API {
	return &API{client: client}
}

// GetBlogPostPage 分页查询博文，req 为 nil 时不带任何查询参数
func (a *API) GetBlogPostPage(ctx context.Context, req *model.GetBlogPostPageRequest) (*model.Page[model.BlogPostInfoResponse], error) {
	var query url.Values
	if req != nil {
		query = req.Query()
	}
	return apiclient.DoData[*model.Page[model.BlogPostInfoResponse]](ctx, a.client, apiclient.Request{
		Method: http.MethodGet,
		Path:   PathPosts,
		Query:  query,
	})
}

// GetBlogPostBySlug 根据 slug 查询单篇博文，slug 为空时不发起请求
func (a *API) GetBlogPostBySlug(ctx context.Context, req *model.GetBlogPostBySlugRequest) (*model.BlogPostDetailResponse, error) {
	var slug string
	if req != nil {
		slug = req.Slug
	}
	path, err := slugPath(slug)
	if err != nil {
		return nil, err
	}
	return apiclient.DoData[*model.BlogPostDetailResponse](ctx, a.client, apiclient.Request{
		Method: http.MethodGet,
		Path:   path,
		Route:  PathPostBySlug,
	})
}

// GetCategoryList 查询分类列表
func (a *API) GetCategoryList(ctx context.Context) (*model.BlogCategoryListResponse, error) {
	return apiclient.GetData[*model.BlogCategoryListResponse](ctx, a.client, PathCategories, nil)
}

// slugPath 仅用于判断是否为空白，发送时保留 slug 原样
func slugPath(slug string) (string, error) {
	if strings.TrimSpace(slug) == "" {
		return "", apiclient.Validation(constant.MsgSlugRequired)
	}
	return PathPosts + "/" + url.PathEscape(slug), nil
}
