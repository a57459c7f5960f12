/*
 * @Description: 扁平化契约的博文接口（/blog/posts/categories、/blog/posts/tags）
 * @Author: 安知鱼
 * @Date: 2026-09-07 11:05:36
 * @LastEditTime: 2026-09-18 16:22:09
 * @LastEditors: 安知鱼
 */
package blog

import (
	"context"
	"net/http"

	"github.com/anzhiyu-c/mysite/pkg/apiclient"
	"github.com/anzhiyu-c/mysite/pkg/domain/model"
)

// GetPosts 按任意条件查询博文列表
func (a *API) GetPosts(ctx context.Context, q model.PostQuery) (*model.Page[model.PostList], error) {
	return apiclient.GetData[*model.Page[model.PostList]](ctx, a.client, PathPosts, q.Values())
}

// GetPostBySlug 与 GetBlogPostBySlug 请求同一路径，按扁平结构解码
func (a *API) GetPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	path, err := slugPath(slug)
	if err != nil {
		return nil, err
	}
	return apiclient.DoData[*model.Post](ctx, a.client, apiclient.Request{
		Method: http.MethodGet,
		Path:   path,
		Route:  PathPostBySlug,
	})
}

// GetPostCategories 查询带文章数的分类列表
func (a *API) GetPostCategories(ctx context.Context) ([]model.PostCategory, error) {
	return apiclient.GetData[[]model.PostCategory](ctx, a.client, PathPostCategories, nil)
}

// GetPostTags 查询带文章数的标签列表
func (a *API) GetPostTags(ctx context.Context) ([]model.PostTag, error) {
	return apiclient.GetData[[]model.PostTag](ctx, a.client, PathPostTags, nil)
}
