/*
 * @Description: 博客接口的请求与响应结构（主契约）
 * @Author: 安知鱼
 * @Date: 2026-09-02 10:47:59
 * @LastEditTime: 2026-09-15 11:02:16
 * @LastEditors: 安知鱼
 */
package model

import (
	"net/url"
	"strconv"
)

// --- 请求 ---

// GetBlogPostPageRequest 定义了分页查询博文的请求参数
type GetBlogPostPageRequest struct {
	Page int
	Size int
	// CategorySlug 为 nil 时不按分类过滤
	CategorySlug *string
}

// Query 将请求编码为查询参数，分类参数名沿用后端的 categlorySlug 拼写
func (r *GetBlogPostPageRequest) Query() url.Values {
	q := url.Values{}
	if r == nil {
		return q
	}
	q.Set("page", strconv.Itoa(r.Page))
	q.Set("size", strconv.Itoa(r.Size))
	if r.CategorySlug != nil {
		q.Set("categlorySlug", *r.CategorySlug)
	}
	return q
}

// GetBlogPostBySlugRequest 定义了按 slug 查询单篇博文的请求参数
type GetBlogPostBySlugRequest struct {
	Slug string
}

// --- 响应 ---

// BlogTagResponse 博文上携带的标签
type BlogTagResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// BlogPostInfoResponse 博文列表项
type BlogPostInfoResponse struct {
	Title        string            `json:"title"`
	Slug         string            `json:"slug"`
	Excerpt      string            `json:"excerpt"`
	CoverImage   string            `json:"coverImage"`
	CategorySlug []int             `json:"categorySlug"`
	Status       string            `json:"status"`
	Featured     bool              `json:"featured"`
	ViewCount    int               `json:"viewCount"`
	ReadTime     int               `json:"readTime"`
	PublishedAt  string            `json:"publishedAt"`
	CreatedAt    string            `json:"createdAt"`
	UpdatedAt    string            `json:"updatedAt"`
	Tags         []BlogTagResponse `json:"tags"`
}

// BlogPostDetailResponse 博文详情，在列表项的基础上增加正文
type BlogPostDetailResponse struct {
	BlogPostInfoResponse
	Content string `json:"content"`
}

// BlogCategoryResponse 博客分类
type BlogCategoryResponse struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
	CreatedAt   string `json:"createdAt"`
	UpdateAt    string `json:"updateAt"`
}

// BlogCategoryListResponse 分类列表，字段名沿用后端的 categlortList 拼写
type BlogCategoryListResponse struct {
	CategoryList []BlogCategoryResponse `json:"categlortList"`
}
