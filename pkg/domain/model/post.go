/*
 * @Description: 扁平化的博文结构（/blog/posts/* 系列接口）
 * @Author: 安知鱼
 * @Date: 2026-09-03 09:21:44
 * @LastEditTime: 2026-09-15 11:05:52
 * @LastEditors: 安知鱼
 */
package model

import (
	"net/url"
	"strconv"
	"strings"
)

// PostList 是博文列表投影，标签与分类都已展开为名称
type PostList struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Excerpt      string   `json:"excerpt"`
	CoverImage   string   `json:"coverImage"`
	CategoryName string   `json:"categoryName"`
	CategorySlug string   `json:"categorySlug"`
	TagNames     []string `json:"tagNames"`
	ViewCount    int      `json:"viewCount"`
	ReadTime     int      `json:"readTime"`
	PublishedAt  string   `json:"publishedAt"`
}

// Post 在 PostList 的基础上增加正文
type Post struct {
	PostList
	Content string `json:"content"`
}

// PostQuery 是 /blog/posts 的查询条件，零值字段不会出现在查询串中
type PostQuery struct {
	Page     int
	Size     int
	Category string
	Tag      string
	Keyword  string
}

// Values 将查询条件编码为 url.Values
func (q PostQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if s := strings.TrimSpace(q.Category); s != "" {
		v.Set("category", s)
	}
	if s := strings.TrimSpace(q.Tag); s != "" {
		v.Set("tag", s)
	}
	if s := strings.TrimSpace(q.Keyword); s != "" {
		v.Set("keyword", s)
	}
	return v
}
