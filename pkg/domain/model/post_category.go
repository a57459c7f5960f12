/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-07-25 11:43:47
 * @LastEditTime: 2026-09-03 09:30:12
 * @LastEditors: 安知鱼
 */
package model

// PostCategory 是文章分类的引用实体
type PostCategory struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PostCount int    `json:"postCount"`
}
