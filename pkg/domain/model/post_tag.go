/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-07-25 11:41:57
 * @LastEditTime: 2026-09-03 09:30:40
 * @LastEditors: 安知鱼
 */
package model

// PostTag 是文章标签的引用实体
type PostTag struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PostCount int    `json:"postCount"`
}
