/*
 * @Description: 分页结果
 * @Author: 安知鱼
 * @Date: 2026-09-02 10:40:05
 * @LastEditTime: 2026-09-02 10:40:05
 * @LastEditors: 安知鱼
 */
package model

// Page 描述有序集合中的一段切片及其分页元数据
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// HasNext 判断是否还有下一页，page 从 1 开始计数
func (p *Page[T]) HasNext() bool {
	return p != nil && p.Page < p.TotalPages
}

// HasPrev 判断是否存在上一页
func (p *Page[T]) HasPrev() bool {
	return p != nil && p.Page > 1
}
