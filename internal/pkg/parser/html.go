/*
 * @Description: 纯文本提取
 * @Author: 安知鱼
 * @Date: 2025-08-08 16:10:36
 * @LastEditTime: 2026-09-18 10:13:20
 * @LastEditors: 安知鱼
 */
package parser

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/anzhiyu-c/mysite/internal/pkg/strutil"
)

var stripTagsPolicy = bluemonday.StripTagsPolicy()

// StripHTML 去除所有标签并还原实体，连续空白折叠为一个空格
func StripHTML(content string) string {
	text := html.UnescapeString(stripTagsPolicy.Sanitize(content))
	return strings.Join(strings.Fields(text), " ")
}

// Description 由 Markdown 生成页面 meta description
func Description(md string, maxLength int) string {
	out, err := MarkdownToHTML(md)
	if err != nil {
		out = md
	}
	return strutil.Truncate(StripHTML(out), maxLength)
}
