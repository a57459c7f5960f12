/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-08-08 16:10:53
 * @LastEditTime: 2026-09-18 10:14:02
 * @LastEditors: 安知鱼
 */
package strutil

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis 截断后追加的省略号
const Ellipsis = "..."

// Truncate 按 rune 截断字符串，超出时去掉尾部空白并追加省略号；maxLength<=0 时返回空串
func Truncate(s string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:maxLength]), " \t\n") + Ellipsis
}
