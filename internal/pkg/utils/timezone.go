/*
 * @Description: 时区工具 - 统一使用 UTC+8 时区
 * @Author: 安知鱼
 * @Date: 2026-01-15 10:00:00
 * @LastEditTime: 2026-09-18 09:31:40
 * @LastEditors: 安知鱼
 */
package utils

import "time"

// ChinaTimezone 中国标准时间 UTC+8
var ChinaTimezone = time.FixedZone("CST", 8*60*60)

// ToChina 将时间转换为中国时区
func ToChina(t time.Time) time.Time {
	return t.In(ChinaTimezone)
}

// ParseInChina 使用中国时区解析不带时区信息的时间字符串
func ParseInChina(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, ChinaTimezone)
}

// FromMillis 将毫秒时间戳转换为中国时区时间
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).In(ChinaTimezone)
}
