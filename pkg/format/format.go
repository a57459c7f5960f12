/*
 * @Description: 日期格式化
 * @Author: 安知鱼
 * @Date: 2026-09-05 15:20:11
 * @LastEditTime: 2026-09-18 09:40:02
 * @LastEditors: 安知鱼
 */
package format

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/anzhiyu-c/mysite/internal/pkg/utils"
)

// InvalidDate 无法解析的输入统一返回该文本
const InvalidDate = "Invalid Date"

const (
	layoutCJK     = "2006年1月2日"
	layoutEnglish = "January 2, 2006"
)

// 按顺序尝试的字符串布局；不带时区的布局按中国时区解析
var stringLayouts = []struct {
	layout string
	zoned  bool
}{
	{time.RFC3339Nano, true},
	{time.RFC3339, true},
	{"2006-01-02T15:04:05.999999999", false},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02", false},
	{"2006/01/02 15:04:05", false},
	{"2006/01/02", false},
}

// maxMillis 毫秒时间戳的有效范围为 ±8.64e15，即前后各一亿天
const maxMillis = 8.64e15

var matcher = language.NewMatcher([]language.Tag{
	language.English, // 第一个为兜底语言
	language.SimplifiedChinese,
	language.TraditionalChinese,
	language.Japanese,
})

// FormatDate 以中文长日期格式输出，如 2024年1月5日
func FormatDate(v any) string {
	return FormatDateIn("zh-CN", v)
}

// FormatDateIn 按 locale 输出长日期；zh 与 ja 使用 年月日，其余使用英文格式
func FormatDateIn(locale string, v any) string {
	t, ok := toTime(v)
	if !ok {
		return InvalidDate
	}
	return utils.ToChina(t).Format(layoutFor(locale))
}

func layoutFor(locale string) string {
	tag, _ := language.Parse(strings.TrimSpace(locale))
	matched, _, _ := matcher.Match(tag)
	base, _ := matched.Base()
	switch base.String() {
	case "zh", "ja":
		return layoutCJK
	default:
		return layoutEnglish
	}
}

func toTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, !val.IsZero()
	case *time.Time:
		if val == nil || val.IsZero() {
			return time.Time{}, false
		}
		return *val, true
	case string:
		return parseString(val)
	case int:
		return fromMillis(float64(val))
	case int64:
		return fromMillis(float64(val))
	case float64:
		return fromMillis(val)
	default:
		return time.Time{}, false
	}
}

func fromMillis(ms float64) (time.Time, bool) {
	if math.IsNaN(ms) || math.Abs(ms) > maxMillis {
		return time.Time{}, false
	}
	return utils.FromMillis(int64(ms)), true
}

func parseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range stringLayouts {
		var (
			t   time.Time
			err error
		)
		if l.zoned {
			t, err = time.Parse(l.layout, s)
		} else {
			t, err = utils.ParseInChina(l.layout, s)
		}
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
