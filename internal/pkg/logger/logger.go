/*
 * @Description: 全局日志
 * @Author: 安知鱼
 * @Date: 2026-09-04 14:20:10
 * @LastEditTime: 2026-09-16 09:41:27
 * @LastEditors: 安知鱼
 */
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log 是进程内共享的日志实例，未调用 Init 前使用 logrus 默认配置
var Log = logrus.New()

type Entry = logrus.Entry

type Fields = logrus.Fields

// Init 按级别初始化日志；DEBUG=true 时强制开启 debug 级别
func Init(level string) {
	InitWithOutput(level, os.Stdout)
}

// InitWithOutput 与 Init 相同，但允许指定输出目标
func InitWithOutput(level string, out io.Writer) {
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	Log.SetOutput(out)

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if os.Getenv("DEBUG") == "true" {
		lvl = logrus.DebugLevel
	}
	Log.SetLevel(lvl)
}

// Component 返回带有 component 字段的日志条目
func Component(name string) *Entry {
	return Log.WithField("component", name)
}
