/*
 * @Description: 基于 ini 文件的令牌存储
 * @Author: 安知鱼
 * @Date: 2026-09-06 10:15:38
 * @LastEditTime: 2026-09-17 14:28:02
 * @LastEditors: 安知鱼
 */
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-ini/ini"

	"github.com/anzhiyu-c/mysite/pkg/apiclient"
)

// StorageSection 是令牌所在的 ini 分区
const StorageSection = "Storage"

// INIFile 每次读取都重新加载文件，外部进程（例如登录脚本）写入后立即生效
type INIFile struct {
	path string
	key  string
}

// NewINIFile 创建文件令牌存储，key 为空时使用 auth_token
func NewINIFile(path, key string) *INIFile {
	if strings.TrimSpace(key) == "" {
		key = apiclient.DefaultTokenKey
	}
	return &INIFile{path: path, key: key}
}

// Token 文件或键不存在时返回空令牌
func (s *INIFile) Token(context.Context) (string, error) {
	cfg, err := ini.Load(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("读取令牌文件 '%s' 失败: %w", s.path, err)
	}
	section, err := cfg.GetSection(StorageSection)
	if err != nil {
		return "", nil
	}
	if !section.HasKey(s.key) {
		return "", nil
	}
	return strings.TrimSpace(section.Key(s.key).String()), nil
}
