/*
 * @Description: 统一配置管理 (ini 文件 + .env + 环境变量)
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2026-09-18 10:44:36
 * @LastEditors: 安知鱼
 */
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-ini/ini"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/anzhiyu-c/mysite/internal/pkg/logger"
)

// DefaultPath 是默认的配置文件位置
const DefaultPath = "data/conf.ini"

// EnvPrefix 环境变量前缀，例如 MYSITE_API_BASEURL
const EnvPrefix = "MYSITE"

const (
	KeyServerPort    = "System.Port"
	KeyServerDebug   = "System.Debug"
	KeyServerLimit   = "System.RateLimit"
	KeyAPIBaseURL    = "Api.BaseURL"
	KeyAPITimeout    = "Api.Timeout"
	KeyAPIRateLimit  = "Api.RateLimit"
	KeyAuthStore     = "Auth.Store"
	KeyAuthToken     = "Auth.Token"
	KeyAuthTokenFile = "Auth.TokenFile"
	KeyAuthTokenKey  = "Auth.TokenKey"
	KeyRedisAddr     = "Redis.Addr"
	KeyRedisPassword = "Redis.Password"
	KeyRedisDB       = "Redis.DB"
	KeyRedisPrefix   = "Redis.Prefix"
	KeySiteName      = "Site.Name"
	KeySiteLocale    = "Site.Locale"
	KeyLogLevel      = "Log.Level"
)

// 定义所有已知的配置键
var allKeys = []string{
	KeyServerPort, KeyServerDebug, KeyServerLimit,
	KeyAPIBaseURL, KeyAPITimeout, KeyAPIRateLimit,
	KeyAuthStore, KeyAuthToken, KeyAuthTokenFile, KeyAuthTokenKey,
	KeyRedisAddr, KeyRedisPassword, KeyRedisDB, KeyRedisPrefix,
	KeySiteName, KeySiteLocale, KeyLogLevel,
}

// 令牌存储方式
const (
	AuthStoreStatic = "static"
	AuthStoreFile   = "file"
	AuthStoreRedis  = "redis"
)

var defaults = map[string]interface{}{
	KeyServerPort:    8092,
	KeyServerDebug:   false,
	KeyServerLimit:   120,
	KeyAPITimeout:    5000,
	KeyAPIRateLimit:  0,
	KeyAuthStore:     AuthStoreStatic,
	KeyAuthTokenFile: "data/token.ini",
	KeyAuthTokenKey:  "auth_token",
	KeyRedisDB:       0,
	KeyRedisPrefix:   "mysite:",
	KeySiteName:      "MySite",
	KeySiteLocale:    "zh-CN",
	KeyLogLevel:      "info",
}

type Config struct {
	vp *viper.Viper
}

// NewConfig 依次加载: 内置默认值 -> ini 文件 -> .env -> 环境变量，后者覆盖前者
func NewConfig(filePath string) (*Config, error) {
	if filePath == "" {
		filePath = DefaultPath
	}
	log := logger.Component("config")
	vp := viper.New()
	for k, v := range defaults {
		vp.SetDefault(k, v)
	}

	iniCfg, err := ini.Load(filePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("解析配置文件 '%s' 失败: %w", filePath, err)
		}
		log.Infof("未找到 %s，将创建默认配置文件", filePath)
		if err := createDefaultConfigFile(filePath); err != nil {
			log.Warnf("创建默认配置文件失败: %v，将仅依赖环境变量或内部默认值", err)
		}
	} else {
		for _, section := range iniCfg.Sections() {
			for _, key := range section.Keys() {
				viperKey := fmt.Sprintf("%s.%s", section.Name(), key.Name())
				if section.Name() == ini.DefaultSection {
					viperKey = key.Name()
				}
				vp.Set(viperKey, key.Value())
			}
		}
		log.Debugf("从 %s 加载了配置", filePath)
	}

	// .env 只补充尚未设置的环境变量，不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("加载 .env 失败: %v", err)
	}

	envReplacer := strings.NewReplacer(".", "_")
	for _, key := range allKeys {
		envVarName := fmt.Sprintf("%s_%s", EnvPrefix, envReplacer.Replace(strings.ToUpper(key)))
		if value, found := os.LookupEnv(envVarName); found {
			vp.Set(key, value)
			log.Debugf("环境变量 %s 覆盖了配置 '%s'", envVarName, key)
		}
	}

	return &Config{vp: vp}, nil
}

func (c *Config) GetString(key string) string {
	return strings.TrimSpace(c.vp.GetString(key))
}

func (c *Config) GetInt(key string) int {
	return c.vp.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.vp.GetBool(key)
}

// GetMillis 将以毫秒为单位的整数配置转换为 time.Duration
func (c *Config) GetMillis(key string) time.Duration {
	return time.Duration(c.vp.GetInt64(key)) * time.Millisecond
}

// Validate 检查启动所必需的配置
func (c *Config) Validate() error {
	if c.GetString(KeyAPIBaseURL) == "" {
		return fmt.Errorf("缺少后端地址配置 %s（或环境变量 %s_API_BASEURL）", KeyAPIBaseURL, EnvPrefix)
	}
	switch store := strings.ToLower(c.GetString(KeyAuthStore)); store {
	case AuthStoreStatic, AuthStoreFile:
	case AuthStoreRedis:
		if c.GetString(KeyRedisAddr) == "" {
			return fmt.Errorf("令牌存储为 redis 时必须配置 %s", KeyRedisAddr)
		}
	default:
		return fmt.Errorf("未知的令牌存储方式 '%s'", store)
	}
	if c.GetInt(KeyAPITimeout) < 0 {
		return fmt.Errorf("%s 不能为负数", KeyAPITimeout)
	}
	return nil
}

// createDefaultConfigFile 创建默认的配置文件
func createDefaultConfigFile(filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	defaultConfig := `[System]
Port = 8092
Debug = false
# 每个 IP 每分钟最多请求数，0 表示不限制
RateLimit = 120

[Api]
# 博客后端地址，例如 http://localhost:8091/api
BaseURL =
# 请求超时（毫秒）
Timeout = 5000
# 每秒最多请求数，0 表示不限制
RateLimit = 0

# 令牌存储: static / file / redis
[Auth]
Store = static
Token =
TokenFile = data/token.ini
TokenKey = auth_token

[Redis]
Addr =
Password =
DB = 0
Prefix = mysite:

[Site]
Name = MySite
Locale = zh-CN

[Log]
Level = info
`
	if err := os.WriteFile(filePath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}
