/*
 * @Description: 基于 Redis 的令牌存储
 * @Author: 安知鱼
 * @Date: 2026-09-06 11:20:47
 * @LastEditTime: 2026-09-17 14:31:19
 * @LastEditors: 安知鱼
 */
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/anzhiyu-c/mysite/pkg/apiclient"
)

// StringGetter 是 Redis 令牌存储所需的最小能力，*redis.Client 满足该接口
type StringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Redis 从共享 Redis 中读取令牌，供多实例部署共用同一登录态
type Redis struct {
	rdb StringGetter
	key string
}

// NewRedis 创建 Redis 令牌存储，完整键名为 prefix + key
func NewRedis(rdb StringGetter, prefix, key string) *Redis {
	if strings.TrimSpace(key) == "" {
		key = apiclient.DefaultTokenKey
	}
	return &Redis{rdb: rdb, key: prefix + key}
}

// Token 键不存在时返回空令牌
func (s *Redis) Token(ctx context.Context) (string, error) {
	val, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("从 Redis 读取令牌 '%s' 失败: %w", s.key, err)
	}
	return strings.TrimSpace(val), nil
}
